package action

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds terminal keys to primitive actions. The same bindings feed
// the help bar.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Enter      key.Binding
	Escape     key.Binding
	Backspace  key.Binding
	ClearQuery key.Binding
	Quit       key.Binding
	New        key.Binding
	Delete     key.Binding
	Merge      key.Binding
	Rename     key.Binding
	Palette    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("bksp", "delete")),
		ClearQuery: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "clear")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "quit")),
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("C-n", "new")),
		Delete:     key.NewBinding(key.WithKeys("ctrl+d", "ctrl+x"), key.WithHelp("C-d", "delete")),
		Merge:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("C-g", "merge")),
		Rename:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "rename")),
		Palette:    key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("C-p", "palette")),
	}
}

// FromKey translates a key press into a primitive action. Unknown keys
// report false.
func (km KeyMap) FromKey(msg tea.KeyMsg) (Action, bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return Quit{}, true
	case key.Matches(msg, km.Up):
		return MoveUp{}, true
	case key.Matches(msg, km.Down):
		return MoveDown{}, true
	case key.Matches(msg, km.Left):
		return MoveLeft{}, true
	case key.Matches(msg, km.Right):
		return MoveRight{}, true
	case key.Matches(msg, km.PageUp):
		return PageUp{}, true
	case key.Matches(msg, km.PageDown):
		return PageDown{}, true
	case key.Matches(msg, km.Enter):
		return Enter{}, true
	case key.Matches(msg, km.Escape):
		return Escape{}, true
	case key.Matches(msg, km.Backspace):
		return Backspace{}, true
	case key.Matches(msg, km.ClearQuery):
		return ClearQuery{}, true
	case key.Matches(msg, km.New):
		return NewItem{}, true
	case key.Matches(msg, km.Delete):
		return DeleteItem{}, true
	case key.Matches(msg, km.Merge):
		return MergeItem{}, true
	case key.Matches(msg, km.Rename):
		return RenameItem{}, true
	case key.Matches(msg, km.Palette):
		return Palette{}, true
	}
	switch msg.Type {
	case tea.KeySpace:
		return Character{Rune: ' '}, true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return nil, false
		}
		r := msg.Runes[0]
		if unicode.IsControl(r) {
			return nil, false
		}
		return Character{Rune: r}, true
	}
	return nil, false
}
