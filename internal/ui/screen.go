package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/ui/dialog"
	uistate "github.com/atomicstack/pman/internal/ui/state"
)

// step is a screen's answer to an action. The zero step means the action
// had no effect.
type step struct {
	next   action.Action
	dialog dialog.Dialog
	notice string
}

// screen is implemented by the four top-level views.
type screen interface {
	kind() action.View
	title() string
	list() lister
	label(pos int) string
	handle(a action.Action) step
	reload() error
	keys(km action.KeyMap) []key.Binding
	emptyText() string
	isScreen()
}

// lister is the item-independent face of a uistate.List.
type lister interface {
	Query() string
	PushChar(r rune)
	PopChar() bool
	ClearQuery() bool
	MoveUp() bool
	MoveDown() bool
	PageUp(n int) bool
	PageDown(n int) bool
	Len() int
	Total() int
	Cursor() (int, bool)
	Viewport(maxVisible int) (start, end int)
}

type listScreen[T any] struct {
	items *uistate.List[T]
}

func newListScreen[T any](display, search func(T) string) listScreen[T] {
	return listScreen[T]{items: uistate.NewList(display, search)}
}

func (s *listScreen[T]) list() lister {
	return s.items
}

func (s *listScreen[T]) label(pos int) string {
	item, ok := s.items.At(pos)
	if !ok {
		return ""
	}
	return s.items.Display(item)
}

func (s *listScreen[T]) selected() (T, bool) {
	return s.items.Selected()
}

func (*sessionsScreen) isScreen()  {}
func (*worktreesScreen) isScreen() {}
func (*buffersScreen) isScreen()   {}
func (*paletteScreen) isScreen()   {}

func listKeys(km action.KeyMap, extra ...key.Binding) []key.Binding {
	out := []key.Binding{km.Up, km.Down}
	out = append(out, extra...)
	return append(out, km.Escape, km.Quit)
}
