package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/dustin/go-humanize"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/format/table"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/model"
	"github.com/atomicstack/pman/internal/ui/dialog"
)

var now = time.Now

func relabel(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

type sessionsScreen struct {
	listScreen[model.Session]
	manager SessionManager
	labels  map[string]string
}

func newSessionsScreen(manager SessionManager) *sessionsScreen {
	return &sessionsScreen{
		listScreen: newListScreen(model.Session.DisplayText, model.Session.SearchText),
		manager:    manager,
	}
}

func (s *sessionsScreen) kind() action.View { return action.ViewSessions }

func (s *sessionsScreen) title() string { return "Sessions" }

func (s *sessionsScreen) emptyText() string { return "No tmux sessions" }

func (s *sessionsScreen) reload() error {
	sessions, err := s.manager.ListSessions()
	if err != nil {
		return err
	}
	s.labels = sessionLabels(sessions, now())
	s.items.SetItems(sessions)
	return nil
}

func (s *sessionsScreen) label(pos int) string {
	item, ok := s.items.At(pos)
	if !ok {
		return ""
	}
	if text, ok := s.labels[item.Name]; ok {
		return text
	}
	return item.DisplayText()
}

func (s *sessionsScreen) handle(a action.Action) step {
	switch a.(type) {
	case action.Enter:
		if sel, ok := s.selected(); ok {
			return step{next: action.SwitchSession{Name: sel.Name}}
		}
	case action.NewItem:
		return step{dialog: dialog.NewInput(dialog.CreateSession{})}
	case action.DeleteItem:
		if sel, ok := s.selected(); ok {
			return step{dialog: dialog.NewConfirm(dialog.KillSession{Name: sel.Name})}
		}
	case action.RenameItem:
		if sel, ok := s.selected(); ok {
			events.Session.RenamePrompt(sel.Name)
			return step{dialog: dialog.NewInput(dialog.RenameSession{Target: sel.Name})}
		}
	}
	return step{}
}

func (s *sessionsScreen) keys(km action.KeyMap) []key.Binding {
	return listKeys(km, relabel(km.Enter, "switch"), km.New, relabel(km.Delete, "kill"), km.Rename)
}

// sessionLabels renders each session as aligned columns of name, window
// count and age, keyed by session name.
func sessionLabels(sessions []model.Session, at time.Time) map[string]string {
	if len(sessions) == 0 {
		return map[string]string{}
	}
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		windows := "1 window"
		if s.Windows != 1 {
			windows = humanize.Comma(int64(s.Windows)) + " windows"
		}
		age := ""
		if !s.Created.IsZero() {
			age = humanize.RelTime(s.Created, at, "ago", "from now")
		}
		rows[i] = []string{s.DisplayText(), windows, age}
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	labels := make(map[string]string, len(sessions))
	for i, s := range sessions {
		labels[s.Name] = aligned[i]
	}
	return labels
}

type worktreesScreen struct {
	listScreen[model.Worktree]
	vcs VersionControl
}

func newWorktreesScreen(vcs VersionControl) *worktreesScreen {
	return &worktreesScreen{
		listScreen: newListScreen(model.Worktree.DisplayText, model.Worktree.SearchText),
		vcs:        vcs,
	}
}

func (s *worktreesScreen) kind() action.View { return action.ViewWorktrees }

func (s *worktreesScreen) title() string { return "Worktrees" }

func (s *worktreesScreen) emptyText() string { return "No worktrees" }

func (s *worktreesScreen) reload() error {
	if s.vcs == nil {
		s.items.SetItems(nil)
		return apperr.ErrNotARepository
	}
	worktrees, err := s.vcs.ListWorktrees()
	if err != nil {
		return err
	}
	s.items.SetItems(worktrees)
	return nil
}

func (s *worktreesScreen) handle(a action.Action) step {
	if _, ok := a.(action.NewItem); ok {
		return step{dialog: dialog.NewInput(dialog.CreateWorktree{})}
	}
	sel, ok := s.selected()
	if !ok {
		return step{}
	}
	switch a.(type) {
	case action.Enter:
		return step{next: action.OpenWorktree{Path: sel.Path, Branch: sel.Branch}}
	case action.DeleteItem:
		if sel.IsMain {
			return step{notice: "Cannot delete the main worktree"}
		}
		return step{dialog: dialog.NewConfirm(dialog.DeleteWorktree{Path: sel.Path})}
	case action.MergeItem:
		if sel.IsMain {
			return step{notice: "Cannot merge the main worktree"}
		}
		if sel.Detached() {
			return step{notice: "Cannot merge a detached worktree"}
		}
		return step{dialog: dialog.NewConfirm(dialog.MergeWorktree{Path: sel.Path, Branch: sel.Branch})}
	}
	return step{}
}

func (s *worktreesScreen) keys(km action.KeyMap) []key.Binding {
	return listKeys(km, relabel(km.Enter, "open"), km.New, km.Delete, km.Merge)
}

type buffersScreen struct {
	listScreen[model.Buffer]
	editor EditorBridge
}

func newBuffersScreen(editor EditorBridge) *buffersScreen {
	return &buffersScreen{
		listScreen: newListScreen(model.Buffer.DisplayText, model.Buffer.SearchText),
		editor:     editor,
	}
}

func (s *buffersScreen) kind() action.View { return action.ViewBuffers }

func (s *buffersScreen) title() string { return "Buffers" }

func (s *buffersScreen) emptyText() string { return "No nvim buffers" }

func (s *buffersScreen) reload() error {
	buffers, err := s.editor.ListBuffers()
	if err != nil {
		return err
	}
	s.items.SetItems(buffers)
	return nil
}

func (s *buffersScreen) handle(a action.Action) step {
	if _, ok := a.(action.Enter); !ok {
		return step{}
	}
	if sel, ok := s.selected(); ok {
		return step{next: action.OpenBuffer{Address: sel.Address, BufferID: sel.ID}}
	}
	return step{}
}

func (s *buffersScreen) keys(km action.KeyMap) []key.Binding {
	return listKeys(km, relabel(km.Enter, "open"))
}

type paletteScreen struct {
	listScreen[model.Command]
	inRepo   bool
	sessions SessionManager
}

func newPaletteScreen(sessions SessionManager, inRepo bool) *paletteScreen {
	return &paletteScreen{
		listScreen: newListScreen(model.Command.DisplayText, model.Command.SearchText),
		inRepo:     inRepo,
		sessions:   sessions,
	}
}

func (s *paletteScreen) kind() action.View { return action.ViewPalette }

func (s *paletteScreen) title() string { return "Command Palette" }

func (s *paletteScreen) emptyText() string { return "No commands" }

func (s *paletteScreen) reload() error {
	s.items.SetItems(model.Commands(s.inRepo))
	return nil
}

func (s *paletteScreen) label(pos int) string {
	item, ok := s.items.At(pos)
	if !ok {
		return ""
	}
	return item.Name
}

// description returns the detail text shown beside a command.
func (s *paletteScreen) description(pos int) string {
	item, ok := s.items.At(pos)
	if !ok {
		return ""
	}
	return item.Description
}

func (s *paletteScreen) handle(a action.Action) step {
	if _, ok := a.(action.Enter); !ok {
		return step{}
	}
	cmd, ok := s.selected()
	if !ok {
		return step{}
	}
	switch cmd.Kind {
	case model.CommandListSessions:
		return step{next: action.SwitchView{View: action.ViewSessions}}
	case model.CommandNewSession:
		return step{dialog: dialog.NewInput(dialog.CreateSession{})}
	case model.CommandKillSession:
		name := s.sessions.CurrentSession()
		if name == "" {
			return step{notice: "No current session"}
		}
		return step{dialog: dialog.NewConfirm(dialog.KillSession{Name: name})}
	case model.CommandListWorktrees:
		return step{next: action.SwitchView{View: action.ViewWorktrees}}
	case model.CommandCreateWorktree:
		return step{dialog: dialog.NewInput(dialog.CreateWorktree{})}
	case model.CommandFindFiles:
		return step{next: action.FindFiles{}}
	case model.CommandListBuffers:
		return step{next: action.SwitchView{View: action.ViewBuffers}}
	case model.CommandGitDiff:
		return step{next: action.ShowDiff{}}
	}
	return step{}
}

func (s *paletteScreen) keys(km action.KeyMap) []key.Binding {
	return listKeys(km, relabel(km.Enter, "run"))
}
