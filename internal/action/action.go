// Package action defines the closed set of messages routed through pman:
// primitive key input, lifecycle signals, and domain commands.
package action

// Action is implemented only by the types in this package.
type Action interface {
	isAction()
}

// View identifies a top-level screen.
type View int

const (
	ViewSessions View = iota
	ViewPalette
	ViewWorktrees
	ViewBuffers
)

func (v View) String() string {
	switch v {
	case ViewSessions:
		return "sessions"
	case ViewPalette:
		return "palette"
	case ViewWorktrees:
		return "worktrees"
	case ViewBuffers:
		return "buffers"
	default:
		return "unknown"
	}
}

// Primitive input.
type (
	Character  struct{ Rune rune }
	Backspace  struct{}
	Enter      struct{}
	Escape     struct{}
	MoveUp     struct{}
	MoveDown   struct{}
	MoveLeft   struct{}
	MoveRight  struct{}
	PageUp     struct{}
	PageDown   struct{}
	ClearQuery struct{}
	Quit       struct{}
	NewItem    struct{}
	DeleteItem struct{}
	MergeItem  struct{}
	RenameItem struct{}
	Palette    struct{}
)

// Lifecycle.
type (
	Render      struct{}
	CloseDialog struct{}
)

// Domain commands.
type (
	SwitchSession struct{ Name string }
	// CreateSession starts a detached session; an empty Path lets the
	// caller pick the working directory.
	CreateSession struct {
		Name string
		Path string
	}
	KillSession    struct{ Name string }
	CreateWorktree struct{ Branch string }
	DeleteWorktree struct{ Path string }
	MergeWorktree  struct {
		Path   string
		Branch string
	}
	OpenWorktree struct {
		Path   string
		Branch string
	}
	OpenBuffer struct {
		Address  string
		BufferID int
	}
	OpenFile   struct{ Path string }
	SwitchView struct{ View View }
	FindFiles  struct{}
	ShowDiff   struct{}
)

func (Character) isAction()  {}
func (Backspace) isAction()  {}
func (Enter) isAction()      {}
func (Escape) isAction()     {}
func (MoveUp) isAction()     {}
func (MoveDown) isAction()   {}
func (MoveLeft) isAction()   {}
func (MoveRight) isAction()  {}
func (PageUp) isAction()     {}
func (PageDown) isAction()   {}
func (ClearQuery) isAction() {}
func (Quit) isAction()       {}
func (NewItem) isAction()    {}
func (DeleteItem) isAction() {}
func (MergeItem) isAction()  {}
func (RenameItem) isAction() {}
func (Palette) isAction()    {}

func (Render) isAction()      {}
func (CloseDialog) isAction() {}

func (SwitchSession) isAction()  {}
func (CreateSession) isAction()  {}
func (KillSession) isAction()    {}
func (CreateWorktree) isAction() {}
func (DeleteWorktree) isAction() {}
func (MergeWorktree) isAction()  {}
func (OpenWorktree) isAction()   {}
func (OpenBuffer) isAction()     {}
func (OpenFile) isAction()       {}
func (SwitchView) isAction()     {}
func (FindFiles) isAction()      {}
func (ShowDiff) isAction()       {}

// IsCommand reports whether a is a domain command rather than input.
func IsCommand(a Action) bool {
	switch a.(type) {
	case SwitchSession, CreateSession, KillSession, CreateWorktree, DeleteWorktree,
		MergeWorktree, OpenWorktree, OpenBuffer, OpenFile, SwitchView, FindFiles, ShowDiff:
		return true
	}
	return false
}

// Toggles reports whether a reaches a binary toggle such as the confirm
// dialog's yes/no switch.
func Toggles(a Action) bool {
	switch v := a.(type) {
	case MoveUp, MoveDown, MoveLeft, MoveRight:
		return true
	case Character:
		return v.Rune == 'h' || v.Rune == 'l'
	}
	return false
}
