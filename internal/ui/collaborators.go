package ui

import (
	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/model"
)

// SessionManager is the tmux side of pman.
type SessionManager interface {
	ListSessions() ([]model.Session, error)
	CreateSession(name, path string) error
	KillSession(name string) error
	SwitchSession(name string) error
	CurrentSession() string
	CurrentPath() string
}

// VersionControl manages the worktrees of the repository pman started in.
type VersionControl interface {
	Root() string
	ListWorktrees() ([]model.Worktree, error)
	CreateWorktree(branch string) (string, error)
	DeleteWorktree(path string) error
	MergeToMain(path, branch string) error
	Diff(path string) (string, error)
}

// EditorBridge opens files and buffers in nvim.
type EditorBridge interface {
	OpenFile(path string) error
	ListBuffers() ([]model.Buffer, error)
	OpenBuffer(address string, id int) error
}

// Options configures a Model. VCS is nil outside a git repository.
type Options struct {
	Sessions   SessionManager
	VCS        VersionControl
	Editor     EditorBridge
	View       action.View
	Width      int
	Height     int
	ShowFooter bool
}
