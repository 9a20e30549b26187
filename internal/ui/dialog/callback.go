package dialog

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/pman/internal/action"
)

// ConfirmCallback names the workflow a confirm dialog guards and carries the
// data its bound action needs.
type ConfirmCallback interface {
	Prompt() string
	Bound() action.Action
	isConfirmCallback()
}

type DeleteWorktree struct{ Path string }

type MergeWorktree struct {
	Path   string
	Branch string
}

type KillSession struct{ Name string }

func (c DeleteWorktree) Prompt() string {
	return fmt.Sprintf("Delete worktree %s?", filepath.Base(c.Path))
}

func (c DeleteWorktree) Bound() action.Action {
	return action.DeleteWorktree{Path: c.Path}
}

func (c MergeWorktree) Prompt() string {
	return fmt.Sprintf("Merge %s into main and remove its worktree?", c.Branch)
}

func (c MergeWorktree) Bound() action.Action {
	return action.MergeWorktree{Path: c.Path, Branch: c.Branch}
}

func (c KillSession) Prompt() string {
	return fmt.Sprintf("Kill session %s?", c.Name)
}

func (c KillSession) Bound() action.Action {
	return action.KillSession{Name: c.Name}
}

func (DeleteWorktree) isConfirmCallback() {}
func (MergeWorktree) isConfirmCallback()  {}
func (KillSession) isConfirmCallback()    {}

// InputCallback names the workflow a text-input dialog feeds.
type InputCallback interface {
	Title() string
	// Submit builds the action for a non-empty buffer.
	Submit(text string) action.Action
	isInputCallback()
}

type CreateSession struct{}

type CreateWorktree struct{}

// RenameSession is accepted but has no workflow behind it yet; submitting
// just closes the dialog.
type RenameSession struct{ Target string }

func (CreateSession) Title() string { return "New session name" }

func (CreateSession) Submit(text string) action.Action {
	return action.CreateSession{Name: text}
}

func (CreateWorktree) Title() string { return "New worktree branch" }

func (CreateWorktree) Submit(text string) action.Action {
	return action.CreateWorktree{Branch: text}
}

func (c RenameSession) Title() string { return fmt.Sprintf("Rename session %s", c.Target) }

func (RenameSession) Submit(string) action.Action {
	return action.CloseDialog{}
}

func (CreateSession) isInputCallback()  {}
func (CreateWorktree) isInputCallback() {}
func (RenameSession) isInputCallback()  {}
