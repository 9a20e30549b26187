package dialog

import (
	"github.com/atomicstack/pman/internal/action"
)

// Input collects a single line of text.
type Input struct {
	callback InputCallback
	buffer   []rune
}

func NewInput(cb InputCallback) *Input {
	return &Input{callback: cb}
}

// Callback returns the descriptor the dialog was built with.
func (in *Input) Callback() InputCallback {
	return in.callback
}

// Value returns the current buffer contents.
func (in *Input) Value() string {
	return string(in.buffer)
}

func (in *Input) Handle(a action.Action) action.Action {
	switch v := a.(type) {
	case action.Character:
		in.buffer = append(in.buffer, v.Rune)
		return action.Render{}
	case action.Backspace:
		if len(in.buffer) > 0 {
			in.buffer = in.buffer[:len(in.buffer)-1]
		}
		return action.Render{}
	case action.Enter:
		if len(in.buffer) == 0 {
			return action.CloseDialog{}
		}
		return in.callback.Submit(string(in.buffer))
	case action.Escape:
		return action.CloseDialog{}
	}
	return nil
}

func (in *Input) Name() string {
	switch in.callback.(type) {
	case CreateSession:
		return "create-session"
	case CreateWorktree:
		return "create-worktree"
	case RenameSession:
		return "rename-session"
	}
	return "input"
}

func (in *Input) Help() string {
	return "Enter: confirm  Esc: cancel"
}

func (in *Input) View(width int) string {
	line := render(styles.FilterPrompt, "> ") + render(styles.Filter, string(in.buffer)) + render(styles.Cursor, " ")
	return box(in.callback.Title(), []string{line}, in.Help(), width)
}
