package dialog

import (
	"strings"

	"github.com/atomicstack/pman/internal/action"
)

// Confirm is a yes/no dialog. It starts on "no" so a stray Enter cancels.
type Confirm struct {
	callback ConfirmCallback
	bound    action.Action
	yes      bool
}

// NewConfirm builds a confirm dialog whose affirmative answer emits the
// callback's bound action.
func NewConfirm(cb ConfirmCallback) *Confirm {
	return &Confirm{callback: cb, bound: cb.Bound()}
}

// Callback returns the descriptor the dialog was built with.
func (c *Confirm) Callback() ConfirmCallback {
	return c.callback
}

// YesSelected reports the toggle state.
func (c *Confirm) YesSelected() bool {
	return c.yes
}

func (c *Confirm) Handle(a action.Action) action.Action {
	if ch, ok := a.(action.Character); ok {
		switch ch.Rune {
		case 'y', 'Y':
			return c.bound
		case 'n', 'N':
			return action.CloseDialog{}
		}
	}
	if action.Toggles(a) {
		c.yes = !c.yes
		return action.Render{}
	}
	switch a.(type) {
	case action.Enter:
		if c.yes {
			return c.bound
		}
		return action.CloseDialog{}
	case action.Escape:
		return action.CloseDialog{}
	}
	return nil
}

func (c *Confirm) Name() string {
	switch c.callback.(type) {
	case DeleteWorktree:
		return "delete-worktree"
	case MergeWorktree:
		return "merge-worktree"
	case KillSession:
		return "kill-session"
	}
	return "confirm"
}

func (c *Confirm) Help() string {
	return "←/→: toggle  Enter: confirm  Esc: cancel"
}

func (c *Confirm) View(width int) string {
	no, yes := styles.DialogButtonActive, styles.DialogButton
	if c.yes {
		no, yes = yes, no
	}
	buttons := strings.Join([]string{render(no, "[N]o"), render(yes, "[Y]es")}, "   ")
	return box("Confirm", []string{render(styles.DialogText, c.callback.Prompt()), "", buttons}, c.Help(), width)
}
