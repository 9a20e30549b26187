package git

import (
	"fmt"

	"github.com/atomicstack/pman/internal/logging/events"
)

// MergeStep identifies one stage of MergeToMain.
type MergeStep int

const (
	StepCheckout MergeStep = iota
	StepMerge
	StepRemoveWorktree
	StepDeleteBranch
)

func (s MergeStep) String() string {
	switch s {
	case StepCheckout:
		return "checkout main"
	case StepMerge:
		return "merge"
	case StepRemoveWorktree:
		return "remove worktree"
	case StepDeleteBranch:
		return "delete branch"
	default:
		return "unknown step"
	}
}

// MergeError reports the step at which MergeToMain stopped. Earlier steps
// are not rolled back.
type MergeError struct {
	Step   MergeStep
	Branch string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s: %s failed: %v", e.Branch, e.Step, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// MergeToMain checks out the main branch in the main working tree, merges
// branch into it, removes the branch's worktree and deletes the branch. It
// stops at the first failing step.
func (c *Client) MergeToMain(path, branch string) error {
	mainBranch := c.MainBranch()
	mainPath, err := c.mainWorktreePath()
	if err != nil {
		return &MergeError{Step: StepCheckout, Branch: branch, Err: err}
	}
	steps := []struct {
		step MergeStep
		run  func() error
	}{
		{StepCheckout, func() error { return c.run(mainPath, "checkout", mainBranch) }},
		{StepMerge, func() error { return c.run(mainPath, "merge", branch) }},
		{StepRemoveWorktree, func() error { return c.DeleteWorktree(path) }},
		{StepDeleteBranch, func() error { return c.run(mainPath, "branch", "-d", branch) }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			events.Worktree.MergeStep(branch, s.step.String(), err)
			return &MergeError{Step: s.step, Branch: branch, Err: err}
		}
		events.Worktree.MergeStep(branch, s.step.String(), nil)
	}
	return nil
}
