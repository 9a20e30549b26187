package model

import "strings"

const detachedBranch = "(detached)"

// Worktree is one entry of a repository's worktree list.
type Worktree struct {
	Path   string
	Branch string
	IsMain bool
	Commit string
	Dirty  bool
}

// Detached reports whether the worktree has no branch checked out.
func (w Worktree) Detached() bool {
	return w.Branch == "" || w.Branch == detachedBranch
}

// ShortHash returns the abbreviated commit hash.
func (w Worktree) ShortHash() string {
	if len(w.Commit) > 7 {
		return w.Commit[:7]
	}
	return w.Commit
}

func (w Worktree) DisplayText() string {
	var b strings.Builder
	branch := w.Branch
	if branch == "" {
		branch = detachedBranch
	}
	b.WriteString(branch)
	if w.Dirty {
		b.WriteString("*")
	}
	if hash := w.ShortHash(); hash != "" {
		b.WriteString(" (" + hash + ")")
	}
	if w.IsMain {
		b.WriteString(" [main]")
	}
	return b.String()
}

func (w Worktree) SearchText() string {
	return w.Branch + " " + w.Path
}
