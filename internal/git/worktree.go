package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/logging"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/model"
)

type worktreeEntry struct {
	Path     string
	Head     string
	Branch   string
	Detached bool
	IsBare   bool
}

// ListWorktrees returns every non-bare worktree in porcelain order, the
// main working tree first.
func (c *Client) ListWorktrees() ([]model.Worktree, error) {
	entries, err := c.entries()
	if err != nil {
		return nil, err
	}
	mainBranch := c.MainBranch()
	out := make([]model.Worktree, 0, len(entries))
	for _, e := range entries {
		if e.IsBare {
			continue
		}
		// An unreadable status lists the row as clean; DeleteWorktree
		// re-checks before removing anything.
		dirty, err := c.hasChanges(e.Path)
		if err != nil {
			events.Worktree.StatusUnknown(e.Path, err)
			logging.Error(fmt.Errorf("worktree status %s: %w", e.Path, err))
			dirty = false
		}
		branch := e.Branch
		if e.Detached {
			branch = "(detached)"
		}
		out = append(out, model.Worktree{
			Path:   e.Path,
			Branch: branch,
			IsMain: !e.Detached && e.Branch == mainBranch,
			Commit: e.Head,
			Dirty:  dirty,
		})
	}
	return out, nil
}

// CreateWorktree adds a worktree on a new branch and returns its path.
func (c *Client) CreateWorktree(branch string) (string, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return "", apperr.VersionControl("branch name is required")
	}
	mainPath, err := c.mainWorktreePath()
	if err != nil {
		return "", err
	}
	path := filepath.Join(c.worktreeBase(mainPath), branch)
	if err := c.run(c.root, "worktree", "add", "-b", branch, path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteWorktree removes a clean worktree. A worktree with uncommitted
// changes is left untouched and reported as ErrUncommittedChanges.
func (c *Client) DeleteWorktree(path string) error {
	dirty, err := c.hasChanges(path)
	if err != nil {
		return err
	}
	if dirty {
		return &apperr.Error{Kind: apperr.KindUncommittedChanges, Msg: path}
	}
	return c.run(c.root, "worktree", "remove", path)
}

func (c *Client) entries() ([]worktreeEntry, error) {
	out, err := c.runner.Run(c.root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, vcsError(err)
	}
	return parseWorktreePorcelain(out), nil
}

// mainWorktreePath prefers the worktree holding the main branch and falls
// back to the first listed one, which git always reports as the main
// working tree.
func (c *Client) mainWorktreePath() (string, error) {
	entries, err := c.entries()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return c.root, nil
	}
	mainBranch := c.MainBranch()
	for _, e := range entries {
		if !e.IsBare && !e.Detached && e.Branch == mainBranch {
			return e.Path, nil
		}
	}
	return entries[0].Path, nil
}

func parseWorktreePorcelain(output string) []worktreeEntry {
	blocks := splitBlocks(output)
	entries := make([]worktreeEntry, 0, len(blocks))
	for _, block := range blocks {
		entry := parseBlock(block)
		if entry.Path != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func splitBlocks(output string) []string {
	output = strings.TrimRight(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if output == "" {
		return nil
	}
	var blocks []string
	var current []string
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func parseBlock(block string) worktreeEntry {
	var entry worktreeEntry
	for _, line := range strings.Split(block, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			entry.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			entry.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			entry.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached":
			entry.Detached = true
		case line == "bare":
			entry.IsBare = true
		}
	}
	return entry
}
