// Package git implements worktree management on top of the git CLI.
package git

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/atomicstack/pman/internal/apperr"
)

const remoteHeadPrefix = "refs/remotes/origin/"

// Client runs git commands against one repository.
type Client struct {
	runner      CommandRunner
	root        string
	worktreeDir string
}

// Discover finds the repository containing path.
func Discover(runner CommandRunner, path string) (*Client, error) {
	if runner == nil {
		runner = OSCommandRunner{}
	}
	out, err := runner.Run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindNotARepository, Msg: path, Err: err}
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return nil, &apperr.Error{Kind: apperr.KindNotARepository, Msg: path}
	}
	return &Client{runner: runner, root: root}, nil
}

// Root returns the top-level directory of the discovered working tree.
func (c *Client) Root() string {
	return c.root
}

// SetWorktreeDir overrides where new worktrees are created. By default they
// are siblings of the main working tree.
func (c *Client) SetWorktreeDir(dir string) {
	c.worktreeDir = strings.TrimSpace(dir)
}

// MainBranch resolves the repository's primary branch from origin/HEAD,
// falling back to a local main or master, and finally "main".
func (c *Client) MainBranch() string {
	if out, err := c.runner.Run(c.root, "symbolic-ref", remoteHeadPrefix+"HEAD"); err == nil {
		if ref := strings.TrimSpace(out); ref != "" {
			return strings.TrimPrefix(ref, remoteHeadPrefix)
		}
	}
	for _, candidate := range []string{"main", "master"} {
		if _, err := c.runner.Run(c.root, "rev-parse", "--verify", candidate); err == nil {
			return candidate
		}
	}
	return "main"
}

// Diff returns the working tree diff against HEAD for path.
func (c *Client) Diff(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = c.root
	}
	out, err := c.runner.Run(path, "diff", "HEAD")
	if err != nil {
		return "", vcsError(err)
	}
	return out, nil
}

func (c *Client) hasChanges(path string) (bool, error) {
	out, err := c.runner.Run(path, "status", "--porcelain")
	if err != nil {
		return false, vcsError(err)
	}
	return strings.TrimSpace(out) != "", nil
}

func (c *Client) run(dir string, args ...string) error {
	if _, err := c.runner.Run(dir, args...); err != nil {
		return vcsError(err)
	}
	return nil
}

func (c *Client) worktreeBase(mainPath string) string {
	if c.worktreeDir != "" {
		return c.worktreeDir
	}
	return filepath.Dir(mainPath)
}

func vcsError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return &apperr.Error{Kind: apperr.KindVersionControl, Msg: err.Error(), Err: err}
}
