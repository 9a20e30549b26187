package app

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/logging/events"
)

var (
	lookPath = exec.LookPath
	getenv   = os.Getenv
)

// DefaultPrerequisites lists the tools the interactive views shell out to.
var DefaultPrerequisites = []string{"tmux", "nvim", "fd", "fzf", "bat", "delta"}

var installHints = map[string]string{
	"tmux":  "tmux is required. Install with: brew install tmux",
	"nvim":  "nvim is required. Install with: brew install neovim",
	"fd":    "fd is required for file finding. Install with: brew install fd",
	"fzf":   "fzf is required for fuzzy finding. Install with: brew install fzf",
	"bat":   "bat is required for file preview. Install with: brew install bat",
	"delta": "delta is required for git diffs. Install with: brew install git-delta",
}

// CheckPrerequisites fails on the first tool missing from PATH, then
// requires the process to be running inside tmux.
func CheckPrerequisites(tools []string) error {
	if len(tools) == 0 {
		tools = DefaultPrerequisites
	}
	for _, tool := range tools {
		tool = strings.TrimSpace(tool)
		if tool == "" {
			continue
		}
		if _, err := lookPath(tool); err != nil {
			events.App.MissingPrerequisite(tool)
			hint, ok := installHints[tool]
			if !ok {
				hint = fmt.Sprintf("%s is required", tool)
			}
			return apperr.MissingPrerequisite(tool, hint)
		}
	}
	if getenv("TMUX") == "" {
		return apperr.SessionManager("pman must be run inside a tmux session")
	}
	return nil
}
