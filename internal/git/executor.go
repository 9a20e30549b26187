package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner abstracts git execution for testability.
type CommandRunner interface {
	Run(dir string, args ...string) (string, error)
}

// OSCommandRunner executes real git commands via os/exec.
type OSCommandRunner struct{}

func (r OSCommandRunner) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// FakeCommandRunner is a test double that returns preset output keyed by
// directory and arguments, and records every call it receives.
type FakeCommandRunner struct {
	Outputs map[string]string
	Errors  map[string]error

	mu    sync.Mutex
	calls []string
}

// Key builds the lookup key used by Outputs and Errors.
func Key(dir string, args ...string) string {
	return fmt.Sprintf("%s:%v", dir, args)
}

func (r *FakeCommandRunner) Run(dir string, args ...string) (string, error) {
	key := Key(dir, args...)
	r.mu.Lock()
	r.calls = append(r.calls, key)
	r.mu.Unlock()
	if err, ok := r.Errors[key]; ok {
		return "", err
	}
	if out, ok := r.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("FakeCommandRunner: no output for key %q", key)
}

// Calls returns the keys of every Run invocation so far.
func (r *FakeCommandRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
