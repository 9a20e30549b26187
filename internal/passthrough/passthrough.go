// Package passthrough builds the external fzf and delta processes pman hands
// the terminal to.
package passthrough

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/atomicstack/pman/internal/apperr"
)

const previewCommand = "bat --color=always --style=numbers --line-range=:500 {}"

var runExecCommand = func(cmd *exec.Cmd) error {
	return cmd.Run()
}

// FindFilesCommand lists the files under dir with fd and lets the user pick
// one in fzf. The chosen path is written to the command's stdout.
func FindFilesCommand(dir string) *exec.Cmd {
	script := "fd --type f --hidden --exclude .git | fzf --preview " + shellquote.Join(previewCommand)
	cmd := exec.Command("sh", "-c", script)
	cmd.Dir = dir
	return cmd
}

// DiffPager pages diff through delta.
func DiffPager(diff string) *exec.Cmd {
	cmd := exec.Command("delta")
	cmd.Stdin = strings.NewReader(diff)
	return cmd
}

// Cancelled reports whether err is fzf giving up: 130 when interrupted, 1
// when nothing matched.
func Cancelled(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 130 || code == 1
}

// Selection extracts the picked path from fzf output.
func Selection(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line)
}

// PickFile runs the file picker on the current terminal and returns the
// chosen path. A cancelled pick returns apperr.ErrCancelled.
func PickFile(dir string, stdin io.Reader, stderr io.Writer) (string, error) {
	var out bytes.Buffer
	cmd := FindFilesCommand(dir)
	cmd.Stdin = stdin
	cmd.Stdout = &out
	cmd.Stderr = stderr
	if err := runExecCommand(cmd); err != nil {
		if Cancelled(err) {
			return "", apperr.ErrCancelled
		}
		return "", apperr.IO(err)
	}
	path := Selection(out.String())
	if path == "" {
		return "", apperr.ErrCancelled
	}
	return path, nil
}

// EditFile runs nvim on path in the current terminal.
func EditFile(path string) error {
	cmd := exec.Command("nvim", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return apperr.IO(runExecCommand(cmd))
}

// PageDiff shows diff through delta on stdout. An empty diff prints nothing.
func PageDiff(diff string, stdout, stderr io.Writer) error {
	if strings.TrimSpace(diff) == "" {
		return nil
	}
	cmd := DiffPager(diff)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return apperr.IO(runExecCommand(cmd))
}
