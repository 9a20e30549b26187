// Package keybind manages pman's block of bindings in the tmux config.
package keybind

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/atomicfile"
	"github.com/atomicstack/pman/internal/logging/events"
)

const (
	StartMarker = "# pman keybindings (managed by pman)"
	EndMarker   = "# end pman keybindings"
)

// Popup sizes the display-popup windows. Values are tmux size strings such
// as "80%".
type Popup struct {
	Width       string
	Height      string
	FilesWidth  string
	FilesHeight string
}

// DefaultPopup returns the stock popup sizes.
func DefaultPopup() Popup {
	return Popup{Width: "80%", Height: "80%", FilesWidth: "90%", FilesHeight: "90%"}
}

func (p Popup) withDefaults() Popup {
	d := DefaultPopup()
	if strings.TrimSpace(p.Width) == "" {
		p.Width = d.Width
	}
	if strings.TrimSpace(p.Height) == "" {
		p.Height = d.Height
	}
	if strings.TrimSpace(p.FilesWidth) == "" {
		p.FilesWidth = d.FilesWidth
	}
	if strings.TrimSpace(p.FilesHeight) == "" {
		p.FilesHeight = d.FilesHeight
	}
	return p
}

// Binding is one prefix key and the pman subcommand it opens.
type Binding struct {
	Key         string
	Subcommand  string
	Description string
	wide        bool
}

// Bindings lists the keys the block installs.
var Bindings = []Binding{
	{Key: "s", Subcommand: "session-picker", Description: "Session picker"},
	{Key: "p", Subcommand: "command-palette", Description: "Command palette"},
	{Key: "w", Subcommand: "worktrees", Description: "Worktree manager"},
	{Key: "f", Subcommand: "find-files", Description: "Find files", wide: true},
	{Key: "d", Subcommand: "git-diff", Description: "Git diff", wide: true},
}

// Block renders the marker-delimited bindings for exe.
func Block(exe string, popup Popup) string {
	popup = popup.withDefaults()
	lines := make([]string, 0, len(Bindings)+2)
	lines = append(lines, StartMarker)
	for _, b := range Bindings {
		w, h := popup.Width, popup.Height
		if b.wide {
			w, h = popup.FilesWidth, popup.FilesHeight
		}
		lines = append(lines, fmt.Sprintf(`bind %s display-popup -E -w %s -h %s "%s %s"`, b.Key, w, h, exe, b.Subcommand))
	}
	lines = append(lines, EndMarker)
	return strings.Join(lines, "\n") + "\n"
}

// Installed reports whether content already carries the block.
func Installed(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if isMarker(line, StartMarker) {
			return true
		}
	}
	return false
}

// isMarker matches a marker line, tolerating indentation and trailing text
// after the marker.
func isMarker(line, marker string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), marker)
}

// Install appends the block to content. It reports false and leaves content
// alone when a block is already present.
func Install(content, exe string, popup Popup) (string, bool) {
	if Installed(content) {
		return content, false
	}
	var b strings.Builder
	if trimmed := strings.TrimRight(content, "\n"); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	b.WriteString(Block(exe, popup))
	return b.String(), true
}

// Uninstall drops every line from the start marker through the end marker.
// An unterminated block runs to the end of the file.
func Uninstall(content string) (string, bool) {
	if !Installed(content) {
		return content, false
	}
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	inside := false
	for _, line := range lines {
		switch {
		case isMarker(line, StartMarker):
			inside = true
			continue
		case inside && isMarker(line, EndMarker):
			inside = false
			continue
		case inside:
			continue
		}
		kept = append(kept, line)
	}
	out := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if out != "" {
		out += "\n"
	}
	return out, true
}

// InstallFile adds the block to the config at path, creating the file when
// it does not exist.
func InstallFile(path, exe string, popup Popup) (bool, error) {
	content, err := read(path)
	if err != nil {
		return false, err
	}
	updated, changed := Install(content, exe, popup)
	if changed {
		if err := atomicfile.Save(path, []byte(updated), 0); err != nil {
			return false, apperr.IO(err)
		}
	}
	events.Keybind.Install(path, changed)
	return changed, nil
}

// UninstallFile removes the block from the config at path.
func UninstallFile(path string) (bool, error) {
	content, err := read(path)
	if err != nil {
		return false, err
	}
	updated, changed := Uninstall(content)
	if changed {
		if err := atomicfile.Save(path, []byte(updated), 0); err != nil {
			return false, apperr.IO(err)
		}
	}
	events.Keybind.Uninstall(path, changed)
	return changed, nil
}

func read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", apperr.IO(err)
	}
	return string(data), nil
}
