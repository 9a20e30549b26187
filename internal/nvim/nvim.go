// Package nvim opens files in a dedicated tmux editor window and talks to
// running nvim instances over their RPC sockets.
package nvim

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/logging/events"
)

// DefaultEditorWindow names the window files are opened in.
const DefaultEditorWindow = "editor"

// Windows is the slice of the tmux collaborator the bridge drives.
type Windows interface {
	EnsureWindow(name string) (string, error)
	SendKeys(target, keys string) error
	SelectWindow(target string) error
	FocusPane(pane string) error
}

// Bridge opens files and buffers in nvim.
type Bridge struct {
	tmux         Windows
	editorWindow string
	socketGlobs  []string
}

// NewBridge returns a bridge that opens files in editorWindow and searches
// extraGlobs in addition to the standard nvim socket locations.
func NewBridge(tmux Windows, editorWindow string, extraGlobs []string) *Bridge {
	if strings.TrimSpace(editorWindow) == "" {
		editorWindow = DefaultEditorWindow
	}
	return &Bridge{
		tmux:         tmux,
		editorWindow: editorWindow,
		socketGlobs:  append(defaultSocketGlobs(), extraGlobs...),
	}
}

// OpenFile launches nvim on path inside the editor window and focuses it.
func (b *Bridge) OpenFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return apperr.Bridge("no file selected")
	}
	window, err := b.tmux.EnsureWindow(b.editorWindow)
	if err != nil {
		return err
	}
	if err := b.tmux.SendKeys(window, shellquote.Join("nvim", path)); err != nil {
		return err
	}
	events.Buffer.OpenFile(path)
	return b.tmux.SelectWindow(window)
}
