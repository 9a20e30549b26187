// Package dialog implements the modal confirm and text-input dialogs. A
// dialog consumes every action while open and answers with a follow-up
// action: Render, CloseDialog, the domain action it was built for, or nil
// when the input means nothing to it.
package dialog

import (
	"strings"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 50

var styles = theme.Default()

// Dialog is implemented by *Confirm and *Input.
type Dialog interface {
	Handle(a action.Action) action.Action
	View(width int) string
	Help() string
	Name() string
	isDialog()
}

func (*Confirm) isDialog() {}
func (*Input) isDialog()   {}

// box renders a bordered dialog no wider than the available width.
func box(title string, body []string, help string, width int) string {
	w := boxWidth
	if width > 0 && width-2 < w {
		w = width - 2
	}
	if w < 10 {
		w = 10
	}
	inner := w - 4
	lines := make([]string, 0, len(body)+4)
	lines = append(lines, render(styles.DialogTitle, title), "")
	lines = append(lines, body...)
	lines = append(lines, "", renderHelp(help))
	content := lipgloss.NewStyle().Width(inner).Render(strings.Join(lines, "\n"))
	if styles.DialogBox == nil {
		return content
	}
	return styles.DialogBox.Render(content)
}

// renderHelp styles "key: desc" pairs separated by two spaces.
func renderHelp(help string) string {
	parts := strings.Split(help, "  ")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		k, desc, ok := strings.Cut(part, ":")
		if !ok {
			out = append(out, render(styles.HelpDesc, part))
			continue
		}
		out = append(out, render(styles.HelpKey, k)+render(styles.HelpDesc, ":"+desc))
	}
	return strings.Join(out, "  ")
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
