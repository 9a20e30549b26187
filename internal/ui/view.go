package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
)

const rowIndicator = "▌ "

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	// matches are byte offsets into text rendered with the match style.
	matches []int
}

type describer interface {
	description(pos int) string
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.dialog != nil {
		return m.viewDialog()
	}
	return m.viewList()
}

func (m *Model) viewDialog() string {
	box := m.dialog.View(m.width)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewList() string {
	l := m.screen.list()
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	if l.Len() == 0 {
		msg := m.screen.emptyText()
		if q := l.Query(); q != "" {
			msg = fmt.Sprintf("No matches for %q", q)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		cursor, _ := l.Cursor()
		start, end := l.Viewport(m.maxVisibleItems())
		for pos := start; pos < end; pos++ {
			lines = append(lines, m.buildItemLine(pos, pos == cursor))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	lines = limitHeight(lines, m.height-m.bottomRows(), m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	out := renderLines(lines) + "\n" + renderLines(bottom) + "\n" + m.filterPrompt()
	if m.showFooter {
		m.help.Width = m.width
		out += "\n" + truncateText(m.help.ShortHelpView(m.screen.keys(m.keys)), m.width)
	}
	return out
}

func (m *Model) header() string {
	l := m.screen.list()
	return fmt.Sprintf("%s  %d/%d", m.screen.title(), l.Len(), l.Total())
}

// buildItemLine renders the row at pos, padded so the selected row's
// background spans the full width.
func (m *Model) buildItemLine(pos int, selected bool) styledLine {
	label := m.screen.label(pos)
	text := rowIndicator + label
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	matches := matchOffsets(m.screen.list().Query(), label, len(rowIndicator))
	if d, ok := m.screen.(describer); ok {
		if desc := d.description(pos); desc != "" {
			text += "  " + desc
		}
	}
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
		matches:       matches,
	}
}

// matchOffsets locates the query's characters in label for highlighting,
// shifted by offset bytes.
func matchOffsets(query, label string, offset int) []int {
	query = strings.TrimSpace(query)
	if query == "" || label == "" {
		return nil
	}
	found := fuzzy.Find(query, []string{label})
	if len(found) == 0 {
		return nil
	}
	out := make([]int, len(found[0].MatchedIndexes))
	for i, idx := range found[0].MatchedIndexes {
		out[i] = idx + offset
	}
	return out
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// bottomRows counts the rows below the list: status, prompt and help.
func (m *Model) bottomRows() int {
	rows := 2
	if m.showFooter {
		rows++
	}
	return rows
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 1 + m.bottomRows()
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.render()
	}
	return strings.Join(out, "\n")
}

func (l styledLine) render() string {
	runes := []rune(l.text)
	cut := 0
	if l.highlightFrom > 0 && l.highlightFrom < len(runes) {
		cut = len(string(runes[:l.highlightFrom]))
	}
	head := renderStyle(l.prefixStyle, l.text[:cut])
	return head + highlight(l.text[cut:], cut, l.matches, l.style)
}

// highlight renders text in style, switching to the match style for runes
// whose offset (text starting at base) appears in matches.
func highlight(text string, base int, matches []int, style *lipgloss.Style) string {
	if len(matches) == 0 || styles.Match == nil {
		return renderStyle(style, text)
	}
	matched := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matched[idx-base] = true
	}
	matchStyle := styles.Match.Copy()
	if style != nil {
		matchStyle = matchStyle.Inherit(*style)
	}
	var b strings.Builder
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(matchStyle.Render(run.String()))
		} else {
			b.WriteString(renderStyle(style, run.String()))
		}
		run.Reset()
	}
	for i, r := range text {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func renderStyle(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
