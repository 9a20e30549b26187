package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	a, ok := m.keys.FromKey(keyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), actionName(a))
	return m.dispatch(a)
}

// Dispatch routes an action as if it had been typed. Tests and the harness
// use it to drive domain actions directly.
func (m *Model) Dispatch(a action.Action) tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.dispatch(a); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m.finishUpdate(cmds)
}

func (m *Model) dispatch(a action.Action) tea.Cmd {
	if a == nil {
		return nil
	}
	if _, ok := a.(action.Quit); ok {
		m.closeDialog()
		return m.quit()
	}
	if _, ok := a.(action.Render); !ok {
		m.errMsg = ""
	}
	if m.dialog != nil {
		return m.routeDialog(a)
	}
	return m.routeScreen(a)
}

func (m *Model) routeDialog(a action.Action) tea.Cmd {
	d := m.dialog
	next := d.Handle(a)
	switch next.(type) {
	case nil, action.Render:
		return nil
	case action.CloseDialog:
		m.closeDialog()
		return nil
	}
	events.Dialog.Submit(d.Name(), actionName(next))
	m.closeDialog()
	return m.perform(next)
}

func (m *Model) routeScreen(a action.Action) tea.Cmd {
	if action.IsCommand(a) {
		return m.perform(a)
	}
	if handled, cmd := m.applyPrimitive(a); handled {
		return cmd
	}
	st := m.screen.handle(a)
	switch {
	case st.notice != "":
		m.setInfo(st.notice)
	case st.dialog != nil:
		m.openDialog(st.dialog)
	case st.next != nil:
		return m.perform(st.next)
	}
	return nil
}

// applyPrimitive handles the actions every list screen shares.
func (m *Model) applyPrimitive(a action.Action) (bool, tea.Cmd) {
	l := m.screen.list()
	view := m.screen.kind().String()
	switch v := a.(type) {
	case action.Character:
		l.PushChar(v.Rune)
		m.queryChanged()
		events.Filter.Append(view, l.Query())
	case action.Backspace:
		if l.PopChar() {
			m.queryChanged()
			events.Filter.Backspace(view, l.Query())
		}
	case action.ClearQuery:
		if l.ClearQuery() {
			m.queryChanged()
			events.Filter.Cleared(view)
		}
	case action.Escape:
		if l.ClearQuery() {
			m.queryChanged()
			events.Filter.Cleared(view)
			return true, nil
		}
		return true, m.quit()
	case action.MoveUp:
		m.cursorMoved(l.MoveUp())
	case action.MoveDown:
		m.cursorMoved(l.MoveDown())
	case action.PageUp:
		m.cursorMoved(l.PageUp(m.maxVisibleItems()))
	case action.PageDown:
		m.cursorMoved(l.PageDown(m.maxVisibleItems()))
	case action.MoveLeft, action.MoveRight, action.Render, action.CloseDialog:
	case action.Palette:
		if m.screen.kind() == action.ViewPalette {
			return true, nil
		}
		return true, m.perform(action.SwitchView{View: action.ViewPalette})
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) queryChanged() {
	m.filterCursorDirty = true
	m.forceClearInfo()
}

func (m *Model) cursorMoved(moved bool) {
	if !moved {
		return
	}
	if pos, ok := m.screen.list().Cursor(); ok {
		events.UI.Cursor(m.screen.kind().String(), pos)
	}
}

func actionName(a action.Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "action.")
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.screen.list().Query()
	if text == "" {
		placeholder := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	return prompt + render(styles.Filter, text) + m.renderFilterCursor(" ")
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
