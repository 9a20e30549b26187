package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pman/internal/action"
)

func TestNewModelLoadsInitialView(t *testing.T) {
	tests := []struct {
		view action.View
		want int
	}{
		{action.ViewSessions, 3},
		{action.ViewWorktrees, 3},
		{action.ViewBuffers, 2},
		{action.ViewPalette, 8},
	}
	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			f := newFixture(t, tt.view, true)
			m := f.model()
			if m.ActiveView() != tt.view {
				t.Fatalf("expected view %v, got %v", tt.view, m.ActiveView())
			}
			if got := len(m.Labels()); got != tt.want {
				t.Fatalf("expected %d rows, got %d", tt.want, got)
			}
			if m.Err() != "" {
				t.Fatalf("unexpected error %q", m.Err())
			}
		})
	}
}

func TestWorktreesOutsideRepositoryReportsError(t *testing.T) {
	f := newFixture(t, action.ViewWorktrees, false)
	m := f.model()
	if m.InRepository() {
		t.Fatalf("expected model outside a repository")
	}
	if !strings.Contains(m.Err(), "not a git repository") {
		t.Fatalf("expected repository error, got %q", m.Err())
	}
	if len(m.Labels()) != 0 {
		t.Fatalf("expected no rows, got %v", m.Labels())
	}
}

func TestTypingFiltersRows(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Type("wor")
	m := f.model()
	if m.Query() != "wor" {
		t.Fatalf("expected query wor, got %q", m.Query())
	}
	labels := m.Labels()
	if len(labels) != 2 {
		t.Fatalf("expected 2 matches, got %v", labels)
	}
	for _, l := range labels {
		if strings.Contains(l, "play") {
			t.Fatalf("unexpected row %q", l)
		}
	}
	f.h.Press(tea.KeyBackspace)
	if m.Query() != "wo" {
		t.Fatalf("expected query wo after backspace, got %q", m.Query())
	}
	f.h.Press(tea.KeyCtrlU)
	if m.Query() != "" || len(m.Labels()) != 3 {
		t.Fatalf("expected cleared query, got %q with %d rows", m.Query(), len(m.Labels()))
	}
}

func TestQueryEditResetsCursor(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyDown)
	f.h.Press(tea.KeyDown)
	sel, _ := f.model().Selected()
	if !strings.Contains(sel, "play") {
		t.Fatalf("expected play selected, got %q", sel)
	}
	f.h.Type("w")
	sel, ok := f.model().Selected()
	if !ok || !strings.Contains(sel, "work") {
		t.Fatalf("expected cursor back on first match, got %q", sel)
	}
}

func TestEscapeClearsQueryThenQuits(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Type("pl")
	f.h.Press(tea.KeyEsc)
	if f.h.Quit() {
		t.Fatalf("expected first escape to clear the query")
	}
	if f.model().Query() != "" {
		t.Fatalf("expected empty query, got %q", f.model().Query())
	}
	f.h.Press(tea.KeyEsc)
	if !f.h.Quit() || !f.model().Quitting() {
		t.Fatalf("expected second escape to quit")
	}
}

func TestCtrlCQuitsWithDialogOpen(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyCtrlN)
	if f.model().DialogName() != "create-session" {
		t.Fatalf("expected create-session dialog, got %q", f.model().DialogName())
	}
	f.h.Press(tea.KeyCtrlC)
	if !f.h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
	if f.model().DialogName() != "" {
		t.Fatalf("expected dialog closed on quit")
	}
}

func TestEnterSwitchesSessionAndQuits(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyDown)
	f.h.Press(tea.KeyEnter)
	if !hasCall(f.sessions.calls, "switch worship") {
		t.Fatalf("expected switch to worship, got %v", f.sessions.calls)
	}
	if !f.h.Quit() {
		t.Fatalf("expected quit after switching")
	}
}

func TestSwitchFailureStaysOpenAndClearsOnNextKey(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.sessions.switchErr = errString("tmux: can't find session")
	f.h.Press(tea.KeyEnter)
	if f.h.Quit() {
		t.Fatalf("expected loop to keep running after a failure")
	}
	if !strings.Contains(f.model().Err(), "can't find session") {
		t.Fatalf("expected status error, got %q", f.model().Err())
	}
	if !strings.Contains(f.h.View(), "Error: ") {
		t.Fatalf("expected error line in view:\n%s", f.h.View())
	}
	f.h.Press(tea.KeyDown)
	if f.model().Err() != "" {
		t.Fatalf("expected error cleared by next action, got %q", f.model().Err())
	}
}

func TestCreateSessionDialog(t *testing.T) {
	f := newFixture(t, action.ViewPalette, true)
	f.h.Type("new session")
	f.h.Press(tea.KeyEnter)
	if f.model().DialogName() != "create-session" {
		t.Fatalf("expected create-session dialog, got %q", f.model().DialogName())
	}
	f.h.Type("api")
	f.h.Press(tea.KeyEnter)
	m := f.model()
	if !hasCall(f.sessions.calls, "create api /home/me/src") {
		t.Fatalf("expected create in current path, got %v", f.sessions.calls)
	}
	if m.DialogName() != "" {
		t.Fatalf("expected dialog closed")
	}
	if m.ActiveView() != action.ViewSessions {
		t.Fatalf("expected sessions view, got %v", m.ActiveView())
	}
	if m.Info() != "Created session api" {
		t.Fatalf("unexpected info %q", m.Info())
	}
	if len(m.Labels()) != 4 {
		t.Fatalf("expected reloaded list with 4 sessions, got %v", m.Labels())
	}
}

func TestInputDialogEmptySubmitCancels(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyCtrlN)
	f.h.Press(tea.KeyEnter)
	if f.model().DialogName() != "" {
		t.Fatalf("expected dialog closed")
	}
	if len(f.sessions.calls) != 0 {
		t.Fatalf("expected no session calls, got %v", f.sessions.calls)
	}
}

func TestInputDialogKeepsQueryUntouched(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Type("w")
	f.h.Press(tea.KeyCtrlN)
	f.h.Type("abc")
	f.h.Press(tea.KeyEsc)
	if f.h.Quit() {
		t.Fatalf("expected escape to close the dialog, not quit")
	}
	if f.model().Query() != "w" {
		t.Fatalf("expected query untouched, got %q", f.model().Query())
	}
}

func TestKillSessionConfirm(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyDown)
	f.h.Press(tea.KeyDown)
	f.h.Press(tea.KeyCtrlD)
	if f.model().DialogName() != "kill-session" {
		t.Fatalf("expected kill-session dialog, got %q", f.model().DialogName())
	}
	f.h.Press(tea.KeyEnter)
	if len(f.sessions.calls) != 0 {
		t.Fatalf("expected default answer to cancel, got %v", f.sessions.calls)
	}

	f.h.Press(tea.KeyCtrlD)
	f.h.Type("y")
	if !hasCall(f.sessions.calls, "kill play") {
		t.Fatalf("expected kill play, got %v", f.sessions.calls)
	}
	m := f.model()
	if m.Info() != "Killed session play" {
		t.Fatalf("unexpected info %q", m.Info())
	}
	if len(m.Labels()) != 2 {
		t.Fatalf("expected 2 sessions after kill, got %v", m.Labels())
	}
}

func TestConfirmToggleThenEnter(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyCtrlD)
	f.h.Press(tea.KeyRight)
	f.h.Press(tea.KeyEnter)
	if !hasCall(f.sessions.calls, "kill work") {
		t.Fatalf("expected kill work after toggling to yes, got %v", f.sessions.calls)
	}
}

func TestRenameSubmitOnlyClosesDialog(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.Press(tea.KeyCtrlR)
	if f.model().DialogName() != "rename-session" {
		t.Fatalf("expected rename-session dialog, got %q", f.model().DialogName())
	}
	f.h.Type("renamed")
	f.h.Press(tea.KeyEnter)
	if f.model().DialogName() != "" {
		t.Fatalf("expected dialog closed")
	}
	if len(f.sessions.calls) != 0 {
		t.Fatalf("expected no session calls, got %v", f.sessions.calls)
	}
}

func TestCtrlPOpensPalette(t *testing.T) {
	f := newFixture(t, action.ViewBuffers, true)
	f.h.Press(tea.KeyCtrlP)
	if f.model().ActiveView() != action.ViewPalette {
		t.Fatalf("expected palette, got %v", f.model().ActiveView())
	}
	f.h.Type("x")
	f.h.Press(tea.KeyCtrlP)
	if f.model().Query() != "x" {
		t.Fatalf("expected palette to stay put, got query %q", f.model().Query())
	}
}

func TestPaletteOutsideRepository(t *testing.T) {
	f := newFixture(t, action.ViewPalette, false)
	labels := f.model().Labels()
	want := []string{"List Sessions", "New Session", "Kill Session", "Find Files", "List Buffers"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, labels)
	}
}

func TestPaletteSwitchesViews(t *testing.T) {
	tests := []struct {
		query string
		want  action.View
	}{
		{"list work", action.ViewWorktrees},
		{"list buf", action.ViewBuffers},
		{"list sessions", action.ViewSessions},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := newFixture(t, action.ViewPalette, true)
			f.h.Type(tt.query)
			f.h.Press(tea.KeyEnter)
			m := f.model()
			if m.ActiveView() != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, m.ActiveView())
			}
			if m.Query() != "" {
				t.Fatalf("expected fresh query on new view, got %q", m.Query())
			}
		})
	}
}

func TestPaletteKillSessionTargetsCurrent(t *testing.T) {
	f := newFixture(t, action.ViewPalette, true)
	f.h.Type("kill")
	f.h.Press(tea.KeyEnter)
	if f.model().DialogName() != "kill-session" {
		t.Fatalf("expected kill-session dialog, got %q", f.model().DialogName())
	}
	f.h.Type("y")
	if !hasCall(f.sessions.calls, "kill work") {
		t.Fatalf("expected kill of current session, got %v", f.sessions.calls)
	}
}

func TestPaletteKillSessionWithoutCurrent(t *testing.T) {
	f := newFixture(t, action.ViewPalette, true)
	f.sessions.current = ""
	f.h.Type("kill")
	f.h.Press(tea.KeyEnter)
	if f.model().DialogName() != "" {
		t.Fatalf("expected no dialog")
	}
	if f.model().Info() != "No current session" {
		t.Fatalf("unexpected info %q", f.model().Info())
	}
}

func TestPageDownUsesVisibleRows(t *testing.T) {
	f := newFixture(t, action.ViewPalette, true)
	f.h.Send(tea.WindowSizeMsg{Width: 60, Height: 20})
	f.h.Press(tea.KeyPgDown)
	sel, _ := f.model().Selected()
	if sel != "Git Diff" {
		t.Fatalf("expected page down to clamp on last row, got %q", sel)
	}
	f.h.Press(tea.KeyPgUp)
	sel, _ = f.model().Selected()
	if sel != "List Sessions" {
		t.Fatalf("expected page up to reach first row, got %q", sel)
	}
}

func TestDispatchRunsDomainAction(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.h.processCmd(f.model().Dispatch(action.SwitchSession{Name: "play"}))
	if !hasCall(f.sessions.calls, "switch play") || !f.h.Quit() {
		t.Fatalf("expected switch and quit, got %v quit=%v", f.sessions.calls, f.h.Quit())
	}
}

func TestDispatchRunsCommandsOnAnyView(t *testing.T) {
	f := newFixture(t, action.ViewSessions, true)
	f.model().Dispatch(action.KillSession{Name: "play"})
	if !hasCall(f.sessions.calls, "kill play") {
		t.Fatalf("expected kill, got %v", f.sessions.calls)
	}
	f.model().Dispatch(action.CreateSession{Name: "zzz", Path: "/tmp"})
	if !hasCall(f.sessions.calls, "create zzz /tmp") {
		t.Fatalf("expected create, got %v", f.sessions.calls)
	}
	f.model().Dispatch(action.SwitchView{View: action.ViewBuffers})
	if f.model().ActiveView() != action.ViewBuffers {
		t.Fatalf("expected buffers view, got %v", f.model().ActiveView())
	}
	if f.h.Quit() {
		t.Fatalf("did not expect quit")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
