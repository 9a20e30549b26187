package action

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFromKeyPrimitives(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Action
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, Character{Rune: 'w'}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Character{Rune: ' '}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Enter{}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, Escape{}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, Backspace{}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MoveUp{}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, MoveUp{}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MoveDown{}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MoveDown{}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, MoveLeft{}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, MoveRight{}},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, PageUp{}},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, PageDown{}},
		{"clear", tea.KeyMsg{Type: tea.KeyCtrlU}, ClearQuery{}},
		{"quit", tea.KeyMsg{Type: tea.KeyCtrlC}, Quit{}},
		{"new", tea.KeyMsg{Type: tea.KeyCtrlN}, NewItem{}},
		{"delete", tea.KeyMsg{Type: tea.KeyCtrlD}, DeleteItem{}},
		{"delete alt", tea.KeyMsg{Type: tea.KeyCtrlX}, DeleteItem{}},
		{"merge", tea.KeyMsg{Type: tea.KeyCtrlG}, MergeItem{}},
		{"rename", tea.KeyMsg{Type: tea.KeyCtrlR}, RenameItem{}},
		{"palette", tea.KeyMsg{Type: tea.KeyCtrlP}, Palette{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.FromKey(tt.msg)
			if !ok {
				t.Fatalf("expected %T for %q", tt.want, tt.msg.String())
			}
			if got != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestFromKeyIgnoresUnknown(t *testing.T) {
	km := DefaultKeyMap()
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyF5},
		{Type: tea.KeyCtrlT},
		{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("paste")},
	} {
		if got, ok := km.FromKey(msg); ok {
			t.Fatalf("expected no action for %q, got %#v", msg.String(), got)
		}
	}
}

func TestToggles(t *testing.T) {
	for _, a := range []Action{MoveUp{}, MoveDown{}, MoveLeft{}, MoveRight{}, Character{Rune: 'h'}, Character{Rune: 'l'}} {
		if !Toggles(a) {
			t.Fatalf("expected %#v to toggle", a)
		}
	}
	for _, a := range []Action{Enter{}, Character{Rune: 'y'}, Escape{}} {
		if Toggles(a) {
			t.Fatalf("did not expect %#v to toggle", a)
		}
	}
}

func TestIsCommand(t *testing.T) {
	for _, a := range []Action{SwitchSession{Name: "x"}, CreateSession{}, KillSession{}, CreateWorktree{}, DeleteWorktree{}, MergeWorktree{}, OpenWorktree{}, OpenBuffer{}, OpenFile{}, SwitchView{}, FindFiles{}, ShowDiff{}} {
		if !IsCommand(a) {
			t.Fatalf("expected %#v to be a command", a)
		}
	}
	for _, a := range []Action{Enter{}, Character{Rune: 'k'}, Escape{}, Palette{}, Render{}, CloseDialog{}, NewItem{}} {
		if IsCommand(a) {
			t.Fatalf("did not expect %#v to be a command", a)
		}
	}
}
