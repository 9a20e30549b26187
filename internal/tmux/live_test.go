package tmux

import (
	"testing"

	"github.com/atomicstack/pman/internal/testutil"
)

func TestSessionsAgainstServer(t *testing.T) {
	socket, cleanup, _ := testutil.StartTmuxServer(t)
	defer cleanup()
	prevClient, prevSocket := cachedClient, cachedSocket
	cachedClient, cachedSocket = nil, ""
	t.Cleanup(func() {
		_ = Shutdown()
		cachedClient, cachedSocket = prevClient, prevSocket
	})

	dir := t.TempDir()
	m := NewManager(socket)
	if err := m.CreateSession("live", dir); err != nil {
		t.Fatalf("create session: %v", err)
	}
	sessions, err := m.ListSessions()
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	var found bool
	for _, s := range sessions {
		if s.Name != "live" {
			continue
		}
		found = true
		if s.Windows != 1 || s.Attached || s.Created.IsZero() {
			t.Fatalf("unexpected session %+v", s)
		}
	}
	if !found {
		t.Fatalf("expected live session in %+v", sessions)
	}

	if err := m.KillSession("live"); err != nil {
		t.Fatalf("kill session: %v", err)
	}
	sessions, err = m.ListSessions()
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	for _, s := range sessions {
		if s.Name == "live" {
			t.Fatalf("expected live session gone, got %+v", sessions)
		}
	}
}
