package state

import "testing"

func newTestList(names ...string) *List[string] {
	l := NewList(func(s string) string { return s }, nil)
	l.SetItems(names)
	return l
}

func cursorOf[T any](t *testing.T, l *List[T]) int {
	t.Helper()
	pos, ok := l.Cursor()
	if !ok {
		t.Fatalf("expected a cursor")
	}
	return pos
}

func TestMoveWrapsAround(t *testing.T) {
	l := newTestList("a", "b", "c")
	if got := cursorOf(t, l); got != 0 {
		t.Fatalf("expected cursor 0, got %d", got)
	}
	l.MoveUp()
	if got := cursorOf(t, l); got != 2 {
		t.Fatalf("expected wrap to 2, got %d", got)
	}
	l.MoveDown()
	if got := cursorOf(t, l); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	l.MoveDown()
	if got := cursorOf(t, l); got != 1 {
		t.Fatalf("expected cursor 1, got %d", got)
	}
}

func TestMoveOnEmptyListIsNoop(t *testing.T) {
	l := newTestList()
	if l.MoveUp() || l.MoveDown() || l.PageUp(3) || l.PageDown(3) {
		t.Fatalf("expected no movement on empty list")
	}
	if _, ok := l.Cursor(); ok {
		t.Fatalf("expected absent cursor")
	}
	if _, ok := l.Selected(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestPagingSaturates(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.PageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if got := cursorOf(t, l); got != 2 {
		t.Fatalf("expected cursor 2, got %d", got)
	}
	l.PageDown(2)
	l.PageDown(2)
	if got := cursorOf(t, l); got != 4 {
		t.Fatalf("expected saturation at 4, got %d", got)
	}
	if l.PageDown(2) {
		t.Fatalf("expected no movement at the end")
	}
	l.PageUp(10)
	if got := cursorOf(t, l); got != 0 {
		t.Fatalf("expected saturation at 0, got %d", got)
	}
	if l.PageUp(1) {
		t.Fatalf("expected no movement at the start")
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e", "f")
	if start, end := l.Viewport(3); start != 0 || end != 3 {
		t.Fatalf("expected [0,3), got [%d,%d)", start, end)
	}
	l.PageDown(4)
	if start, end := l.Viewport(3); start != 2 || end != 5 {
		t.Fatalf("expected [2,5), got [%d,%d)", start, end)
	}
	l.MoveUp()
	l.MoveUp()
	l.MoveUp()
	if start, _ := l.Viewport(3); start != 1 {
		t.Fatalf("expected viewport to scroll up to 1, got %d", start)
	}
	l.MoveUp()
	l.MoveUp()
	if start, end := l.Viewport(3); start != 3 || end != 6 {
		t.Fatalf("expected wrap to bottom window [3,6), got [%d,%d)", start, end)
	}
	if start, end := l.Viewport(0); start != 0 || end != 6 {
		t.Fatalf("expected unbounded viewport, got [%d,%d)", start, end)
	}
}
