package state

// List holds a candidate set together with the query, filtered order and
// cursor that select from it. The cursor is -1 exactly when the filtered
// order is empty.
type List[T any] struct {
	items   []T
	display func(T) string
	search  func(T) string

	query          []rune
	order          []int
	cursor         int
	viewportOffset int
}

// NewList constructs an empty list. display renders an item for the screen;
// search yields the text the query is matched against.
func NewList[T any](display, search func(T) string) *List[T] {
	if search == nil {
		search = display
	}
	return &List[T]{display: display, search: search, cursor: -1}
}

// SetItems replaces the candidate set, keeping the cursor where possible.
func (l *List[T]) SetItems(items []T) {
	l.items = append(l.items[:0:0], items...)
	l.recompute()
	l.clampCursor()
}

// Items returns the full candidate set in its original order.
func (l *List[T]) Items() []T {
	return l.items
}

// Total reports the size of the candidate set.
func (l *List[T]) Total() int {
	return len(l.items)
}

// Len reports the number of candidates passing the current query.
func (l *List[T]) Len() int {
	return len(l.order)
}

// Order returns a copy of the filtered order as indices into Items.
func (l *List[T]) Order() []int {
	return append([]int(nil), l.order...)
}

// At returns the candidate at the given filtered position.
func (l *List[T]) At(pos int) (T, bool) {
	var zero T
	if pos < 0 || pos >= len(l.order) {
		return zero, false
	}
	return l.items[l.order[pos]], true
}

// Display renders an item with the list's display projection.
func (l *List[T]) Display(item T) string {
	return l.display(item)
}

// Selected returns the candidate under the cursor.
func (l *List[T]) Selected() (T, bool) {
	return l.At(l.cursor)
}

// Cursor returns the cursor position within the filtered order.
func (l *List[T]) Cursor() (int, bool) {
	if l.cursor < 0 {
		return 0, false
	}
	return l.cursor, true
}

func (l *List[T]) clampCursor() {
	n := len(l.order)
	switch {
	case n == 0:
		l.cursor = -1
		l.viewportOffset = 0
	case l.cursor < 0:
		l.cursor = 0
	case l.cursor >= n:
		l.cursor = n - 1
	}
	if l.viewportOffset > n-1 {
		l.viewportOffset = 0
	}
}
