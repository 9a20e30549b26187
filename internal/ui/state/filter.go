package state

import "github.com/atomicstack/pman/internal/filter"

// Query returns the current filter text.
func (l *List[T]) Query() string {
	return string(l.query)
}

// PushChar appends r to the query.
func (l *List[T]) PushChar(r rune) {
	l.query = append(l.query, r)
	l.requery()
}

// PopChar removes the last rune of the query. It reports false when the
// query was already empty.
func (l *List[T]) PopChar() bool {
	if len(l.query) == 0 {
		return false
	}
	l.query = l.query[:len(l.query)-1]
	l.requery()
	return true
}

// ClearQuery empties the query. It reports false when nothing changed.
func (l *List[T]) ClearQuery() bool {
	if len(l.query) == 0 {
		return false
	}
	l.query = l.query[:0]
	l.requery()
	return true
}

// requery refilters after a query edit and moves the cursor to the best match.
func (l *List[T]) requery() {
	l.recompute()
	l.cursor = 0
	l.viewportOffset = 0
	l.clampCursor()
}

func (l *List[T]) recompute() {
	texts := make([]string, len(l.items))
	for i, item := range l.items {
		texts[i] = l.search(item)
	}
	l.order = filter.Rank(string(l.query), texts)
}
