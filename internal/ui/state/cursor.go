package state

// MoveUp moves the cursor one row up, wrapping from the first row to the last.
func (l *List[T]) MoveUp() bool {
	n := len(l.order)
	if n == 0 {
		return false
	}
	old := l.cursor
	l.cursor = (l.cursor - 1 + n) % n
	return old != l.cursor
}

// MoveDown moves the cursor one row down, wrapping from the last row to the first.
func (l *List[T]) MoveDown() bool {
	n := len(l.order)
	if n == 0 {
		return false
	}
	old := l.cursor
	l.cursor = (l.cursor + 1) % n
	return old != l.cursor
}

// PageUp moves the cursor up by n rows, stopping at the first row.
func (l *List[T]) PageUp(n int) bool {
	return l.moveCursorBy(-l.pageSize(n))
}

// PageDown moves the cursor down by n rows, stopping at the last row.
func (l *List[T]) PageDown(n int) bool {
	return l.moveCursorBy(l.pageSize(n))
}

func (l *List[T]) moveCursorBy(delta int) bool {
	if len(l.order) == 0 {
		return false
	}
	old := l.cursor
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.order) {
		l.cursor = len(l.order) - 1
	}
	return l.cursor != old
}

func (l *List[T]) pageSize(n int) int {
	total := len(l.order)
	if total == 0 {
		return 0
	}
	size := n
	if size <= 0 || size > total {
		size = total
	}
	return size
}

// Viewport returns the half-open range of filtered rows to draw so the cursor
// stays visible within maxVisible rows.
func (l *List[T]) Viewport(maxVisible int) (start, end int) {
	total := len(l.order)
	if total == 0 {
		l.viewportOffset = 0
		return 0, 0
	}
	if maxVisible <= 0 || maxVisible >= total {
		l.viewportOffset = 0
		return 0, total
	}
	maxOffset := total - maxVisible
	if l.viewportOffset > maxOffset {
		l.viewportOffset = maxOffset
	}
	if l.viewportOffset < 0 {
		l.viewportOffset = 0
	}
	if l.cursor < l.viewportOffset {
		l.viewportOffset = l.cursor
	}
	if upper := l.viewportOffset + maxVisible - 1; l.cursor > upper {
		l.viewportOffset = l.cursor - maxVisible + 1
	}
	return l.viewportOffset, l.viewportOffset + maxVisible
}
