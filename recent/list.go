package recent

// list is a most-recent-first sequence of glyphs with unique codes. The
// only ways in are pushFront and appendBack, both of which enforce the
// bound, so nothing can grow it past capacity.
type list struct {
	items []Glyph
}

func (l *list) indexOf(code string) int {
	for i, g := range l.items {
		if g.Code == code {
			return i
		}
	}
	return -1
}

// pushFront moves g to the head, dropping any earlier occurrence, then
// evicts from the tail until the list fits capacity.
func (l *list) pushFront(g Glyph, capacity int) {
	if i := l.indexOf(g.Code); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
	l.items = append(l.items, Glyph{})
	copy(l.items[1:], l.items)
	l.items[0] = g
	l.trim(capacity)
}

// appendBack adds g at the tail unless its code is already present or the
// list is full. Used while loading, where tokens arrive newest first.
func (l *list) appendBack(g Glyph, capacity int) bool {
	if l.indexOf(g.Code) >= 0 || len(l.items) >= capacity {
		return false
	}
	l.items = append(l.items, g)
	return true
}

func (l *list) remove(code string) bool {
	i := l.indexOf(code)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *list) trim(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if len(l.items) <= capacity {
		return
	}
	clear(l.items[capacity:])
	l.items = l.items[:capacity]
}

func (l *list) reset() {
	clear(l.items)
	l.items = l.items[:0]
}

func (l *list) len() int {
	return len(l.items)
}

func (l *list) snapshot() []Glyph {
	out := make([]Glyph, len(l.items))
	copy(out, l.items)
	return out
}

func (l *list) codes() []string {
	out := make([]string, len(l.items))
	for i, g := range l.items {
		out[i] = g.Code
	}
	return out
}
