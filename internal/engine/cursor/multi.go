package cursor

import "sort"

// MultiCursor is an ordered set of cursors with one designated primary.
// Cursors are kept sorted by position and no two selections overlap or
// touch; such cursors are merged. There is always at least one cursor.
type MultiCursor struct {
	cursors []*Cursor
	primary int
}

// NewMultiCursor creates a set holding a single caret at pos.
func NewMultiCursor(pos int) *MultiCursor {
	return &MultiCursor{cursors: []*Cursor{NewCursor(pos)}}
}

// Primary returns the primary cursor.
func (m *MultiCursor) Primary() *Cursor {
	return m.cursors[m.primary]
}

// PrimaryIndex returns the index of the primary cursor.
func (m *MultiCursor) PrimaryIndex() int {
	return m.primary
}

// Len returns the number of cursors.
func (m *MultiCursor) Len() int {
	return len(m.cursors)
}

// IsSingle returns true when only the primary cursor exists.
func (m *MultiCursor) IsSingle() bool {
	return len(m.cursors) == 1
}

// At returns the cursor at index i.
func (m *MultiCursor) At(i int) *Cursor {
	return m.cursors[i]
}

// Cursors returns the cursors in order. The slice is a copy; the cursors
// are shared.
func (m *MultiCursor) Cursors() []*Cursor {
	out := make([]*Cursor, len(m.cursors))
	copy(out, m.cursors)
	return out
}

// Positions returns every cursor position in order.
func (m *MultiCursor) Positions() []int {
	out := make([]int, len(m.cursors))
	for i, c := range m.cursors {
		out[i] = c.Position()
	}
	return out
}

// Selections returns every selection in order.
func (m *MultiCursor) Selections() []Selection {
	out := make([]Selection, len(m.cursors))
	for i, c := range m.cursors {
		out[i] = c.Selection()
	}
	return out
}

// AddCursor adds a caret at pos. It returns false if a cursor already sits
// exactly at pos.
func (m *MultiCursor) AddCursor(pos int) bool {
	for _, c := range m.cursors {
		if c.Position() == pos {
			return false
		}
	}
	m.cursors = append(m.cursors, NewCursor(pos))
	m.Normalize()
	return true
}

// RemoveCursor removes the cursor at index. Removing the last remaining
// cursor, or an index out of range, does nothing.
func (m *MultiCursor) RemoveCursor(index int) bool {
	if len(m.cursors) <= 1 || index < 0 || index >= len(m.cursors) {
		return false
	}
	m.cursors = append(m.cursors[:index], m.cursors[index+1:]...)
	switch {
	case index < m.primary:
		m.primary--
	case index == m.primary:
		m.primary = min(index, len(m.cursors)-1)
	}
	return true
}

// CollapseToPrimary discards every cursor except the primary.
func (m *MultiCursor) CollapseToPrimary() {
	m.cursors = []*Cursor{m.Primary()}
	m.primary = 0
}

// Reset replaces every cursor with a single caret at pos.
func (m *MultiCursor) Reset(pos int) {
	m.cursors = []*Cursor{NewCursor(pos)}
	m.primary = 0
}

// Normalize sorts the cursors and merges overlapping or touching ones.
// The primary is tracked by its position across the sort; if it is merged
// into a neighbor, the merged cursor becomes primary.
func (m *MultiCursor) Normalize() {
	primaryPos := m.Primary().Position()

	sort.SliceStable(m.cursors, func(i, j int) bool {
		a, b := m.cursors[i].Selection(), m.cursors[j].Selection()
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() < b.End()
	})

	m.primary = 0
	for i, c := range m.cursors {
		if c.Position() == primaryPos {
			m.primary = i
			break
		}
	}

	for i := 0; i+1 < len(m.cursors); {
		a, b := m.cursors[i], m.cursors[i+1]
		if a.Selection().End() < b.Selection().Start() {
			i++
			continue
		}
		if i+1 == m.primary && a.Selection().IsEmpty() {
			a.SetSelection(b.Selection().Union(a.Selection()))
		} else {
			a.SetSelection(a.Selection().Union(b.Selection()))
		}
		m.cursors = append(m.cursors[:i+1], m.cursors[i+2:]...)
		if m.primary > i {
			m.primary--
		}
	}
}

// AdjustPositions shifts every anchor and cursor at or after from by
// delta, flooring at zero.
func (m *MultiCursor) AdjustPositions(from, delta int) {
	for _, c := range m.cursors {
		c.Shift(from, delta)
	}
}

// ClampToBuffer pulls every cursor back into the document.
func (m *MultiCursor) ClampToBuffer(doc Text) {
	for _, c := range m.cursors {
		c.ClampToBuffer(doc)
	}
}
