package cursor

import (
	"fmt"

	"github.com/dshills/scribe/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Selection is a range of text given as two character offsets.
// Anchor is the fixed end; Cursor is the moving end where typing occurs.
// When Anchor == Cursor there is no selection, only a caret.
type Selection struct {
	Anchor int
	Cursor int
}

// NewSelection creates a selection from anchor to cursor.
func NewSelection(anchor, cursor int) Selection {
	return Selection{Anchor: anchor, Cursor: cursor}
}

// Caret creates a selection with no extent at pos.
func Caret(pos int) Selection {
	return Selection{Anchor: pos, Cursor: pos}
}

// IsEmpty returns true if the selection is only a caret.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Cursor
}

// Range returns the ordered (start, end) bounds.
func (s Selection) Range() (int, int) {
	if s.Anchor <= s.Cursor {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

// Start returns the lower bound.
func (s Selection) Start() int {
	start, _ := s.Range()
	return start
}

// End returns the upper bound.
func (s Selection) End() int {
	_, end := s.Range()
	return end
}

// Len returns the number of selected characters.
func (s Selection) Len() int {
	start, end := s.Range()
	return end - start
}

// IsForward returns true if the cursor is at or after the anchor.
func (s Selection) IsForward() bool {
	return s.Cursor >= s.Anchor
}

// MoveTo moves the cursor end to pos. With extend the anchor stays put;
// without it the selection collapses to pos.
func (s Selection) MoveTo(pos int, extend bool) Selection {
	if extend {
		return Selection{Anchor: s.Anchor, Cursor: pos}
	}
	return Caret(pos)
}

// Collapse drops the selection, keeping the cursor end.
func (s Selection) Collapse() Selection {
	return Caret(s.Cursor)
}

// Union returns a selection covering both ranges, keeping s's direction.
func (s Selection) Union(other Selection) Selection {
	aStart, aEnd := s.Range()
	bStart, bEnd := other.Range()
	start, end := min(aStart, bStart), max(aEnd, bEnd)
	if s.IsForward() {
		return Selection{Anchor: start, Cursor: end}
	}
	return Selection{Anchor: end, Cursor: start}
}

// Clamp limits both ends to [0, length].
func (s Selection) Clamp(length int) Selection {
	return Selection{
		Anchor: max(0, min(s.Anchor, length)),
		Cursor: max(0, min(s.Cursor, length)),
	}
}

// Shift moves every end at or after from by delta, flooring at zero.
func (s Selection) Shift(from, delta int) Selection {
	return Selection{
		Anchor: shiftOffset(s.Anchor, from, delta),
		Cursor: shiftOffset(s.Cursor, from, delta),
	}
}

func shiftOffset(pos, from, delta int) int {
	if pos < from {
		return pos
	}
	return max(0, pos+delta)
}

// String returns a human-readable representation.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret(%d)", s.Cursor)
	}
	return fmt.Sprintf("Selection(%d→%d)", s.Anchor, s.Cursor)
}
