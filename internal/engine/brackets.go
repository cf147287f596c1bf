package engine

import "github.com/dshills/scribe/internal/engine/cursor"

// FindMatchingBracket returns the offset of the bracket matching the one
// at pos, counting nesting of the same pair only.
func (e *Editor) FindMatchingBracket(pos int) (int, bool) {
	ch, ok := e.doc.CharAt(pos)
	if !ok {
		return 0, false
	}
	for _, pair := range e.lang.BracketPairs() {
		open, closer := pair[0], pair[1]
		switch ch {
		case open:
			return e.scanBracket(pos, +1, open, closer)
		case closer:
			return e.scanBracket(pos, -1, closer, open)
		}
	}
	return 0, false
}

// scanBracket walks from pos in direction dir until self is balanced by
// other.
func (e *Editor) scanBracket(pos, dir int, self, other rune) (int, bool) {
	depth := 1
	for i := pos + dir; i >= 0 && i < e.doc.LenChars(); i += dir {
		switch r, _ := e.doc.CharAt(i); r {
		case self:
			depth++
		case other:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// MatchingBracketAtCursor looks for a bracket at the primary cursor, then
// just before it, and returns the bracket and its match.
func (e *Editor) MatchingBracketAtCursor() (at, match int, ok bool) {
	pos := e.primary().Position()
	if m, ok := e.FindMatchingBracket(pos); ok {
		return pos, m, true
	}
	if pos > 0 {
		if m, ok := e.FindMatchingBracket(pos - 1); ok {
			return pos - 1, m, true
		}
	}
	return 0, 0, false
}

// InsertCharWithAutoBracket types ch at every cursor with bracket
// completion: an opening bracket inserts its pair and leaves the caret
// between them, and a closing bracket steps over an identical character
// already at the caret.
func (e *Editor) InsertCharWithAutoBracket(ch rune) {
	closer, isOpen := e.closerFor(ch)
	isClose := e.isCloser(ch)
	if (!isOpen && !isClose) || e.primary().IsBlockMode() {
		e.InsertChar(ch)
		return
	}

	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		pos := c.Position()
		if isClose && !c.HasSelection() {
			if r, ok := e.doc.CharAt(pos); ok && r == ch {
				c.SetPosition(pos+1, false)
				return
			}
		}
		if !isOpen {
			e.insertAtCursor(c, string(ch))
			return
		}
		e.deleteSelectionOf(c)
		pos = c.Position()
		e.insertAt(pos, string([]rune{ch, closer}))
		e.cursors.AdjustPositions(pos, 2)
		c.SetPosition(pos+1, false)
	})
	e.finishEdit()
}

func (e *Editor) closerFor(open rune) (rune, bool) {
	for _, pair := range e.lang.BracketPairs() {
		if pair[0] == open {
			return pair[1], true
		}
	}
	return 0, false
}

func (e *Editor) isCloser(r rune) bool {
	for _, pair := range e.lang.BracketPairs() {
		if pair[1] == r {
			return true
		}
	}
	return false
}
