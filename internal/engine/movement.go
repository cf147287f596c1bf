package engine

import "github.com/dshills/scribe/internal/engine/cursor"

// move applies a motion to every cursor. In block mode an extending motion
// drags the block's corner with the primary cursor; any other motion
// leaves block mode first.
func (e *Editor) move(extend bool, motion func(c *cursor.Cursor, extend bool)) {
	p := e.primary()
	if p.IsBlockMode() {
		if extend {
			motion(p, false)
			at := e.doc.CharToLineCol(p.Position())
			p.UpdateBlockSelection(at.Line, at.Col)
			return
		}
		p.ExitBlockMode()
	}

	for _, c := range e.cursors.Cursors() {
		motion(c, extend)
	}
	e.cursors.Normalize()
	e.reveal()
}

// vertical wraps a vertical motion so cursors step over folded lines in
// the direction of next. A cursor that would end on a hidden line stays
// where it was.
func (e *Editor) vertical(motion, next func(c *cursor.Cursor, extend bool)) func(c *cursor.Cursor, extend bool) {
	return func(c *cursor.Cursor, extend bool) {
		if !e.folds.AnyFolded() {
			motion(c, extend)
			return
		}
		e.refreshFolds()
		orig := *c
		motion(c, extend)
		for e.folds.IsHidden(e.cursorLine(c)) {
			before := c.Position()
			next(c, extend)
			if c.Position() == before {
				break
			}
		}
		if e.folds.IsHidden(e.cursorLine(c)) {
			*c = orig
		}
	}
}

// MoveLeft moves every cursor one character left.
func (e *Editor) MoveLeft(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveLeft(e.doc, x) })
}

// MoveRight moves every cursor one character right.
func (e *Editor) MoveRight(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveRight(e.doc, x) })
}

// MoveWordLeft moves every cursor to the previous word start.
func (e *Editor) MoveWordLeft(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveWordLeft(e.doc, x) })
}

// MoveWordRight moves every cursor to the next word start.
func (e *Editor) MoveWordRight(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveWordRight(e.doc, x) })
}

// MoveUp moves every cursor up one line.
func (e *Editor) MoveUp(extend bool) {
	up := func(c *cursor.Cursor, x bool) { c.MoveUp(e.doc, x) }
	e.move(extend, e.vertical(up, up))
}

// MoveDown moves every cursor down one line.
func (e *Editor) MoveDown(extend bool) {
	down := func(c *cursor.Cursor, x bool) { c.MoveDown(e.doc, x) }
	e.move(extend, e.vertical(down, down))
}

// MovePageUp moves every cursor up by the page size.
func (e *Editor) MovePageUp(extend bool) {
	e.move(extend, e.vertical(
		func(c *cursor.Cursor, x bool) { c.MovePageUp(e.doc, e.pageSize, x) },
		func(c *cursor.Cursor, x bool) { c.MoveUp(e.doc, x) },
	))
}

// MovePageDown moves every cursor down by the page size.
func (e *Editor) MovePageDown(extend bool) {
	e.move(extend, e.vertical(
		func(c *cursor.Cursor, x bool) { c.MovePageDown(e.doc, e.pageSize, x) },
		func(c *cursor.Cursor, x bool) { c.MoveDown(e.doc, x) },
	))
}

// MoveToLineStart moves every cursor to column 0.
func (e *Editor) MoveToLineStart(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveToLineStart(e.doc, x) })
}

// MoveToLineStartSmart toggles every cursor between the first
// non-whitespace column and column 0.
func (e *Editor) MoveToLineStartSmart(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveToLineStartSmart(e.doc, x) })
}

// MoveToLineEnd moves every cursor to the end of its line.
func (e *Editor) MoveToLineEnd(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveToLineEnd(e.doc, x) })
}

// MoveToBufferStart moves every cursor to the document start. The cursors
// merge unless they extend selections.
func (e *Editor) MoveToBufferStart(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveToBufferStart(x) })
}

// MoveToBufferEnd moves every cursor to the document end.
func (e *Editor) MoveToBufferEnd(extend bool) {
	e.move(extend, func(c *cursor.Cursor, x bool) { c.MoveToBufferEnd(e.doc, x) })
}

// ============================================================================
// Positioning
// ============================================================================

// CursorPosition returns the primary cursor's line and column.
func (e *Editor) CursorPosition() Position {
	return e.doc.CharToLineCol(e.primary().Position())
}

// CursorOffset returns the primary cursor's character offset.
func (e *Editor) CursorOffset() int {
	return e.primary().Position()
}

// Selection returns the primary cursor's selection.
func (e *Editor) Selection() Selection {
	return e.primary().Selection()
}

// HasSelection reports whether the primary cursor has a selection.
func (e *Editor) HasSelection() bool {
	return e.primary().HasSelection()
}

// SelectedRange returns the primary selection bounds.
func (e *Editor) SelectedRange() (start, end int, ok bool) {
	return e.primary().SelectedRange()
}

// SetCursorPosition places the primary cursor at line and col (0-based,
// clamped) and drops the other cursors.
func (e *Editor) SetCursorPosition(line, col int, extend bool) {
	c := e.singleCursor()
	c.ExitBlockMode()
	c.SetPosition(e.doc.LineColToChar(line, max(col, 0)), extend)
	e.reveal()
}

// SetSelection replaces the primary selection, clamped to the document,
// and drops the other cursors.
func (e *Editor) SetSelection(sel Selection) {
	c := e.singleCursor()
	c.ExitBlockMode()
	c.SetSelection(sel.Clamp(e.doc.LenChars()))
	e.reveal()
}

// GoToLine moves to the start of a 1-based line. It returns false if the
// line does not exist.
func (e *Editor) GoToLine(n int) bool {
	return e.GoToLineCol(n, 1)
}

// GoToLineCol moves to a 1-based line and column. Columns past the line
// end clamp to it; a column below 1 means the first.
func (e *Editor) GoToLineCol(line, col int) bool {
	if line < 1 || line > e.doc.LenLines() {
		return false
	}
	e.SetCursorPosition(line-1, max(col-1, 0), false)
	return true
}

// SelectAll selects the whole document with a single cursor.
func (e *Editor) SelectAll() {
	e.SetSelection(cursor.NewSelection(0, e.doc.LenChars()))
}

// ClearSelection collapses every selection and leaves block mode.
func (e *Editor) ClearSelection() {
	e.primary().ExitBlockMode()
	for _, c := range e.cursors.Cursors() {
		c.CollapseSelection()
	}
	e.cursors.Normalize()
}
