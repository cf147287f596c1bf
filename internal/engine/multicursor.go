package engine

// CursorCount returns the number of cursors.
func (e *Editor) CursorCount() int {
	return e.cursors.Len()
}

// AddCursorAbove adds a cursor on the line above the topmost cursor, at
// its column clamped to the line. It returns false on the first line.
func (e *Editor) AddCursorAbove() bool {
	top := e.doc.CharToLineCol(e.cursors.At(0).Position())
	if top.Line == 0 {
		return false
	}
	return e.AddCursorAt(top.Line-1, top.Col)
}

// AddCursorBelow adds a cursor on the line below the bottommost cursor. It
// returns false on the last line.
func (e *Editor) AddCursorBelow() bool {
	bottom := e.doc.CharToLineCol(e.cursors.At(e.cursors.Len() - 1).Position())
	if bottom.Line+1 >= e.doc.LenLines() {
		return false
	}
	return e.AddCursorAt(bottom.Line+1, bottom.Col)
}

// AddCursorAt adds a cursor at line and col, both clamped. It returns
// false if a cursor is already there. Block mode ends.
func (e *Editor) AddCursorAt(line, col int) bool {
	e.primary().ExitBlockMode()
	pos := e.doc.LineColToChar(min(max(line, 0), e.doc.LenLines()-1), max(col, 0))
	if !e.cursors.AddCursor(pos) {
		return false
	}
	e.reveal()
	return true
}

// CollapseCursors drops every cursor except the primary.
func (e *Editor) CollapseCursors() {
	e.cursors.CollapseToPrimary()
}

// PrimaryCursorIndex returns the index of the primary cursor in
// AllCursorPositions.
func (e *Editor) PrimaryCursorIndex() int {
	return e.cursors.PrimaryIndex()
}

// AllCursorPositions returns every cursor's line and column in document
// order.
func (e *Editor) AllCursorPositions() []Position {
	offsets := e.cursors.Positions()
	out := make([]Position, len(offsets))
	for i, off := range offsets {
		out[i] = e.doc.CharToLineCol(off)
	}
	return out
}

// AllSelectionRanges returns every cursor's selection in document order.
// Cursors without a selection appear as empty selections at the caret.
func (e *Editor) AllSelectionRanges() []Selection {
	return e.cursors.Selections()
}
