package engine

import (
	"strings"
	"unicode/utf8"
)

// DuplicateLine copies the primary cursor's line below itself and moves
// the cursor to the start of the copy.
func (e *Editor) DuplicateLine() {
	c := e.singleCursor()
	c.ExitBlockMode()
	line := e.doc.CharToLineCol(c.Position()).Line

	e.beginEdit()
	text, _ := e.doc.LineWithNewline(line)
	if strings.HasSuffix(text, "\n") {
		e.insertAt(e.doc.LineStart(line), text)
	} else {
		e.insertAt(e.doc.LenChars(), "\n"+text)
	}
	c.SetPosition(e.doc.LineStart(line+1), false)
	e.finishEdit()
}

// MoveLineUp swaps the primary cursor's line with the one above. It
// returns false on the first line.
func (e *Editor) MoveLineUp() bool {
	c := e.singleCursor()
	c.ExitBlockMode()
	at := e.doc.CharToLineCol(c.Position())
	if at.Line == 0 {
		return false
	}

	e.beginEdit()
	start := e.doc.LineStart(at.Line)
	if at.Line+1 < e.doc.LenLines() {
		text := e.removeRange(start, e.doc.LineStart(at.Line+1))
		e.insertAt(e.doc.LineStart(at.Line-1), text)
	} else {
		// The last line has no newline of its own; take the one before it.
		text := e.removeRange(start-1, e.doc.LenChars())
		e.insertAt(e.doc.LineStart(at.Line-1), text[1:]+"\n")
	}
	c.SetPosition(e.doc.LineColToChar(at.Line-1, at.Col), false)
	e.finishEdit()
	return true
}

// MoveLineDown swaps the primary cursor's line with the one below. It
// returns false on the last line.
func (e *Editor) MoveLineDown() bool {
	c := e.singleCursor()
	c.ExitBlockMode()
	at := e.doc.CharToLineCol(c.Position())
	if at.Line+1 >= e.doc.LenLines() {
		return false
	}

	e.beginEdit()
	text := e.removeRange(e.doc.LineStart(at.Line), e.doc.LineStart(at.Line+1))
	if at.Line+1 < e.doc.LenLines() {
		e.insertAt(e.doc.LineStart(at.Line+1), text)
	} else {
		// The line below was the last one.
		e.insertAt(e.doc.LenChars(), "\n"+strings.TrimSuffix(text, "\n"))
	}
	c.SetPosition(e.doc.LineColToChar(at.Line+1, at.Col), false)
	e.finishEdit()
	return true
}

// ToggleComment comments or uncomments the primary cursor's line, or
// every line its selection touches. A selection ending at column 0 does
// not include that line. When every line is already commented the prefix
// (and one following space) is removed; otherwise "prefix " is inserted
// at each line's first non-whitespace column. It returns false when the
// language has no line comments.
func (e *Editor) ToggleComment() bool {
	prefix := e.lang.LineComment()
	if prefix == "" {
		return false
	}
	c := e.singleCursor()
	c.ExitBlockMode()

	first, last := e.selectedLines()
	uncomment := true
	for line := first; line <= last; line++ {
		text, _ := e.doc.Line(line)
		if !strings.HasPrefix(strings.TrimLeft(text, " \t"), prefix) {
			uncomment = false
			break
		}
	}

	prefixLen := utf8.RuneCountInString(prefix)
	sel := c.Selection()

	e.beginEdit()
	for line := first; line <= last; line++ {
		pos := e.doc.LineStart(line) + e.doc.FirstNonWhitespaceCol(line)
		if !uncomment {
			e.insertAt(pos, prefix+" ")
			sel = sel.Shift(pos, prefixLen+1)
			continue
		}

		n := prefixLen
		if r, ok := e.doc.CharAt(pos + n); ok && r == ' ' {
			n++
		}
		e.removeRange(pos, pos+n)
		sel = Selection{
			Anchor: offsetAfterDelete(sel.Anchor, pos, n),
			Cursor: offsetAfterDelete(sel.Cursor, pos, n),
		}
	}
	c.SetSelection(sel)
	e.finishEdit()
	return true
}

// selectedLines returns the first and last line touched by the primary
// selection.
func (e *Editor) selectedLines() (int, int) {
	c := e.primary()
	start, end, ok := c.SelectedRange()
	if !ok {
		line := e.doc.CharToLineCol(c.Position()).Line
		return line, line
	}
	first := e.doc.CharToLineCol(start).Line
	last := e.doc.CharToLineCol(end)
	if last.Col == 0 && last.Line > first {
		return first, last.Line - 1
	}
	return first, last.Line
}

// offsetAfterDelete maps pos across the deletion of n characters at start.
func offsetAfterDelete(pos, start, n int) int {
	switch {
	case pos <= start:
		return pos
	case pos < start+n:
		return start
	default:
		return pos - n
	}
}
