package engine

import "unicode/utf8"

// IsBlockMode reports whether a block selection is active.
func (e *Editor) IsBlockMode() bool {
	return e.primary().IsBlockMode()
}

// StartBlockSelection enters block mode at the primary cursor. Other
// cursors are dropped.
func (e *Editor) StartBlockSelection() {
	e.singleCursor().StartBlockSelection(e.doc)
}

// ExitBlockSelection leaves block mode.
func (e *Editor) ExitBlockSelection() {
	e.primary().ExitBlockMode()
}

// ToggleBlockSelection enters or leaves block mode.
func (e *Editor) ToggleBlockSelection() {
	if e.IsBlockMode() {
		e.ExitBlockSelection()
		return
	}
	e.StartBlockSelection()
}

// ExtendBlockSelection moves the block's cursor corner to line and col and
// the caret with it. It does nothing outside block mode.
func (e *Editor) ExtendBlockSelection(line, col int) {
	c := e.primary()
	if !c.IsBlockMode() {
		return
	}
	c.UpdateBlockSelection(line, col)
	c.SetPosition(e.doc.LineColToChar(line, col), false)
}

// BlockSelection returns the active block selection.
func (e *Editor) BlockSelection() (BlockSelection, bool) {
	return e.primary().Block()
}

// BlockSelectedText returns the selected slice of each line in the block,
// top to bottom. Lines shorter than the block contribute empty strings.
func (e *Editor) BlockSelectedText() ([]string, bool) {
	b, ok := e.primary().Block()
	if !ok {
		return nil, false
	}
	top, bottom := b.Bounds()
	bottom.Line = min(bottom.Line, e.doc.LenLines()-1)

	out := make([]string, 0, bottom.Line-top.Line+1)
	for line := top.Line; line <= bottom.Line; line++ {
		start, end, _ := b.ColRange(e.doc, line)
		ls := e.doc.LineStart(line)
		out = append(out, e.doc.Slice(ls+start, ls+end))
	}
	return out, true
}

// DeleteBlockSelection removes the block's columns from each of its lines
// as one undoable edit, leaves block mode and puts the caret at the
// block's top-left corner. It returns false outside block mode.
func (e *Editor) DeleteBlockSelection() bool {
	c := e.primary()
	b, ok := c.Block()
	if !ok {
		return false
	}
	top, bottom := b.Bounds()

	e.beginEdit()
	// Bottom to top keeps the offsets of lines not yet visited valid.
	for line := min(bottom.Line, e.doc.LenLines()-1); line >= top.Line; line-- {
		start, end, _ := b.ColRange(e.doc, line)
		if start >= end {
			continue
		}
		ls := e.doc.LineStart(line)
		e.removeRange(ls+start, ls+end)
	}
	c.ExitBlockMode()
	c.SetPosition(e.doc.LineColToChar(top.Line, top.Col), false)
	e.finishEdit()
	return true
}

// InsertTextAtBlock inserts text at the block's left column on each of its
// lines, clamped to short lines, as one undoable edit. It then leaves block
// mode with the caret after the text on the top line. Outside block mode
// it behaves like InsertText.
func (e *Editor) InsertTextAtBlock(text string) {
	c := e.primary()
	b, ok := c.Block()
	if !ok {
		e.InsertText(text)
		return
	}
	if text == "" {
		return
	}
	top, bottom := b.Bounds()
	topCol := min(top.Col, e.doc.LineLenChars(top.Line))

	e.beginEdit()
	for line := min(bottom.Line, e.doc.LenLines()-1); line >= top.Line; line-- {
		col := min(top.Col, e.doc.LineLenChars(line))
		e.insertAt(e.doc.LineStart(line)+col, text)
	}
	c.ExitBlockMode()
	c.SetPosition(e.doc.LineStart(top.Line)+topCol+utf8.RuneCountInString(text), false)
	e.finishEdit()
}
