package cursor

// Text is the read-only document surface cursor movement needs.
// *buffer.Document implements it.
type Text interface {
	LenChars() int
	LenLines() int
	CharToLineCol(i int) Position
	LineColToChar(line, col int) int
	LineStart(line int) int
	LineEnd(line int) int
	LineLenChars(line int) int
	FirstNonWhitespaceCol(line int) int
	FindWordBoundaryLeft(pos int) int
	FindWordBoundaryRight(pos int) int
}

// Mode is the cursor's selection mode.
type Mode uint8

const (
	// ModeNormal uses the linear anchor/cursor selection.
	ModeNormal Mode = iota

	// ModeBlock uses the rectangular block selection.
	ModeBlock
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeBlock {
		return "block"
	}
	return "normal"
}

// Cursor is a caret with an optional linear or block selection.
//
// The preferred column is remembered across consecutive vertical moves so
// that passing through short lines does not lose the horizontal position.
// Any other motion, or an explicit position set, forgets it.
type Cursor struct {
	sel          Selection
	block        BlockSelection
	mode         Mode
	preferredCol int
	hasPreferred bool
}

// NewCursor creates a caret at pos.
func NewCursor(pos int) *Cursor {
	return &Cursor{sel: Caret(max(pos, 0))}
}

// Position returns the cursor end of the selection.
func (c *Cursor) Position() int {
	return c.sel.Cursor
}

// Selection returns the linear selection.
func (c *Cursor) Selection() Selection {
	return c.sel
}

// SetSelection replaces the linear selection and forgets the preferred
// column.
func (c *Cursor) SetSelection(sel Selection) {
	c.sel = sel
	c.hasPreferred = false
}

// SetPosition moves the cursor end to pos, extending or collapsing.
func (c *Cursor) SetPosition(pos int, extend bool) {
	c.SetSelection(c.sel.MoveTo(pos, extend))
}

// HasSelection returns true if the linear selection is non-empty.
func (c *Cursor) HasSelection() bool {
	return !c.sel.IsEmpty()
}

// SelectedRange returns the ordered selection bounds, or ok == false when
// there is only a caret.
func (c *Cursor) SelectedRange() (start, end int, ok bool) {
	if c.sel.IsEmpty() {
		return 0, 0, false
	}
	start, end = c.sel.Range()
	return start, end, true
}

// CollapseSelection drops the selection, keeping the caret.
func (c *Cursor) CollapseSelection() {
	c.sel = c.sel.Collapse()
}

// PreferredColumn returns the remembered column, if any.
func (c *Cursor) PreferredColumn() (int, bool) {
	return c.preferredCol, c.hasPreferred
}

// Mode returns the selection mode.
func (c *Cursor) Mode() Mode {
	return c.mode
}

// IsBlockMode returns true while a block selection is active.
func (c *Cursor) IsBlockMode() bool {
	return c.mode == ModeBlock
}

// Block returns the block selection, or ok == false outside block mode.
func (c *Cursor) Block() (BlockSelection, bool) {
	if c.mode != ModeBlock {
		return BlockSelection{}, false
	}
	return c.block, true
}

// Clone returns an independent copy.
func (c *Cursor) Clone() *Cursor {
	cp := *c
	return &cp
}

// ========================================================================
// Horizontal movement
// ========================================================================

// MoveLeft moves one character left. Without extend, an active selection
// collapses to its left edge instead.
func (c *Cursor) MoveLeft(doc Text, extend bool) {
	if !extend && c.HasSelection() {
		c.SetPosition(c.sel.Start(), false)
		return
	}
	c.SetPosition(max(c.sel.Cursor-1, 0), extend)
}

// MoveRight moves one character right. Without extend, an active
// selection collapses to its right edge instead.
func (c *Cursor) MoveRight(doc Text, extend bool) {
	if !extend && c.HasSelection() {
		c.SetPosition(c.sel.End(), false)
		return
	}
	c.SetPosition(min(c.sel.Cursor+1, doc.LenChars()), extend)
}

// MoveWordLeft moves to the previous word boundary.
func (c *Cursor) MoveWordLeft(doc Text, extend bool) {
	c.SetPosition(doc.FindWordBoundaryLeft(c.sel.Cursor), extend)
}

// MoveWordRight moves to the next word boundary.
func (c *Cursor) MoveWordRight(doc Text, extend bool) {
	c.SetPosition(doc.FindWordBoundaryRight(c.sel.Cursor), extend)
}

// MoveToLineStart moves to column 0.
func (c *Cursor) MoveToLineStart(doc Text, extend bool) {
	line := doc.CharToLineCol(c.sel.Cursor).Line
	c.SetPosition(doc.LineStart(line), extend)
}

// MoveToLineStartSmart toggles between column 0 and the first
// non-whitespace column. From column 0, or from past the indentation, it
// goes to the indentation; from within or at the indentation it goes to
// column 0. Blank lines always resolve to column 0.
func (c *Cursor) MoveToLineStartSmart(doc Text, extend bool) {
	pos := doc.CharToLineCol(c.sel.Cursor)
	lineLen := doc.LineLenChars(pos.Line)
	indent := doc.FirstNonWhitespaceCol(pos.Line)

	target := 0
	if indent < lineLen && (pos.Col == 0 || pos.Col > indent) {
		target = indent
	}
	if target == pos.Col && indent < lineLen {
		if target == 0 {
			target = indent
		} else {
			target = 0
		}
	}
	c.SetPosition(doc.LineStart(pos.Line)+target, extend)
}

// MoveToLineEnd moves to the end of the line, before its newline.
func (c *Cursor) MoveToLineEnd(doc Text, extend bool) {
	line := doc.CharToLineCol(c.sel.Cursor).Line
	c.SetPosition(doc.LineEnd(line), extend)
}

// MoveToBufferStart moves to offset 0.
func (c *Cursor) MoveToBufferStart(extend bool) {
	c.SetPosition(0, extend)
}

// MoveToBufferEnd moves to the end of the document.
func (c *Cursor) MoveToBufferEnd(doc Text, extend bool) {
	c.SetPosition(doc.LenChars(), extend)
}

// ========================================================================
// Vertical movement
// ========================================================================

// beginVertical returns the current position and the column to aim for,
// establishing the preferred column on the first vertical move.
func (c *Cursor) beginVertical(doc Text) (Position, int) {
	pos := doc.CharToLineCol(c.sel.Cursor)
	if !c.hasPreferred {
		c.preferredCol = pos.Col
		c.hasPreferred = true
	}
	return pos, c.preferredCol
}

// moveVertical sets the selection without forgetting the preferred column.
func (c *Cursor) moveVertical(pos int, extend bool) {
	c.sel = c.sel.MoveTo(pos, extend)
}

// MoveUp moves one line up, aiming for the preferred column. On the first
// line it moves to the document start.
func (c *Cursor) MoveUp(doc Text, extend bool) {
	pos, col := c.beginVertical(doc)
	if pos.Line == 0 {
		c.SetPosition(0, extend)
		return
	}
	c.moveVertical(doc.LineColToChar(pos.Line-1, col), extend)
}

// MoveDown moves one line down, aiming for the preferred column. On the
// last line it moves to the document end.
func (c *Cursor) MoveDown(doc Text, extend bool) {
	pos, col := c.beginVertical(doc)
	if pos.Line >= doc.LenLines()-1 {
		c.SetPosition(doc.LenChars(), extend)
		return
	}
	c.moveVertical(doc.LineColToChar(pos.Line+1, col), extend)
}

// MovePageUp moves pageLines up, stopping at the first line.
func (c *Cursor) MovePageUp(doc Text, pageLines int, extend bool) {
	pos, col := c.beginVertical(doc)
	target := max(pos.Line-max(pageLines, 1), 0)
	c.moveVertical(doc.LineColToChar(target, col), extend)
}

// MovePageDown moves pageLines down, stopping at the last line.
func (c *Cursor) MovePageDown(doc Text, pageLines int, extend bool) {
	pos, col := c.beginVertical(doc)
	target := min(pos.Line+max(pageLines, 1), doc.LenLines()-1)
	c.moveVertical(doc.LineColToChar(target, col), extend)
}

// ClampToBuffer pulls both selection ends back into the document.
func (c *Cursor) ClampToBuffer(doc Text) {
	c.sel = c.sel.Clamp(doc.LenChars())
}

// Shift moves selection ends at or after from by delta, flooring at 0.
func (c *Cursor) Shift(from, delta int) {
	c.sel = c.sel.Shift(from, delta)
}

// ========================================================================
// Block selection
// ========================================================================

// StartBlockSelection enters block mode with both corners at the caret.
// Any linear selection collapses.
func (c *Cursor) StartBlockSelection(doc Text) {
	at := doc.CharToLineCol(c.sel.Cursor)
	c.sel = c.sel.Collapse()
	c.block = BlockSelection{Anchor: at, Cursor: at}
	c.mode = ModeBlock
	c.hasPreferred = false
}

// UpdateBlockSelection moves the block's cursor corner. It does nothing
// outside block mode.
func (c *Cursor) UpdateBlockSelection(line, col int) {
	if c.mode != ModeBlock {
		return
	}
	c.block.Cursor = Position{Line: max(line, 0), Col: max(col, 0)}
}

// ExitBlockMode discards the block and returns to normal mode.
func (c *Cursor) ExitBlockMode() {
	c.block = BlockSelection{}
	c.mode = ModeNormal
}
