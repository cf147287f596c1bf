package cursor

// BlockSelection is a rectangular selection spanning a range of lines and
// a range of columns. The column range is end-exclusive.
type BlockSelection struct {
	Anchor Position
	Cursor Position
}

// Bounds returns the normalized top-left and bottom-right corners.
func (b BlockSelection) Bounds() (Position, Position) {
	top := Position{Line: min(b.Anchor.Line, b.Cursor.Line), Col: min(b.Anchor.Col, b.Cursor.Col)}
	bottom := Position{Line: max(b.Anchor.Line, b.Cursor.Line), Col: max(b.Anchor.Col, b.Cursor.Col)}
	return top, bottom
}

// LineCount returns the number of lines covered.
func (b BlockSelection) LineCount() int {
	top, bottom := b.Bounds()
	return bottom.Line - top.Line + 1
}

// ColRange returns the selected column range on line, clipped to the
// line's length. Lines shorter than the rectangle yield an empty range.
// ok is false when line lies outside the block.
func (b BlockSelection) ColRange(doc Text, line int) (start, end int, ok bool) {
	top, bottom := b.Bounds()
	if line < top.Line || line > bottom.Line {
		return 0, 0, false
	}
	n := doc.LineLenChars(line)
	return min(top.Col, n), min(bottom.Col, n), true
}
