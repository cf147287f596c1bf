package buffer

import (
	"unicode/utf8"

	"github.com/dshills/scribe/internal/engine/rope"
)

// Document is a mutable, character-indexed text document.
//
// Every index argument is clamped to [0, LenChars()] and every line
// argument to [0, LenLines()], so no input can make a method panic.
// Document is not safe for concurrent mutation; readers on other
// goroutines should take a Snapshot.
type Document struct {
	rope    rope.Rope
	version Version
}

// New creates an empty document.
func New() *Document {
	return &Document{rope: rope.New(), version: 1}
}

// NewFromString creates a document holding s.
func NewFromString(s string) *Document {
	return &Document{rope: rope.FromString(s), version: 1}
}

// LenChars returns the number of characters.
func (d *Document) LenChars() int {
	return d.rope.Len()
}

// LenLines returns the number of lines, which is always the newline count
// plus one.
func (d *Document) LenLines() int {
	return d.rope.LineCount()
}

// IsEmpty reports whether the document has no text.
func (d *Document) IsEmpty() bool {
	return d.rope.IsEmpty()
}

// Version returns the current revision.
func (d *Document) Version() Version {
	return d.version
}

// String returns the full text.
func (d *Document) String() string {
	return d.rope.String()
}

// Slice returns the text in [start, end), clamped.
func (d *Document) Slice(start, end int) string {
	return d.rope.Slice(start, end)
}

// SetText replaces the whole content.
func (d *Document) SetText(s string) {
	d.rope = rope.FromString(s)
	d.version++
}

// Insert inserts text at the clamped index.
func (d *Document) Insert(at int, text string) {
	if text == "" {
		return
	}
	d.rope = d.rope.Insert(d.clamp(at), text)
	d.version++
}

// InsertChar inserts a single character at the clamped index.
func (d *Document) InsertChar(at int, ch rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ch)
	d.Insert(at, string(buf[:n]))
}

// Remove deletes [start, end). It is a no-op when start >= end after
// clamping.
func (d *Document) Remove(start, end int) {
	start, end = d.clamp(start), d.clamp(end)
	if start >= end {
		return
	}
	d.rope = d.rope.Delete(start, end)
	d.version++
}

// CharAt returns the character at i.
func (d *Document) CharAt(i int) (rune, bool) {
	return d.rope.CharAt(i)
}

// CharToLineCol converts a character index to a position.
func (d *Document) CharToLineCol(i int) Position {
	p := d.rope.OffsetToPoint(d.clamp(i))
	return Position{Line: p.Line, Col: p.Column}
}

// LineColToChar converts a position to a character index. Lines past the
// end map to LenChars(); columns past the line end clamp to it.
func (d *Document) LineColToChar(line, col int) int {
	if line < 0 {
		line = 0
	}
	return d.rope.PointToOffset(rope.Point{Line: line, Column: col})
}

// PositionToChar is LineColToChar for a Position.
func (d *Document) PositionToChar(p Position) int {
	return d.LineColToChar(p.Line, p.Col)
}

// Line returns the text of line i without its newline.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= d.LenLines() {
		return "", false
	}
	return d.rope.LineText(i), true
}

// LineWithNewline returns the text of line i including its trailing
// newline, if it has one.
func (d *Document) LineWithNewline(i int) (string, bool) {
	if i < 0 || i >= d.LenLines() {
		return "", false
	}
	return d.rope.Slice(d.LineStart(i), d.LineStart(i+1)), true
}

// LineLenChars returns the number of characters on line i, excluding the
// newline.
func (d *Document) LineLenChars(i int) int {
	return d.LineEnd(i) - d.LineStart(i)
}

// LineStart returns the index of the first character of line i.
// Lines at or past LenLines() return LenChars().
func (d *Document) LineStart(i int) int {
	return d.rope.LineStart(i)
}

// LineEnd returns the index just before line i's newline.
// Lines at or past LenLines() return LenChars().
func (d *Document) LineEnd(i int) int {
	return d.rope.LineEnd(i)
}

// FirstNonWhitespaceCol returns the column of the first character on line
// i that is not a space or tab. All-blank lines return the line length.
func (d *Document) FirstNonWhitespaceCol(i int) int {
	text, ok := d.Line(i)
	if !ok {
		return 0
	}
	col := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return col
}

// Snapshot returns an immutable view of the current content.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{rope: d.rope, version: d.version}
}

func (d *Document) clamp(i int) int {
	return max(0, min(i, d.rope.Len()))
}
