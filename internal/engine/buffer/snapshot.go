package buffer

import (
	"io"

	"github.com/dshills/scribe/internal/engine/rope"
)

// Snapshot is a read-only view of a document at a specific version.
// It never changes, so it may be handed to other goroutines.
type Snapshot struct {
	rope    rope.Rope
	version Version
}

// Version returns the document version the snapshot was taken at.
func (s Snapshot) Version() Version {
	return s.version
}

// Text returns the full content.
func (s Snapshot) Text() string {
	return s.rope.String()
}

// LenChars returns the number of characters.
func (s Snapshot) LenChars() int {
	return s.rope.Len()
}

// LenLines returns the number of lines.
func (s Snapshot) LenLines() int {
	return s.rope.LineCount()
}

// Line returns the text of line i without its newline.
func (s Snapshot) Line(i int) (string, bool) {
	if i < 0 || i >= s.rope.LineCount() {
		return "", false
	}
	return s.rope.LineText(i), true
}

// LineStart returns the offset of the first character of line i.
func (s Snapshot) LineStart(i int) int {
	return s.rope.LineStart(i)
}

// LineLenChars returns the number of characters on line i, excluding the
// newline.
func (s Snapshot) LineLenChars(i int) int {
	return s.rope.LineEnd(i) - s.rope.LineStart(i)
}

// WriteTo writes the snapshot's text to w.
func (s Snapshot) WriteTo(w io.Writer) (int64, error) {
	return s.rope.WriteTo(w)
}
