package engine

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/fold"
)

// Snapshot is an immutable copy of everything a renderer needs. It shares
// the document's storage and may be handed to another goroutine.
type Snapshot struct {
	Text    buffer.Snapshot
	Version Version

	// Cursors and Selections are in document order; Primary indexes both.
	Cursors    []Position
	Selections []Selection
	Primary    int

	// Block is valid when HasBlock is set.
	Block    BlockSelection
	HasBlock bool

	Matches      []Match
	CurrentMatch int // -1 when no match is selected

	Modified bool

	// Folds maps document lines to visible rows.
	Folds fold.Index

	// WrapWidth is the wrap limit in columns, or 0 when lines do not wrap.
	WrapWidth int
}

// Snapshot captures the current editor state.
func (e *Editor) Snapshot() Snapshot {
	s := Snapshot{
		Text:         e.doc.Snapshot(),
		Version:      e.doc.Version(),
		Cursors:      e.AllCursorPositions(),
		Selections:   e.cursors.Selections(),
		Primary:      e.cursors.PrimaryIndex(),
		Matches:      append([]Match(nil), e.search.Matches()...),
		CurrentMatch: -1,
		Modified:     e.modified,
		Folds:        e.Folds(),
	}
	if e.wordWrap {
		s.WrapWidth = e.wrapWidth
	}
	s.Block, s.HasBlock = e.primary().Block()
	if i, ok := e.search.CurrentIndex(); ok {
		s.CurrentMatch = i
	}
	return s
}

// LenLines returns the number of lines.
func (s Snapshot) LenLines() int {
	return s.Text.LenLines()
}

// Line returns line i without its newline.
func (s Snapshot) Line(i int) (string, bool) {
	return s.Text.Line(i)
}

// PrimaryCursor returns the primary cursor's position.
func (s Snapshot) PrimaryCursor() Position {
	if s.Primary < 0 || s.Primary >= len(s.Cursors) {
		return Position{}
	}
	return s.Cursors[s.Primary]
}
