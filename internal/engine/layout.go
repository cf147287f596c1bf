package engine

import "github.com/dshills/scribe/internal/engine/wrap"

// WrapSegment is the column range of one wrapped display row.
type WrapSegment = wrap.Segment

// WordWrap reports whether long lines wrap.
func (e *Editor) WordWrap() bool {
	return e.wordWrap
}

// SetWordWrap turns line wrapping on or off.
func (e *Editor) SetWordWrap(enabled bool) {
	e.wordWrap = enabled
}

// ToggleWordWrap flips line wrapping and returns the new setting.
func (e *Editor) ToggleWordWrap() bool {
	e.wordWrap = !e.wordWrap
	return e.wordWrap
}

// WrapWidth returns the wrap limit in columns.
func (e *Editor) WrapWidth() int {
	return e.wrapWidth
}

// SetWrapWidth sets the wrap limit. Values below MinWrapWidth are raised
// to it.
func (e *Editor) SetWrapWidth(cols int) {
	e.wrapWidth = max(cols, MinWrapWidth)
}

// WrappedSegments splits line into display rows at the wrap width. With
// wrapping off the whole line is one segment. It returns nil for a line
// that does not exist.
func (e *Editor) WrappedSegments(line int) []WrapSegment {
	text, ok := e.doc.Line(line)
	if !ok {
		return nil
	}
	if !e.wordWrap {
		return []WrapSegment{{Start: 0, End: e.doc.LineLenChars(line)}}
	}
	return wrap.Line(text, e.wrapWidth, wrap.Columns)
}

// VisualLineCount returns the number of display rows: lines hidden by
// folds are skipped and wrapped lines count once per segment.
func (e *Editor) VisualLineCount() int {
	idx := e.Folds()
	n := e.doc.LenLines()
	if !e.wordWrap {
		return idx.VisibleLineCount(n)
	}
	rows := 0
	for line := 0; line < n; line++ {
		if idx.IsHidden(line) {
			line = idx.NextVisible(line) - 1
			continue
		}
		text, _ := e.doc.Line(line)
		rows += wrap.Rows(text, e.wrapWidth, wrap.Columns)
	}
	return max(rows, 1)
}
