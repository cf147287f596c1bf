package engine

import (
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/fold"
	"github.com/dshills/scribe/internal/log"
)

// FoldRegion is a foldable run of lines.
type FoldRegion = fold.Region

// IndentFolder is implemented by languages whose blocks are marked by
// indentation, such as Python. Other languages fold on brackets.
type IndentFolder interface {
	IndentFolds() bool
}

func (e *Editor) foldStrategy() fold.Strategy {
	if l, ok := e.lang.(IndentFolder); ok && l.IndentFolds() {
		return fold.Indent
	}
	return fold.Brackets
}

// refreshFolds re-detects regions if the text or language changed since
// the last detection.
func (e *Editor) refreshFolds() {
	if !e.folds.Enabled() {
		return
	}
	if e.foldsValid && e.foldVersion == e.doc.Version() {
		return
	}
	e.folds.Detect(e.doc, e.foldStrategy())
	e.foldVersion = e.doc.Version()
	e.foldsValid = true
}

func (e *Editor) cursorLine(c *cursor.Cursor) int {
	return e.doc.CharToLineCol(c.Position()).Line
}

// reveal unfolds any region that hides a cursor.
func (e *Editor) reveal() {
	if !e.folds.AnyFolded() {
		return
	}
	e.refreshFolds()
	for _, c := range e.cursors.Cursors() {
		if line := e.cursorLine(c); e.folds.Reveal(line) {
			log.Debug(log.CatEditor, "revealed fold", "line", line)
		}
	}
}

// lift moves cursors out of hidden lines onto the fold's first line.
func (e *Editor) lift() {
	idx := e.folds.Index()
	if !idx.AnyFolded() {
		return
	}
	for _, c := range e.cursors.Cursors() {
		at := e.doc.CharToLineCol(c.Position())
		if !idx.IsHidden(at.Line) {
			continue
		}
		if c.IsBlockMode() {
			c.ExitBlockMode()
		}
		c.SetPosition(e.doc.LineColToChar(idx.VisibleLine(at.Line), at.Col), false)
	}
	e.cursors.Normalize()
}

// FoldingEnabled reports whether fold regions are detected.
func (e *Editor) FoldingEnabled() bool {
	return e.folds.Enabled()
}

// SetFoldingEnabled turns folding on or off. Turning it off unfolds
// everything.
func (e *Editor) SetFoldingEnabled(enabled bool) {
	e.folds.SetEnabled(enabled)
	e.foldsValid = false
}

// FoldRegions returns the detected regions sorted by first line.
func (e *Editor) FoldRegions() []FoldRegion {
	e.refreshFolds()
	return e.folds.Regions()
}

// Folds returns a read-only view of the regions for mapping between
// document lines and visible rows.
func (e *Editor) Folds() fold.Index {
	e.refreshFolds()
	return e.folds.Index()
}

// ToggleFold folds or unfolds the region around the primary cursor: the
// one starting on its line, else the innermost one containing it. It
// returns false when the cursor is in no region.
func (e *Editor) ToggleFold() bool {
	e.refreshFolds()
	r, ok := e.folds.Index().RegionAt(e.cursorLine(e.primary()))
	if !ok {
		r, ok = e.folds.Index().Enclosing(e.cursorLine(e.primary()))
	}
	if !ok {
		return false
	}
	return e.ToggleFoldAt(r.Start)
}

// ToggleFoldAt flips the region starting on line. Cursors it hides move
// to line. It returns false when no region starts there.
func (e *Editor) ToggleFoldAt(line int) bool {
	e.refreshFolds()
	if !e.folds.Toggle(line) {
		return false
	}
	log.Debug(log.CatEditor, "toggled fold", "line", line, "folded", e.folds.IsFolded(line))
	e.lift()
	return true
}

// FoldAll folds every region.
func (e *Editor) FoldAll() {
	e.refreshFolds()
	e.folds.FoldAll()
	e.lift()
}

// UnfoldAll unfolds every region.
func (e *Editor) UnfoldAll() {
	e.folds.UnfoldAll()
}

// IsLineHidden reports whether line is inside a folded region.
func (e *Editor) IsLineHidden(line int) bool {
	e.refreshFolds()
	return e.folds.IsHidden(line)
}

// IsFoldStart reports whether a region starts on line.
func (e *Editor) IsFoldStart(line int) bool {
	e.refreshFolds()
	return e.folds.IsFoldStart(line)
}

// IsLineFolded reports whether the region starting on line is folded.
func (e *Editor) IsLineFolded(line int) bool {
	e.refreshFolds()
	return e.folds.IsFolded(line)
}
