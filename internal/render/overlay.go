package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scribe/internal/engine"
)

// overlays indexes the non-syntax decorations of a snapshot.
type overlays struct {
	selections []engine.Selection
	matches    []engine.Match
	current    engine.Match
	hasCurrent bool
	secondary  map[engine.Position]bool
	block      engine.BlockSelection
	hasBlock   bool
}

func newOverlays(snap engine.Snapshot) overlays {
	ov := overlays{
		matches:   snap.Matches,
		secondary: make(map[engine.Position]bool),
		block:     snap.Block,
		hasBlock:  snap.HasBlock,
	}
	for _, sel := range snap.Selections {
		if !sel.IsEmpty() {
			ov.selections = append(ov.selections, sel)
		}
	}
	if i := snap.CurrentMatch; i >= 0 && i < len(snap.Matches) {
		ov.current, ov.hasCurrent = snap.Matches[i], true
	}
	for i, pos := range snap.Cursors {
		if i != snap.Primary {
			ov.secondary[pos] = true
		}
	}
	return ov
}

// blockCols returns the block selection's columns on line.
func (ov overlays) blockCols(snap engine.Snapshot, line int) (int, int, bool) {
	if !ov.hasBlock {
		return 0, 0, false
	}
	top, bottom := ov.block.Bounds()
	if line < top.Line || line > bottom.Line {
		return 0, 0, false
	}
	n := snap.Text.LineLenChars(line)
	return min(top.Col, n), min(bottom.Col, n), true
}

// apply layers the decorations covering one character over st.
func (ov overlays) apply(st tcell.Style, line, col, offset int, inBlock bool) tcell.Style {
	for _, m := range ov.matches {
		if offset >= m.Start && offset < m.End {
			st = st.Underline(true)
			break
		}
	}
	if ov.hasCurrent && offset >= ov.current.Start && offset < ov.current.End {
		st = st.Bold(true).Reverse(true)
	}
	selected := inBlock
	for _, sel := range ov.selections {
		if offset >= sel.Start() && offset < sel.End() {
			selected = true
			break
		}
	}
	if selected {
		st = st.Reverse(true)
	}
	if ov.secondary[engine.Position{Line: line, Col: col}] {
		st = st.Reverse(!selected)
	}
	return st
}
