package history

import (
	"time"

	"github.com/dshills/scribe/internal/engine/cursor"
)

// EditGroup is the unit of undo: the operations of one user action in
// execution order, with the selection on either side of it.
type EditGroup struct {
	Ops             []EditOperation
	SelectionBefore cursor.Selection
	SelectionAfter  cursor.Selection

	// Timestamp is when the most recent operation was recorded.
	Timestamp time.Time
}

// IsEmpty returns true if the group holds no operations.
func (g *EditGroup) IsEmpty() bool {
	return len(g.Ops) == 0
}

// Last returns the most recent operation. The group must not be empty.
func (g *EditGroup) Last() EditOperation {
	return g.Ops[len(g.Ops)-1]
}

// Inverse returns the operations that undo the group, in the order they
// must be applied.
func (g *EditGroup) Inverse() []EditOperation {
	ops := make([]EditOperation, len(g.Ops))
	for i, op := range g.Ops {
		ops[len(g.Ops)-1-i] = op.Inverse()
	}
	return ops
}

func (g *EditGroup) clone() EditGroup {
	cp := *g
	cp.Ops = append([]EditOperation(nil), g.Ops...)
	return cp
}

// canCoalesce reports whether next may join prev. It requires prev to be
// recent and next to continue a run of single-character typing (not across
// a newline) or of single-character backspacing.
func canCoalesce(prev *EditGroup, next EditOperation, now time.Time, window time.Duration) bool {
	if prev == nil || prev.IsEmpty() || prev.Timestamp.IsZero() {
		return false
	}
	if now.Sub(prev.Timestamp) > window {
		return false
	}

	last := prev.Last()
	if last.Kind != next.Kind || !last.IsSingleChar() || !next.IsSingleChar() {
		return false
	}
	switch next.Kind {
	case OpInsert:
		return next.Position == last.End() && last.Text != "\n"
	case OpDelete:
		return next.Position == last.Position-1
	}
	return false
}
