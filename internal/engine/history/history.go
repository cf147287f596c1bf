package history

import (
	"time"

	"github.com/dshills/scribe/internal/engine/cursor"
)

const (
	// DefaultMaxSize is the default undo stack bound.
	DefaultMaxSize = 1000

	// DefaultCoalesceWindow is the default gap allowed between merged edits.
	DefaultCoalesceWindow = 500 * time.Millisecond
)

// History manages undo/redo state for one document.
// It is not safe for concurrent use; the owning editor serializes access.
type History struct {
	undo []*EditGroup
	redo []*EditGroup

	// current is the group opened by BeginEdit, if any.
	current *EditGroup

	// sealed stops the top undo group from absorbing more edits.
	sealed bool

	// Configuration
	maxSize    int
	window     time.Duration
	coalescing bool
	now        func() time.Time
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		maxSize:    DefaultMaxSize,
		window:     DefaultCoalesceWindow,
		coalescing: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BeginEdit opens a group. Any group already open is committed first.
func (h *History) BeginEdit(before cursor.Selection) {
	if h.current != nil {
		h.CommitEdit(h.current.SelectionAfter)
	}
	h.current = &EditGroup{
		SelectionBefore: before,
		SelectionAfter:  before,
	}
}

// InEdit returns true if a group is open.
func (h *History) InEdit() bool {
	return h.current != nil
}

// Record adds an operation. Inside BeginEdit/CommitEdit it joins the open
// group. Otherwise it either coalesces into the most recent group or
// becomes a group of its own, with carets placed as a typing or
// backspacing user would leave them.
func (h *History) Record(op EditOperation) {
	if op.Text == "" {
		return
	}
	now := h.now()

	if h.current != nil {
		h.current.Ops = append(h.current.Ops, op)
		h.current.Timestamp = now
		return
	}

	if top := h.top(); h.coalescing && !h.sealed && canCoalesce(top, op, now, h.window) {
		top.Ops = append(top.Ops, op)
		top.Timestamp = now
		top.SelectionAfter = caretAfter(op)
		h.redo = nil
		return
	}

	g := &EditGroup{
		Ops:       []EditOperation{op},
		Timestamp: now,
	}
	g.SelectionBefore, g.SelectionAfter = caretBefore(op), caretAfter(op)
	h.push(g)
}

// SetSelectionAfter updates the selection the open group restores on redo.
func (h *History) SetSelectionAfter(sel cursor.Selection) {
	if h.current != nil {
		h.current.SelectionAfter = sel
	}
}

// CommitEdit closes the open group. An empty group is discarded. A group
// whose leading operation continues a typing run merges into the previous
// group.
func (h *History) CommitEdit(after cursor.Selection) {
	g := h.current
	h.current = nil
	if g == nil || g.IsEmpty() {
		return
	}
	g.SelectionAfter = after
	if g.Timestamp.IsZero() {
		g.Timestamp = h.now()
	}

	if top := h.top(); h.coalescing && !h.sealed &&
		canCoalesce(top, g.Ops[0], g.Timestamp, h.window) {
		top.Ops = append(top.Ops, g.Ops...)
		top.SelectionAfter = g.SelectionAfter
		top.Timestamp = g.Timestamp
		h.redo = nil
		return
	}
	h.push(g)
}

// Undo pops the most recent group and returns the operations that revert
// it, in the order they must be applied, plus the selection to restore.
// ok is false when there is nothing to undo.
func (h *History) Undo() (ops []EditOperation, sel cursor.Selection, ok bool) {
	if h.current != nil {
		h.CommitEdit(h.current.SelectionAfter)
	}
	if len(h.undo) == 0 {
		return nil, cursor.Selection{}, false
	}

	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	h.sealed = true

	return g.Inverse(), g.SelectionBefore, true
}

// Redo pops the most recently undone group and returns its operations in
// their original order, plus the selection to restore. ok is false when
// there is nothing to redo.
func (h *History) Redo() (ops []EditOperation, sel cursor.Selection, ok bool) {
	if h.current != nil {
		h.CommitEdit(h.current.SelectionAfter)
	}
	if len(h.redo) == 0 {
		return nil, cursor.Selection{}, false
	}

	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	h.sealed = true

	return append([]EditOperation(nil), g.Ops...), g.SelectionAfter, true
}

// CanUndo returns true if there are groups to undo.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0 || (h.current != nil && !h.current.IsEmpty())
}

// CanRedo returns true if there are groups to redo.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of committed undo groups.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of redo groups.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// PeekUndo returns a copy of the group Undo would revert.
func (h *History) PeekUndo() (EditGroup, bool) {
	top := h.top()
	if top == nil {
		return EditGroup{}, false
	}
	return top.clone(), true
}

// Clear drops all history, including any open group.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.current = nil
	h.sealed = true
}

// SetCoalescing enables or disables merging of typing runs.
func (h *History) SetCoalescing(enabled bool) {
	h.coalescing = enabled
}

// SetCoalesceWindow sets the maximum gap between merged edits.
func (h *History) SetCoalesceWindow(d time.Duration) {
	if d >= 0 {
		h.window = d
	}
}

// MaxSize returns the undo stack bound.
func (h *History) MaxSize() int {
	return h.maxSize
}

func (h *History) top() *EditGroup {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

func (h *History) push(g *EditGroup) {
	h.undo = append(h.undo, g)
	h.redo = nil
	h.sealed = false

	if len(h.undo) > h.maxSize {
		excess := len(h.undo) - h.maxSize
		h.undo = h.undo[excess:]
	}
}

func caretBefore(op EditOperation) cursor.Selection {
	if op.Kind == OpDelete {
		return cursor.Caret(op.End())
	}
	return cursor.Caret(op.Position)
}

func caretAfter(op EditOperation) cursor.Selection {
	if op.Kind == OpInsert {
		return cursor.Caret(op.End())
	}
	return cursor.Caret(op.Position)
}
