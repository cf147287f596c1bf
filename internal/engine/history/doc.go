// Package history records document edits as reversible operations and
// provides undo and redo over them.
//
// # Operations and groups
//
// An EditOperation is an insert or a delete at a character offset. Deletes
// keep the removed text so the inverse is an exact insert. Operations are
// collected into an EditGroup, the unit of undo, together with the
// selection before and after the action.
//
//	h := New()
//	h.BeginEdit(sel)
//	h.Record(Insert(0, "hi"))
//	h.CommitEdit(after)
//
//	ops, sel, ok := h.Undo() // inverse ops, in application order
//
// # Coalescing
//
// Consecutive single-character typing, or consecutive single-character
// backspacing, merges into one group when each edit follows the previous
// one within the coalesce window (500ms by default). A newline ends a
// typing run. Undo and redo seal the top group so later typing never joins
// a group that was just restored.
//
// The undo stack is bounded; when it overflows the oldest group is
// dropped. Any new edit clears the redo stack.
package history
