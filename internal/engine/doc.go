// Package engine provides the text editor engine for scribe.
//
// Editor is the coordinator: it owns a document, a set of cursors and an
// undo history, and turns every user-visible command into one atomic
// transaction over them.
//
// # Architecture
//
// The editor is built on several sub-packages:
//
//   - rope: immutable char-indexed B+ tree holding the text
//   - buffer: Document with clamped char/line addressing and word scanning
//   - cursor: selections, block selections, cursors and multi-cursor sets
//   - history: edit operations, groups and coalescing undo/redo
//   - search: literal, case-folding search with match navigation
//   - tracking: diffs against the saved state and named checkpoints
//
// # Transactions
//
// Each editing command opens a history group with the current selection,
// deletes any selected text first, applies its mutation, moves the
// cursors, and commits the group with the resulting selection:
//
//	e := engine.New(engine.WithContent("hello"))
//	e.MoveToBufferEnd(false)
//	e.InsertText(", world")
//	e.Undo() // "hello"
//	e.Redo() // "hello, world"
//
// Typing and backspacing one character at a time coalesce into a single
// undo step while they stay adjacent and within the coalesce window.
//
// # Multiple cursors
//
// Text insertion and deletion apply at every cursor, last to first, so
// each edit leaves the offsets of the cursors before it valid. Line,
// block, comment and search commands act on the primary cursor only and
// collapse the others first.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Other goroutines read state
// through Snapshot, which is immutable. After every committed change the
// editor calls the registered invalidators so caches can drop stale data.
package engine
