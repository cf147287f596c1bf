// Package rope provides an immutable, character-indexed rope for text storage.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache aggregated metrics (bytes, characters, newlines).
// All public offsets count Unicode scalar values (runes), never bytes, so
// callers can address text the same way a user sees it.
//
// Key features:
//   - O(log n) insertion, deletion and random access by character
//   - Line lookups through cached newline counts
//   - Immutable operations; every edit returns a new Rope sharing structure
//
// Basic usage:
//
//	r := rope.FromString("héllo world")
//	r = r.Insert(5, ",")           // "héllo, world"
//	r = r.Delete(0, 7)             // "world"
//	line := r.LineText(0)          // "world"
package rope
