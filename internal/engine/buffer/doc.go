// Package buffer provides Document, the mutable text document at the core
// of the editing engine, built on the rope package.
//
// A Document addresses text by character index (runes, not bytes). Its
// line index is implicit in the newline positions, so LenLines() always
// equals the number of '\n' characters plus one, and every index in
// [0, LenChars()] is a valid cursor or insertion point.
//
// Out-of-range input never fails. Indices clamp to the nearest valid value
// and empty or inverted ranges are no-ops:
//
//	doc := buffer.NewFromString("hello\nworld")
//	doc.Insert(5, ",")            // "hello,\nworld"
//	doc.Remove(3, 1)              // no-op
//	pos := doc.CharToLineCol(8)   // (1:1)
//	i := doc.LineColToChar(1, 99) // 12, clamped to the line end
//
// Word-wise movement uses three character classes: whitespace, word
// (letters, digits and underscore) and other. Letters include non-Latin
// scripts, so CJK text forms words.
//
// Each mutation bumps Version, which caches use to detect staleness.
// Snapshot returns an immutable view for readers on other goroutines.
package buffer
