// Package fold finds foldable line regions and tracks which are folded.
//
// Regions come from one of two strategies: bracket pairs that span lines,
// or blocks of deeper indentation under a line ending in '{' or ':'. A
// folded region keeps its first line visible and hides the rest.
//
//	m := NewManager()
//	m.Detect(doc, Brackets)
//	m.Toggle(0)
//	m.IsHidden(1) // true
//
// Index is the read-only half: it maps between document lines and visible
// rows and is what renderers receive.
package fold
