// Package cursor implements the selection model: linear selections,
// rectangular block selections, single cursors with directional movement,
// and ordered multi-cursor sets.
//
// All offsets are character indices into a document. Movement methods take
// the document through the small Text interface and an extend flag: with
// extend the anchor stays put and only the cursor end moves; without it
// the selection collapses to the new point.
//
// # Preferred column
//
// Vertical movement (MoveUp, MoveDown, MovePageUp, MovePageDown) remembers
// the column of the first vertical move and aims for it on every later
// line, so moving through a short line and back restores the original
// column. Any other motion forgets it.
//
// # Block selection
//
// A cursor is either in normal or block mode. StartBlockSelection pins both
// corners at the caret; UpdateBlockSelection moves only the cursor corner.
// ColRange clips each line's column range to that line, so short lines
// contribute empty ranges.
//
// # Multiple cursors
//
// MultiCursor keeps cursors sorted and merges any whose ranges overlap or
// touch. The primary cursor is found again by position after sorting, and
// a merged cursor inherits primary status from either side.
package cursor
