package history

import (
	"fmt"
	"unicode/utf8"
)

// OpKind tags an edit operation.
type OpKind uint8

const (
	// OpInsert inserts Text at Position.
	OpInsert OpKind = iota

	// OpDelete removes Text, which starts at Position.
	OpDelete
)

// String returns the kind name.
func (k OpKind) String() string {
	if k == OpDelete {
		return "delete"
	}
	return "insert"
}

// EditOperation is a single reversible change to a document. Delete
// operations carry the removed text so they can be undone exactly.
type EditOperation struct {
	Kind     OpKind
	Position int
	Text     string
}

// Insert creates an insert operation.
func Insert(pos int, text string) EditOperation {
	return EditOperation{Kind: OpInsert, Position: pos, Text: text}
}

// Delete creates a delete operation for text removed at pos.
func Delete(pos int, text string) EditOperation {
	return EditOperation{Kind: OpDelete, Position: pos, Text: text}
}

// Inverse returns the operation that undoes op.
func (op EditOperation) Inverse() EditOperation {
	inv := op
	if op.Kind == OpInsert {
		inv.Kind = OpDelete
	} else {
		inv.Kind = OpInsert
	}
	return inv
}

// Len returns the length of Text in characters.
func (op EditOperation) Len() int {
	return utf8.RuneCountInString(op.Text)
}

// End returns the offset just past Text.
func (op EditOperation) End() int {
	return op.Position + op.Len()
}

// IsSingleChar returns true if Text is exactly one character.
func (op EditOperation) IsSingleChar() bool {
	return op.Len() == 1
}

// String returns a human-readable representation.
func (op EditOperation) String() string {
	return fmt.Sprintf("%s(%d, %q)", op.Kind, op.Position, op.Text)
}
