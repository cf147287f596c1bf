package buffer

import "unicode"

// CharClass partitions characters for word-wise movement.
type CharClass uint8

const (
	// ClassWhitespace covers unicode.IsSpace characters, newlines included.
	ClassWhitespace CharClass = iota

	// ClassWord covers letters, digits and underscore.
	ClassWord

	// ClassOther covers punctuation and symbols.
	ClassOther
)

// ClassOf returns the class of r.
func ClassOf(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassWord
	default:
		return ClassOther
	}
}

func (d *Document) classAt(i int) CharClass {
	r, _ := d.rope.CharAt(i)
	return ClassOf(r)
}

// FindWordBoundaryLeft returns the start of the word at or before pos.
// Whitespace before pos is skipped first, then the run of same-class
// characters. Returns 0 at the document start.
func (d *Document) FindWordBoundaryLeft(pos int) int {
	i := d.clamp(pos)
	for i > 0 && d.classAt(i-1) == ClassWhitespace {
		i--
	}
	if i == 0 {
		return 0
	}
	class := d.classAt(i - 1)
	for i > 0 && d.classAt(i-1) == class {
		i--
	}
	return i
}

// FindWordBoundaryRight returns the start of the next word after pos.
// The run of same-class characters at pos is skipped, then any whitespace.
// Returns LenChars() at the document end.
func (d *Document) FindWordBoundaryRight(pos int) int {
	n := d.rope.Len()
	i := d.clamp(pos)
	if i >= n {
		return n
	}
	if class := d.classAt(i); class != ClassWhitespace {
		for i < n && d.classAt(i) == class {
			i++
		}
	}
	for i < n && d.classAt(i) == ClassWhitespace {
		i++
	}
	return i
}
