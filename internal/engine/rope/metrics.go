package rope

import "unicode/utf8"

// Point is a line/column position. Both fields are 0-indexed and the
// column counts characters.
type Point struct {
	Line   int
	Column int
}

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// totals of their subtrees.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the number of runes.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII, so byte and char
	// offsets coincide.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags) & FlagASCII,
	}
	if s.Flags&FlagHasNewlines != 0 || other.Flags&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	return result
}

// IsZero returns true if this is the identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	for _, r := range s {
		sum.Chars++
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}
		if r == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}
	return sum
}

// byteOffset returns the byte offset of the n-th rune in s.
// Offsets past the end return len(s).
func byteOffset(s string, ascii bool, n int) int {
	if n <= 0 {
		return 0
	}
	if ascii {
		return min(n, len(s))
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// offsetAfterNewline returns the char offset just past the n-th newline
// (1-indexed) in s, or -1 if s has fewer than n newlines.
func offsetAfterNewline(s string, n int) int {
	if n <= 0 {
		return 0
	}
	seen, idx := 0, 0
	for _, r := range s {
		idx++
		if r == '\n' {
			seen++
			if seen == n {
				return idx
			}
		}
	}
	return -1
}

// newlinesBefore counts newlines among the first n runes of s.
func newlinesBefore(s string, n int) int {
	count, idx := 0, 0
	for _, r := range s {
		if idx >= n {
			break
		}
		if r == '\n' {
			count++
		}
		idx++
	}
	return count
}
