package rope

import "strings"

// Rope is an immutable rope for efficient text storage.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leafChunks))
	}
	return Rope{root: buildNodeFromChildren(nodes)}
}

// Len returns the number of characters.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// ByteLen returns the UTF-8 length of the text.
func (r Rope) ByteLen() int {
	return r.Summary().Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.ByteLen())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the char range [start, end), clamped.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the character at offset.
// Returns 0 and false if offset is out of range.
func (r Rope) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.charAt(offset), true
}

// Insert inserts text at the given char offset (clamped).
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.Len() == 0 {
		return FromString(text)
	}

	offset = r.clamp(offset)
	if offset == 0 {
		return FromString(text).Concat(r)
	}
	if offset == r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the char range [start, end), clamped.
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return New()
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace replaces the char range [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(r.clamp(start), text)
}

// Split splits the rope at a char offset.
// Left contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// LineStart returns the char offset of the start of line.
// Lines past the end return Len().
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.offsetAfterNewline(line)
}

// LineEnd returns the char offset of the end of line, excluding the
// newline. Lines past the end return Len().
func (r Rope) LineEnd(line int) int {
	if line < 0 {
		line = 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// LineText returns the text of line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// OffsetToPoint converts a char offset to a line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset = r.clamp(offset)
	if offset == 0 {
		return Point{}
	}
	line := r.root.newlinesBefore(offset)
	return Point{Line: line, Column: offset - r.LineStart(line)}
}

// PointToOffset converts a line/column position to a char offset.
// Lines past the end map to Len(); columns clamp to the line length.
func (r Rope) PointToOffset(p Point) int {
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start := r.LineStart(p.Line)
	end := r.LineEnd(p.Line)
	if p.Column <= 0 {
		return start
	}
	return min(start+p.Column, end)
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
func (r Rope) ChunkCount() int {
	count := 0
	it := r.Chunks()
	for it.Next() {
		count++
	}
	return count
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.ByteLen() != other.ByteLen() {
		return false
	}
	return r.String() == other.String()
}

func (r Rope) clamp(offset int) int {
	return max(0, min(offset, r.Len()))
}
