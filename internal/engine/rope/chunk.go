package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded string stored in leaf nodes. Chunks are immutable.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the number of characters in the chunk.
func (c Chunk) Len() int {
	return c.summary.Chars
}

// ByteLen returns the UTF-8 length of the chunk.
func (c Chunk) ByteLen() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

func (c Chunk) ascii() bool {
	return c.summary.Flags&FlagASCII != 0
}

// byteOffset converts a char offset within the chunk to a byte offset.
func (c Chunk) byteOffset(char int) int {
	return byteOffset(c.data, c.ascii(), char)
}

// runeAt returns the rune at the given char offset within the chunk.
func (c Chunk) runeAt(char int) rune {
	if c.ascii() {
		return rune(c.data[char])
	}
	r, _ := utf8.DecodeRuneInString(c.data[c.byteOffset(char):])
	return r
}

// Slice returns the text between two char offsets within the chunk.
func (c Chunk) Slice(start, end int) string {
	return c.data[c.byteOffset(start):c.byteOffset(end)]
}

// Split splits a chunk at a char offset.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= c.Len() {
		return c, Chunk{}
	}
	at := c.byteOffset(offset)
	return NewChunk(c.data[:at]), NewChunk(c.data[at:])
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		splitPoint := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:splitPoint]))
		remaining = remaining[splitPoint:]
	}
	return chunks
}

// findUTF8Boundary finds a rune boundary near target, preferring the
// position just after a newline.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := max(target-MinChunkSize/4, 0)
	searchEnd := min(target+MinChunkSize/4, len(s))

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !utf8.RuneStart(s[pos]) {
			pos++
		}
	}
	return pos
}
