package filestore

import (
	"bytes"
)

// LineEnding is the newline style of a file on disk. Editors always see
// "\n"; the style is restored on save.
type LineEnding string

const (
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// binarySample is how much of a file IsBinary inspects.
const binarySample = 8192

// IsBinary reports whether content looks like binary data: it contains a
// NUL byte, or more than 10% of the sample is control characters other
// than tab and newlines.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	sample := content[:min(len(content), binarySample)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.1
}

// DetectLineEnding returns CRLF when most newlines are CRLF.
func DetectLineEnding(content []byte) LineEnding {
	crlf := bytes.Count(content, []byte("\r\n"))
	lf := bytes.Count(content, []byte("\n")) - crlf
	if crlf > lf {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// decode strips a UTF-8 BOM and converts line endings to "\n".
func decode(content []byte) (text []byte, ending LineEnding, bom bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		content = content[len(bomUTF8):]
		bom = true
	}
	ending = DetectLineEnding(content)
	text = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return text, ending, bom
}

// encode is the inverse of decode.
func encode(text string, ending LineEnding, bom bool) []byte {
	out := []byte(text)
	if ending == LineEndingCRLF {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if bom {
		out = append(append([]byte{}, bomUTF8...), out...)
	}
	return out
}
