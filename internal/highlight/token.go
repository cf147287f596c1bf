// Package highlight turns document snapshots into per-line style spans.
//
// Lexing is done by chroma. Results are cached per document version so a
// renderer can ask for the same frame repeatedly without re-lexing; the
// Editor's invalidator drops stale versions as soon as the text changes.
package highlight

import "github.com/alecthomas/chroma/v2"

// Kind is the coarse semantic class of a span.
type Kind uint8

// Span kinds.
const (
	KindPlain Kind = iota
	KindComment
	KindString
	KindNumber
	KindKeyword
	KindOperator
	KindPunctuation
	KindName
	KindFunction
	KindType
	KindError
)

var kindNames = [...]string{
	KindPlain:       "plain",
	KindComment:     "comment",
	KindString:      "string",
	KindNumber:      "number",
	KindKeyword:     "keyword",
	KindOperator:    "operator",
	KindPunctuation: "punctuation",
	KindName:        "name",
	KindFunction:    "function",
	KindType:        "type",
	KindError:       "error",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// kindOf maps a chroma token type onto a Kind. Sub-categories are checked
// before their parent categories.
func kindOf(t chroma.TokenType) Kind {
	switch {
	case t == chroma.Error:
		return KindError
	case t == chroma.KeywordType, t == chroma.NameClass, t == chroma.NameBuiltin:
		return KindType
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic:
		return KindFunction
	case t.InCategory(chroma.Comment):
		return KindComment
	case t.InSubCategory(chroma.LiteralString):
		return KindString
	case t.InSubCategory(chroma.LiteralNumber):
		return KindNumber
	case t.InCategory(chroma.Keyword):
		return KindKeyword
	case t.InCategory(chroma.Operator):
		return KindOperator
	case t.InCategory(chroma.Punctuation):
		return KindPunctuation
	case t.InCategory(chroma.Name):
		return KindName
	}
	return KindPlain
}

// Span styles the character columns [StartCol, EndCol) of one line.
type Span struct {
	StartCol int
	EndCol   int
	Kind     Kind
	Style    Style
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	return s.EndCol - s.StartCol
}

// Contains reports whether col falls inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.StartCol && col < s.EndCol
}

// SpanAt returns the span covering col on a line, if any.
func SpanAt(spans []Span, col int) (Span, bool) {
	for _, s := range spans {
		if s.Contains(col) {
			return s, true
		}
	}
	return Span{}, false
}
