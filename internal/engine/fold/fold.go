package fold

import (
	"slices"
	"strings"
)

// Lines is the read access detection needs.
type Lines interface {
	LenLines() int
	Line(i int) (string, bool)
}

// Region is a foldable run of lines. Start stays visible when the region
// is folded; Start+1 through End are hidden.
type Region struct {
	Start  int
	End    int
	Folded bool
}

// Lines returns the number of lines the region spans.
func (r Region) Lines() int {
	return r.End - r.Start + 1
}

// Hidden returns how many lines the region hides.
func (r Region) Hidden() int {
	if !r.Folded {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether line lies within the region.
func (r Region) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Strategy selects how regions are found.
type Strategy int

const (
	// Brackets folds from an opening bracket to its closing partner.
	Brackets Strategy = iota

	// Indent folds the more-indented lines after a line ending in
	// '{' or ':'.
	Indent
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Brackets:
		return "brackets"
	case Indent:
		return "indent"
	default:
		return "unknown"
	}
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// DetectBrackets returns regions spanning each multi-line bracket pair.
// Closers that do not match the innermost open bracket are ignored.
func DetectBrackets(doc Lines) []Region {
	type open struct {
		r    rune
		line int
	}
	var stack []open
	var regions []Region

	for line := range doc.LenLines() {
		text, _ := doc.Line(line)
		for _, r := range text {
			switch r {
			case '(', '[', '{':
				stack = append(stack, open{r, line})
			case ')', ']', '}':
				n := len(stack)
				if n == 0 || stack[n-1].r != closers[r] {
					continue
				}
				start := stack[n-1].line
				stack = stack[:n-1]
				if line > start {
					regions = append(regions, Region{Start: start, End: line})
				}
			}
		}
	}
	return normalize(regions)
}

// DetectIndent returns regions for blocks introduced by a line ending in
// '{' or ':' and continuing while lines are more indented. Blank lines
// never close a block.
func DetectIndent(doc Lines) []Region {
	type open struct {
		line   int
		indent int
	}
	var stack []open
	var regions []Region

	n := doc.LenLines()
	for line := range n {
		text, _ := doc.Line(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		indent := leadingSpace(text)
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if end := lastNonBlank(doc, top.line, line-1); end > top.line {
				regions = append(regions, Region{Start: top.line, End: end})
			}
		}
		if strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, ":") {
			stack = append(stack, open{line, indent})
		}
	}
	for _, top := range stack {
		if end := lastNonBlank(doc, top.line, n-1); end > top.line {
			regions = append(regions, Region{Start: top.line, End: end})
		}
	}
	return normalize(regions)
}

func leadingSpace(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

// lastNonBlank returns the last line in (from, to] with content, or from.
func lastNonBlank(doc Lines, from, to int) int {
	for line := to; line > from; line-- {
		if text, _ := doc.Line(line); strings.TrimSpace(text) != "" {
			return line
		}
	}
	return from
}

// normalize sorts regions by start and keeps the outermost region for
// each start line.
func normalize(regions []Region) []Region {
	slices.SortFunc(regions, func(a, b Region) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})
	return slices.CompactFunc(regions, func(a, b Region) bool {
		return a.Start == b.Start
	})
}
