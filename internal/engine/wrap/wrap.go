// Package wrap splits long lines into display segments.
//
// Segments break after the last space or tab that fits, and a word wider
// than the limit is split where it overflows. Grapheme clusters are never
// split.
package wrap

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Segment is the character column range [Start, End) of one display row.
type Segment struct {
	Start int
	End   int
}

// Len returns the number of characters in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Contains reports whether col belongs to the segment. The end column
// counts only for the last segment of a line, where the caret can sit
// after the final character.
func (s Segment) Contains(col int, last bool) bool {
	return col >= s.Start && (col < s.End || last && col == s.End)
}

// Measure returns the width of cluster when it starts at column col of
// its row.
type Measure func(cluster string, col int) int

// Columns measures every cluster as one column.
func Columns(string, int) int {
	return 1
}

type cluster struct {
	text  string
	col   int
	space bool
}

func split(text string) ([]cluster, int) {
	var out []cluster
	col := 0
	state := -1
	for len(text) > 0 {
		var c string
		c, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		n := 0
		space := false
		for _, r := range c {
			if n == 0 {
				space = r == ' ' || r == '\t' || unicode.Is(unicode.Zs, r)
			}
			n++
		}
		out = append(out, cluster{text: c, col: col, space: space})
		col += n
	}
	return out, col
}

// Line splits text into segments no wider than width. An empty line, or a
// width below one, gives a single segment covering the line. A nil
// measure counts clusters.
func Line(text string, width int, measure Measure) []Segment {
	cs, total := split(text)
	if len(cs) == 0 || width < 1 {
		return []Segment{{0, total}}
	}
	if measure == nil {
		measure = Columns
	}
	colAt := func(i int) int {
		if i < len(cs) {
			return cs[i].col
		}
		return total
	}

	var segs []Segment
	for i := 0; i < len(cs); {
		start, used, brk := i, 0, -1
		j := i
		for ; j < len(cs); j++ {
			w := measure(cs[j].text, used)
			if used+w > width && j > start {
				break
			}
			used += w
			if cs[j].space {
				brk = j + 1
			}
		}
		if j < len(cs) && brk > start {
			j = brk
		}
		segs = append(segs, Segment{Start: colAt(start), End: colAt(j)})
		i = j
	}
	return segs
}

// Rows returns how many segments text wraps into.
func Rows(text string, width int, measure Measure) int {
	return len(Line(text, width, measure))
}
