package fold

import "slices"

// span is an inclusive run of hidden lines.
type span struct {
	lo, hi int
}

// Index answers visibility questions about a fixed set of regions. It is
// immutable and safe to share between goroutines.
type Index struct {
	regions []Region
	hidden  []span // merged, sorted
}

// NewIndex builds an Index over a copy of regions, which must be sorted
// by Start.
func NewIndex(regions []Region) Index {
	x := Index{regions: slices.Clone(regions)}
	for _, r := range x.regions {
		if !r.Folded || r.End <= r.Start {
			continue
		}
		s := span{r.Start + 1, r.End}
		if n := len(x.hidden); n > 0 && s.lo <= x.hidden[n-1].hi+1 {
			x.hidden[n-1].hi = max(x.hidden[n-1].hi, s.hi)
			continue
		}
		x.hidden = append(x.hidden, s)
	}
	return x
}

// Regions returns a copy of the regions.
func (x Index) Regions() []Region {
	return slices.Clone(x.regions)
}

// Len returns the number of regions.
func (x Index) Len() int {
	return len(x.regions)
}

// AnyFolded reports whether some line is hidden.
func (x Index) AnyFolded() bool {
	return len(x.hidden) > 0
}

// RegionAt returns the region starting on line.
func (x Index) RegionAt(line int) (Region, bool) {
	i, ok := x.find(line)
	if !ok {
		return Region{}, false
	}
	return x.regions[i], true
}

func (x Index) find(line int) (int, bool) {
	return slices.BinarySearchFunc(x.regions, line, func(r Region, line int) int {
		return r.Start - line
	})
}

// Enclosing returns the innermost region containing line, including a
// region that starts on it.
func (x Index) Enclosing(line int) (Region, bool) {
	for i := len(x.regions) - 1; i >= 0; i-- {
		if r := x.regions[i]; r.Contains(line) {
			return r, true
		}
	}
	return Region{}, false
}

// IsFoldStart reports whether a region starts on line.
func (x Index) IsFoldStart(line int) bool {
	_, ok := x.find(line)
	return ok
}

// IsFolded reports whether the region starting on line is folded.
func (x Index) IsFolded(line int) bool {
	r, ok := x.RegionAt(line)
	return ok && r.Folded
}

// span returns the hidden span containing line.
func (x Index) span(line int) (span, bool) {
	i, ok := slices.BinarySearchFunc(x.hidden, line, func(s span, line int) int {
		switch {
		case s.hi < line:
			return -1
		case s.lo > line:
			return 1
		}
		return 0
	})
	if !ok {
		return span{}, false
	}
	return x.hidden[i], true
}

// IsHidden reports whether line is inside a folded region.
func (x Index) IsHidden(line int) bool {
	_, ok := x.span(line)
	return ok
}

// VisibleLine returns line, or the fold header above it when line is
// hidden.
func (x Index) VisibleLine(line int) int {
	if s, ok := x.span(line); ok {
		return s.lo - 1
	}
	return line
}

// NextVisible returns the first visible line at or after line.
func (x Index) NextVisible(line int) int {
	if s, ok := x.span(line); ok {
		return s.hi + 1
	}
	return line
}

// BufferToVisual maps a document line to its row among visible lines. A
// hidden line maps to its fold header's row.
func (x Index) BufferToVisual(line int) int {
	line = x.VisibleLine(line)
	visual := line
	for _, s := range x.hidden {
		if s.lo > line {
			break
		}
		visual -= s.hi - s.lo + 1
	}
	return visual
}

// VisualToBuffer maps a row among visible lines back to a document line.
func (x Index) VisualToBuffer(visual int) int {
	line := max(visual, 0)
	for _, s := range x.hidden {
		if s.lo > line {
			break
		}
		line += s.hi - s.lo + 1
	}
	return line
}

// VisibleLineCount returns how many of total lines are visible, at least
// one.
func (x Index) VisibleLineCount(total int) int {
	hidden := 0
	for _, s := range x.hidden {
		if s.lo >= total {
			break
		}
		hidden += min(s.hi, total-1) - s.lo + 1
	}
	return max(total-hidden, 1)
}
