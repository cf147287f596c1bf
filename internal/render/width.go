package render

import "github.com/rivo/uniseg"

// VisualColumn returns the screen column of character col in line. Tabs
// advance to the next multiple of tabWidth and wide graphemes take two
// columns.
func VisualColumn(line string, col, tabWidth int) int {
	vcol, chars := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 && chars < col {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		vcol += clusterWidth(cluster, boundaries, vcol, tabWidth)
		chars += runeCount(cluster)
	}
	return vcol
}

// CharColumn is the inverse of VisualColumn: it returns the character
// column whose cell covers screen column vcol, or the line length past the
// end.
func CharColumn(line string, vcol, tabWidth int) int {
	x, chars := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := clusterWidth(cluster, boundaries, x, tabWidth)
		if vcol < x+w {
			return chars
		}
		x += w
		chars += runeCount(cluster)
	}
	return chars
}

// StringWidth returns the screen width of s without tab expansion.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

func clusterWidth(cluster string, boundaries, vcol, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 1
		}
		return tabWidth - vcol%tabWidth
	}
	return max(boundaries>>uniseg.ShiftWidth, 1)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
