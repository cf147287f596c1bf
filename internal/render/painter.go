// Package render paints editor snapshots onto a tcell screen.
//
// The painter only reads: it takes an engine.Snapshot plus highlight spans
// and never touches the editor, so frames can be painted from a goroutine
// other than the one editing.
package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/engine/wrap"
	"github.com/dshills/scribe/internal/highlight"
	"github.com/dshills/scribe/internal/log"
)

// DefaultScrollMargin is how many lines are kept visible around the
// cursor when scrolling.
const DefaultScrollMargin = 2

// Option configures a Painter.
type Option func(*Painter)

// WithTheme derives the base styles from a chroma theme.
func WithTheme(theme *highlight.Theme) Option {
	return func(p *Painter) {
		p.styles = StylesFromTheme(theme)
	}
}

// WithTabWidth sets the tab stop interval.
func WithTabWidth(n int) Option {
	return func(p *Painter) {
		if n > 0 {
			p.tabWidth = n
		}
	}
}

// WithLineNumbers toggles the line number gutter.
func WithLineNumbers(enabled bool) Option {
	return func(p *Painter) {
		p.lineNumbers = enabled
	}
}

// WithScrollMargin sets how many lines stay visible above and below the
// cursor.
func WithScrollMargin(n int) Option {
	return func(p *Painter) {
		p.margin = max(n, 0)
	}
}

// Frame is everything painted in one pass.
type Frame struct {
	Snapshot engine.Snapshot

	// Spans is indexed by line; missing lines are painted unstyled.
	Spans [][]highlight.Span

	// Name labels the status line.
	Name string

	// Message replaces the middle of the status line when set.
	Message string
}

// Painter draws frames and remembers the scroll position between them.
type Painter struct {
	screen      tcell.Screen
	styles      Styles
	tabWidth    int
	lineNumbers bool
	margin      int

	top  int // first visible line
	left int // first visible screen column of the text area
	rows []row
}

// row is one painted screen row: a segment of a document line.
type row struct {
	line int
	seg  wrap.Segment
	last bool // last segment of its line
}

// New creates a painter for screen.
func New(screen tcell.Screen, opts ...Option) *Painter {
	p := &Painter{
		screen:      screen,
		styles:      StylesFromTheme(nil),
		tabWidth:    engine.DefaultTabWidth,
		lineNumbers: true,
		margin:      DefaultScrollMargin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Top returns the first visible line.
func (p *Painter) Top() int {
	return p.top
}

// Left returns the horizontal scroll offset in screen columns.
func (p *Painter) Left() int {
	return p.left
}

// TextHeight returns how many document lines fit on screen.
func (p *Painter) TextHeight() int {
	_, h := p.screen.Size()
	return max(h-1, 0)
}

// ScreenToPosition maps a screen cell to a document position, for mouse
// clicks. ok is false outside the text area.
func (p *Painter) ScreenToPosition(snap engine.Snapshot, x, y int) (engine.Position, bool) {
	gw := p.gutterWidth(snap)
	if y < 0 || y >= p.TextHeight() || x < gw {
		return engine.Position{}, false
	}
	r, ok := p.rowAt(snap, y)
	if !ok {
		// Below the last line.
		line := snap.LenLines() - 1
		return engine.Position{Line: line, Col: snap.Text.LineLenChars(line)}, true
	}
	text, _ := snap.Line(r.line)
	seg := segmentText(text, r.seg)
	col := r.seg.Start + CharColumn(seg, x-gw+p.left, p.tabWidth)
	if !r.last {
		// The column after a wrapped row belongs to the next row.
		col = min(col, max(r.seg.End-1, r.seg.Start))
	}
	return engine.Position{Line: r.line, Col: col}, true
}

// GutterLine returns the line whose number is painted at x, y. ok is false
// outside the gutter and on wrapped continuation rows.
func (p *Painter) GutterLine(snap engine.Snapshot, x, y int) (int, bool) {
	if x < 0 || x >= p.gutterWidth(snap) || y < 0 || y >= p.TextHeight() {
		return 0, false
	}
	r, ok := p.rowAt(snap, y)
	if !ok || r.seg.Start != 0 {
		return 0, false
	}
	return r.line, true
}

// rowAt returns the layout of screen row y from the last paint, or walks
// from the top line if nothing was painted yet.
func (p *Painter) rowAt(snap engine.Snapshot, y int) (row, bool) {
	if y < len(p.rows) {
		return p.rows[y], true
	}
	if len(p.rows) > 0 {
		return row{}, false
	}
	_, textW := p.textArea(snap)
	for line := snap.Folds.NextVisible(p.top); line < snap.LenLines(); line = snap.Folds.NextVisible(line + 1) {
		segs := p.segments(snap, line, textW)
		if y < len(segs) {
			return row{line: line, seg: segs[y], last: y == len(segs)-1}, true
		}
		y -= len(segs)
	}
	return row{}, false
}

func (p *Painter) gutterWidth(snap engine.Snapshot) int {
	if !p.lineNumbers {
		return 0
	}
	return len(strconv.Itoa(snap.LenLines())) + 1
}

func (p *Painter) textArea(snap engine.Snapshot) (height, width int) {
	w, h := p.screen.Size()
	return max(h-1, 0), max(w-p.gutterWidth(snap), 0)
}

// segments splits line into screen rows. Without wrapping a line is one
// row; with it, rows are at most the wrap width or the text width,
// whichever is narrower.
func (p *Painter) segments(snap engine.Snapshot, line, width int) []wrap.Segment {
	if snap.WrapWidth <= 0 {
		return []wrap.Segment{{Start: 0, End: snap.Text.LineLenChars(line)}}
	}
	limit := snap.WrapWidth
	if width > 0 {
		limit = min(limit, width)
	}
	text, _ := snap.Line(line)
	return wrap.Line(text, limit, p.measure)
}

func (p *Painter) measure(cluster string, col int) int {
	if cluster == "\t" {
		return p.tabWidth - col%p.tabWidth
	}
	return max(uniseg.StringWidth(cluster), 1)
}

// segmentText returns the characters of text covered by seg.
func segmentText(text string, seg wrap.Segment) string {
	start, end := len(text), len(text)
	col := 0
	for i := range text {
		if col == seg.Start {
			start = i
		}
		if col == seg.End {
			end = i
			break
		}
		col++
	}
	return text[start:end]
}

// cursorRow returns which segment of its line holds col.
func cursorRow(segs []wrap.Segment, col int) (int, wrap.Segment) {
	for i, seg := range segs {
		if seg.Contains(col, i == len(segs)-1) {
			return i, seg
		}
	}
	return len(segs) - 1, segs[len(segs)-1]
}

// scroll moves the viewport just enough to show the cursor, which sits on
// segment ci of visible line line.
func (p *Painter) scroll(snap engine.Snapshot, line, ci, height, width int) {
	idx := snap.Folds
	p.top = max(min(idx.VisibleLine(p.top), snap.LenLines()-1), 0)
	if height <= 0 {
		return
	}
	margin := min(p.margin, (height-1)/2)

	below := line > p.top && idx.BufferToVisual(line)-idx.BufferToVisual(p.top) >= height
	if !below && line >= p.top {
		y := ci
		for l := p.top; l < line; l = idx.NextVisible(l + 1) {
			y += len(p.segments(snap, l, width))
		}
		if y < height-margin && (y >= margin || p.top == 0) {
			return
		}
		below = y >= height-margin
	}

	want := margin
	if below {
		want = height - margin - 1
	}
	p.top = line
	y := ci
	for p.top > 0 {
		prev := idx.VisibleLine(p.top - 1)
		n := len(p.segments(snap, prev, width))
		if y+n > want {
			break
		}
		p.top = prev
		y += n
	}
}

func (p *Painter) scrollColumns(vcol, width int, wrapped bool) {
	if wrapped {
		p.left = 0
		return
	}
	if width > 0 {
		if vcol < p.left {
			p.left = vcol
		}
		if vcol >= p.left+width {
			p.left = vcol - width + 1
		}
	}
}

// Paint draws f and shows the screen.
func (p *Painter) Paint(f Frame) {
	snap := f.Snapshot
	w, h := p.screen.Size()
	textH, textW := p.textArea(snap)
	gw := p.gutterWidth(snap)

	cur := snap.PrimaryCursor()
	curLine := snap.Folds.VisibleLine(cur.Line)
	curCol := cur.Col
	if curLine != cur.Line {
		curCol = 0
	}
	curText, _ := snap.Line(curLine)
	ci, seg := cursorRow(p.segments(snap, curLine, textW), curCol)
	curV := VisualColumn(segmentText(curText, seg), curCol-seg.Start, p.tabWidth)
	p.scroll(snap, curLine, ci, textH, textW)
	p.scrollColumns(curV, textW, snap.WrapWidth > 0)

	p.screen.Fill(' ', p.styles.Text)
	ov := newOverlays(snap)
	p.rows = p.rows[:0]
	cx, cy := -1, -1
	line := p.top
	for y := 0; y < textH; {
		if line >= snap.LenLines() {
			p.putString(0, y, "~", p.styles.EmptyLine, w)
			y++
			continue
		}
		var spans []highlight.Span
		if line < len(f.Spans) {
			spans = f.Spans[line]
		}
		segs := p.segments(snap, line, textW)
		for i, seg := range segs {
			if y >= textH {
				break
			}
			last := i == len(segs)-1
			if gw > 0 {
				p.paintGutter(snap, line, i == 0, y, gw)
			}
			end := p.paintSegment(snap, ov, spans, line, seg, last, y, gw, textW)
			if last && snap.Folds.IsFolded(line) {
				p.putCell(gw, end+1, y, '…', nil, p.styles.EmptyLine, textW)
			}
			if line == curLine && i == ci {
				cx, cy = gw+curV-p.left, y
			}
			p.rows = append(p.rows, row{line: line, seg: seg, last: last})
			y++
		}
		line = snap.Folds.NextVisible(line + 1)
	}
	if textH < h {
		p.paintStatus(f, h-1, w)
	}

	if cy >= 0 && cx >= gw && cx < w {
		p.screen.ShowCursor(cx, cy)
	} else {
		p.screen.HideCursor()
	}
	p.screen.Show()
	log.Debug(log.CatRender, "painted", "version", snap.Version, "top", p.top, "left", p.left, "rows", len(p.rows))
}

// paintGutter draws the line number on a line's first row and a fold
// marker in the separator column.
func (p *Painter) paintGutter(snap engine.Snapshot, line int, first bool, y, gw int) {
	if !first {
		return
	}
	p.putString(0, y, fmt.Sprintf("%*d ", gw-1, line+1), p.styles.LineNumber, gw)
	switch {
	case snap.Folds.IsFolded(line):
		p.screen.SetContent(gw-1, y, '▸', nil, p.styles.LineNumber)
	case snap.Folds.IsFoldStart(line):
		p.screen.SetContent(gw-1, y, '▾', nil, p.styles.LineNumber)
	}
}

// paintSegment draws the columns of line covered by seg and returns the
// text column after its last cell.
func (p *Painter) paintSegment(snap engine.Snapshot, ov overlays, spans []highlight.Span, line int, seg wrap.Segment, last bool, y, gx, width int) int {
	text, _ := snap.Line(line)
	start := snap.Text.LineStart(line)
	blockStart, blockEnd, inBlock := ov.blockCols(snap, line)

	col, vcol := 0, 0
	state := -1
	rest := text
	for len(rest) > 0 && col < seg.End {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		n := runeCount(cluster)
		if col < seg.Start {
			col += n
			continue
		}
		cw := clusterWidth(cluster, boundaries, vcol, p.tabWidth)

		st := p.styles.Text
		if s, ok := highlight.SpanAt(spans, col); ok {
			st = applyStyle(st, s.Style)
		}
		st = ov.apply(st, line, col, start+col, inBlock && col >= blockStart && col < blockEnd)

		if cluster == "\t" {
			for i := range cw {
				p.putCell(gx, vcol+i, y, ' ', nil, st, width)
			}
		} else {
			runes := []rune(cluster)
			p.putCell(gx, vcol, y, runes[0], runes[1:], st, width)
		}
		vcol += cw
		col += n
	}

	// A secondary cursor at the end of the line still needs a cell.
	if last && ov.secondary[engine.Position{Line: line, Col: col}] {
		p.putCell(gx, vcol, y, ' ', nil, p.styles.Text.Reverse(true), width)
	}
	return vcol
}

// putCell draws at text column vcol, honoring the horizontal scroll.
func (p *Painter) putCell(gx, vcol, row int, r rune, comb []rune, st tcell.Style, width int) {
	x := vcol - p.left
	if x < 0 || x >= width {
		return
	}
	p.screen.SetContent(gx+x, row, r, comb, st)
}

// putString draws s from x, clipped to limit columns.
func (p *Painter) putString(x, y int, s string, st tcell.Style, limit int) int {
	state := -1
	used := 0
	for len(s) > 0 {
		var cluster string
		var boundaries int
		cluster, s, boundaries, state = uniseg.StepString(s, state)
		cw := max(boundaries>>uniseg.ShiftWidth, 1)
		if used+cw > limit {
			break
		}
		runes := []rune(cluster)
		p.screen.SetContent(x+used, y, runes[0], runes[1:], st)
		used += cw
	}
	return used
}

func (p *Painter) paintStatus(f Frame, y, width int) {
	snap := f.Snapshot
	for x := range width {
		p.screen.SetContent(x, y, ' ', nil, p.styles.Status)
	}

	name := f.Name
	if name == "" {
		name = "untitled"
	}
	if snap.Modified {
		name += " [+]"
	}
	// The mode marker leads so narrow screens clip the name first.
	left := " " + name
	if snap.HasBlock {
		left = " BLOCK  " + name
	}
	if f.Message != "" {
		left += "  " + f.Message
	}

	cur := snap.PrimaryCursor()
	right := fmt.Sprintf("Ln %d, Col %d ", cur.Line+1, cur.Col+1)
	if n := len(snap.Cursors); n > 1 {
		right = fmt.Sprintf("%d cursors  ", n) + right
	}
	if len(snap.Matches) > 0 {
		idx := "-"
		if snap.CurrentMatch >= 0 {
			idx = strconv.Itoa(snap.CurrentMatch + 1)
		}
		right = fmt.Sprintf("%s of %d  ", idx, len(snap.Matches)) + right
	}

	rw := StringWidth(right)
	used := p.putString(0, y, left, p.styles.Status, max(width-rw-1, 0))
	if used+rw < width {
		p.putString(width-rw, y, right, p.styles.Status, rw)
	}
}
