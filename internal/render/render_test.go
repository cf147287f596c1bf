package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/highlight"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// screenRow returns the runes painted on screen row y, trailing blanks trimmed.
func screenRow(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read API
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	_, _, st, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the simulation read API
	return st
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"ascii", "hello", 3, 3},
		{"tab", "\tx", 1, 4},
		{"tab mid stop", "ab\tx", 3, 4},
		{"wide", "日本語", 2, 4},
		{"past end", "ab", 9, 2},
		{"combining", "e\u0301x", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisualColumn(tt.line, tt.col, 4))
		})
	}
}

func TestCharColumn(t *testing.T) {
	tests := []struct {
		line string
		vcol int
		want int
	}{
		{"hello", 2, 2},
		{"\tx", 2, 0},
		{"\tx", 4, 1},
		{"日本語", 3, 1},
		{"ab", 10, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CharColumn(tt.line, tt.vcol, 4), "%q@%d", tt.line, tt.vcol)
	}
}

func TestPaintBasicFrame(t *testing.T) {
	s := newScreen(t, 24, 5)
	e := engine.New(engine.WithContent("hello\n\tx"))
	p := New(s)

	p.Paint(Frame{Snapshot: e.Snapshot(), Name: "a.txt"})

	assert.Equal(t, "1 hello", screenRow(s, 0))
	assert.Equal(t, "2     x", screenRow(s, 1))
	assert.Equal(t, "~", screenRow(s, 2))
	status := screenRow(s, 4)
	assert.Contains(t, status, "a.txt")
	assert.Contains(t, status, "Ln 1, Col 1")

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestPaintModifiedAndCursors(t *testing.T) {
	s := newScreen(t, 40, 4)
	e := engine.New(engine.WithContent("ab\ncd"))
	e.AddCursorBelow()
	e.InsertText("x")
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot(), Name: "f"})

	assert.Equal(t, "xab", screenRow(s, 0))
	assert.Equal(t, "xcd", screenRow(s, 1))
	status := screenRow(s, 3)
	assert.Contains(t, status, "f [+]")
	assert.Contains(t, status, "2 cursors")

	snap := e.Snapshot()
	secondary := snap.Cursors[1-snap.Primary]
	_, _, attrs := styleAt(s, secondary.Col, secondary.Line).Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "secondary cursor is drawn reversed")
}

func TestPaintSelection(t *testing.T) {
	s := newScreen(t, 20, 3)
	e := engine.New(engine.WithContent("hello world"))
	e.SetSelection(engine.Selection{Anchor: 0, Cursor: 5})
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot()})

	_, _, in := styleAt(s, 0, 0).Decompose()
	_, _, out := styleAt(s, 7, 0).Decompose()
	assert.NotZero(t, in&tcell.AttrReverse)
	assert.Zero(t, out&tcell.AttrReverse)
}

func TestPaintSearchMatches(t *testing.T) {
	s := newScreen(t, 30, 3)
	e := engine.New(engine.WithContent("foo bar foo"))
	e.Find("foo")
	e.FindNext()
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot()})

	_, _, first := styleAt(s, 0, 0).Decompose()
	assert.NotZero(t, first&tcell.AttrUnderline)
	assert.Contains(t, screenRow(s, 2), "2 of 2")
}

func TestPaintBlockSelection(t *testing.T) {
	s := newScreen(t, 20, 4)
	e := engine.New(engine.WithContent("abcd\nefgh"))
	e.MoveRight(false)
	e.StartBlockSelection()
	e.ExtendBlockSelection(1, 3)
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot()})

	for _, c := range []struct {
		x, y int
		want bool
	}{
		{0, 0, false}, {1, 0, true}, {2, 1, true}, {3, 1, false},
	} {
		_, _, attrs := styleAt(s, c.x, c.y).Decompose()
		assert.Equal(t, c.want, attrs&tcell.AttrReverse != 0, "cell %d,%d", c.x, c.y)
	}
	assert.Contains(t, screenRow(s, 3), "BLOCK")
}

func TestStatusKeepsBlockMarkerWhenNarrow(t *testing.T) {
	s := newScreen(t, 20, 3)
	e := engine.New(engine.WithContent("abcd\nefgh"))
	e.StartBlockSelection()
	e.ExtendBlockSelection(1, 3)
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot(), Name: "a-very-long-file-name.txt"})

	status := screenRow(s, 2)
	assert.True(t, strings.HasPrefix(status, " BLOCK"), "status %q", status)
	assert.Contains(t, status, "Ln 2, Col 4")
	assert.NotContains(t, status, "a-very-long-file-name.txt")
}

func TestPaintSyntaxColors(t *testing.T) {
	s := newScreen(t, 30, 3)
	e := engine.New(engine.WithContent("package main"))
	h := highlight.New(highlight.Detect("main.go"))
	spans, err := h.Highlight(e.Document().Snapshot())
	require.NoError(t, err)
	p := New(s, WithLineNumbers(false), WithTheme(h.Theme()))

	p.Paint(Frame{Snapshot: e.Snapshot(), Spans: spans})

	kw, _, _ := styleAt(s, 0, 0).Decompose()
	plain, _, _ := styleAt(s, 8, 0).Decompose()
	assert.NotEqual(t, kw, plain)
}

func TestScrollFollowsCursor(t *testing.T) {
	s := newScreen(t, 20, 6)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	e := engine.New(engine.WithContent(strings.Join(lines, "\n")))
	p := New(s, WithScrollMargin(1))

	e.GoToLine(30)
	p.Paint(Frame{Snapshot: e.Snapshot()})
	top := p.Top()
	assert.LessOrEqual(t, top, 29)
	assert.Greater(t, top+p.TextHeight(), 29)

	_, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 29-top, y)

	e.GoToLine(1)
	p.Paint(Frame{Snapshot: e.Snapshot()})
	assert.Equal(t, 0, p.Top())
}

func TestHorizontalScroll(t *testing.T) {
	s := newScreen(t, 10, 3)
	e := engine.New(engine.WithContent(strings.Repeat("x", 30) + "END"))
	e.MoveToLineEnd(false)
	p := New(s, WithLineNumbers(false))

	p.Paint(Frame{Snapshot: e.Snapshot()})

	assert.Positive(t, p.Left())
	assert.Contains(t, screenRow(s, 0), "END")
	x, _, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 9, x)
}

func TestScreenToPosition(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := engine.New(engine.WithContent("ab\n\tcd"))
	p := New(s)
	snap := e.Snapshot()
	p.Paint(Frame{Snapshot: snap})

	pos, ok := p.ScreenToPosition(snap, 2+5, 1)
	require.True(t, ok)
	assert.Equal(t, engine.Position{Line: 1, Col: 2}, pos)

	_, ok = p.ScreenToPosition(snap, 0, 0)
	assert.False(t, ok, "gutter")
	_, ok = p.ScreenToPosition(snap, 5, 4)
	assert.False(t, ok, "status line")
}

func TestPaintWrappedLines(t *testing.T) {
	s := newScreen(t, 14, 5)
	e := engine.New(engine.WithContent("aaaa bbbb cccc\nx"), engine.WithWordWrap(10))
	e.MoveToLineEnd(false)
	p := New(s)
	snap := e.Snapshot()

	p.Paint(Frame{Snapshot: snap})

	assert.Equal(t, "1 aaaa bbbb", screenRow(s, 0))
	assert.Equal(t, "  cccc", screenRow(s, 1), "continuation rows have no line number")
	assert.Equal(t, "2 x", screenRow(s, 2))
	assert.Zero(t, p.Left())

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 6, x)
	assert.Equal(t, 1, y)

	pos, ok := p.ScreenToPosition(snap, 4, 1)
	require.True(t, ok)
	assert.Equal(t, engine.Position{Line: 0, Col: 12}, pos)

	pos, ok = p.ScreenToPosition(snap, 13, 0)
	require.True(t, ok)
	assert.Equal(t, engine.Position{Line: 0, Col: 9}, pos, "past a wrapped row stays on that row")

	_, ok = p.GutterLine(snap, 0, 1)
	assert.False(t, ok)
	line, ok := p.GutterLine(snap, 0, 2)
	require.True(t, ok)
	assert.Equal(t, 1, line)
}

func TestPaintFoldedLines(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := engine.New(engine.WithContent("a {\n\t1\n}\nb"))
	p := New(s)

	p.Paint(Frame{Snapshot: e.Snapshot()})
	assert.Equal(t, "1▾a {", screenRow(s, 0))
	assert.Equal(t, "2     1", screenRow(s, 1))

	require.True(t, e.ToggleFold())
	snap := e.Snapshot()
	p.Paint(Frame{Snapshot: snap})

	assert.Equal(t, "1▸a { …", screenRow(s, 0))
	assert.Equal(t, "4 b", screenRow(s, 1))
	assert.Equal(t, "~", screenRow(s, 2))

	line, ok := p.GutterLine(snap, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 3, line)
	_, ok = p.GutterLine(snap, 3, 1)
	assert.False(t, ok, "text area")

	pos, ok := p.ScreenToPosition(snap, 5, 2)
	require.True(t, ok)
	assert.Equal(t, engine.Position{Line: 3, Col: 1}, pos)
}

func TestScrollSkipsFoldedLines(t *testing.T) {
	s := newScreen(t, 20, 6)
	lines := []string{"f {"}
	for range 40 {
		lines = append(lines, "\tbody")
	}
	lines = append(lines, "}", "tail")
	e := engine.New(engine.WithContent(strings.Join(lines, "\n")))
	e.ToggleFold()
	e.GoToLine(43)
	p := New(s, WithScrollMargin(1))

	p.Paint(Frame{Snapshot: e.Snapshot()})

	assert.Zero(t, p.Top(), "the whole fold fits above the cursor")
	assert.Contains(t, screenRow(s, 1), "43 tail")
	_, y, _ := s.GetCursor()
	assert.Equal(t, 1, y)
}
