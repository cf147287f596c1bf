package cursor

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/buffer"
)

func TestSelectionRange(t *testing.T) {
	tests := []struct {
		sel        Selection
		start, end int
		empty      bool
	}{
		{NewSelection(2, 7), 2, 7, false},
		{NewSelection(7, 2), 2, 7, false},
		{Caret(4), 4, 4, true},
	}
	for _, tt := range tests {
		start, end := tt.sel.Range()
		if start != tt.start || end != tt.end {
			t.Errorf("%v.Range() = (%d, %d), want (%d, %d)", tt.sel, start, end, tt.start, tt.end)
		}
		if tt.sel.IsEmpty() != tt.empty {
			t.Errorf("%v.IsEmpty() = %v", tt.sel, tt.sel.IsEmpty())
		}
	}
}

func TestSelectionShift(t *testing.T) {
	s := NewSelection(3, 10).Shift(5, -8)
	if s.Anchor != 3 || s.Cursor != 2 {
		t.Errorf("got %v", s)
	}
	s = NewSelection(3, 10).Shift(0, -20)
	if s.Anchor != 0 || s.Cursor != 0 {
		t.Errorf("shift should floor at 0, got %v", s)
	}
}

func TestMoveLeftRight(t *testing.T) {
	doc := buffer.NewFromString("abc")
	c := NewCursor(0)

	c.MoveLeft(doc, false)
	if c.Position() != 0 {
		t.Errorf("move left at 0 should stay, got %d", c.Position())
	}

	c.MoveRight(doc, false)
	c.MoveRight(doc, false)
	c.MoveRight(doc, false)
	c.MoveRight(doc, false)
	if c.Position() != 3 {
		t.Errorf("move right should stop at end, got %d", c.Position())
	}

	c.MoveLeft(doc, true)
	c.MoveLeft(doc, true)
	if s := c.Selection(); s.Anchor != 3 || s.Cursor != 1 {
		t.Errorf("extend left: got %v", s)
	}
}

func TestMoveCollapsesToSelectionEdge(t *testing.T) {
	doc := buffer.NewFromString("hello world")

	c := NewCursor(0)
	c.SetSelection(NewSelection(2, 8))
	c.MoveLeft(doc, false)
	if c.Position() != 2 || c.HasSelection() {
		t.Errorf("left should collapse to start, got %v", c.Selection())
	}

	c.SetSelection(NewSelection(8, 2))
	c.MoveRight(doc, false)
	if c.Position() != 8 || c.HasSelection() {
		t.Errorf("right should collapse to end, got %v", c.Selection())
	}
}

func TestMoveWord(t *testing.T) {
	doc := buffer.NewFromString("foo bar.baz")
	c := NewCursor(0)

	want := []int{4, 7, 8, 11, 11}
	for _, w := range want {
		c.MoveWordRight(doc, false)
		if c.Position() != w {
			t.Fatalf("MoveWordRight = %d, want %d", c.Position(), w)
		}
	}

	back := []int{8, 7, 4, 0, 0}
	for _, w := range back {
		c.MoveWordLeft(doc, false)
		if c.Position() != w {
			t.Fatalf("MoveWordLeft = %d, want %d", c.Position(), w)
		}
	}
}

func TestPreferredColumn(t *testing.T) {
	doc := buffer.NewFromString("long line here\nab\nanother long line")
	c := NewCursor(doc.LineColToChar(0, 10))

	c.MoveDown(doc, false)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("after first down: %v", got)
	}
	if col, ok := c.PreferredColumn(); !ok || col != 10 {
		t.Errorf("preferred column = %d, %v", col, ok)
	}

	c.MoveDown(doc, false)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 2, Col: 10}) {
		t.Errorf("column should be restored: %v", got)
	}

	c.MoveUp(doc, false)
	c.MoveUp(doc, false)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 0, Col: 10}) {
		t.Errorf("back on first line: %v", got)
	}

	c.MoveLeft(doc, false)
	if _, ok := c.PreferredColumn(); ok {
		t.Error("horizontal motion should clear the preferred column")
	}
}

func TestVerticalEdges(t *testing.T) {
	doc := buffer.NewFromString("abc\ndef")

	c := NewCursor(2)
	c.MoveUp(doc, false)
	if c.Position() != 0 {
		t.Errorf("up on first line should go to 0, got %d", c.Position())
	}
	if _, ok := c.PreferredColumn(); ok {
		t.Error("up on first line should clear the preferred column")
	}

	c.SetPosition(5, false)
	c.MoveDown(doc, false)
	if c.Position() != doc.LenChars() {
		t.Errorf("down on last line should go to end, got %d", c.Position())
	}

	empty := buffer.New()
	e := NewCursor(0)
	e.MoveDown(empty, true)
	e.MoveUp(empty, true)
	e.MovePageDown(empty, 10, false)
	e.MovePageUp(empty, 10, false)
	if e.Position() != 0 {
		t.Errorf("empty document movement should stay at 0, got %d", e.Position())
	}
}

func TestPageMovement(t *testing.T) {
	doc := buffer.NewFromString("l0 xxxx\nl1\nl2 xxxx\nl3\nl4 xxxx")
	c := NewCursor(doc.LineColToChar(0, 5))

	c.MovePageDown(doc, 2, false)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 2, Col: 5}) {
		t.Errorf("page down: %v", got)
	}
	c.MovePageDown(doc, 10, false)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 4, Col: 5}) {
		t.Errorf("page down clamps to last line: %v", got)
	}
	c.MovePageUp(doc, 3, true)
	if got := doc.CharToLineCol(c.Position()); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("page up: %v", got)
	}
	if s := c.Selection(); s.Anchor != doc.LineColToChar(4, 5) {
		t.Errorf("extend should keep anchor, got %v", s)
	}
}

func TestLineStartEnd(t *testing.T) {
	doc := buffer.NewFromString("first\n  second")
	c := NewCursor(9)

	c.MoveToLineEnd(doc, false)
	if c.Position() != 14 {
		t.Errorf("line end = %d", c.Position())
	}
	c.MoveToLineStart(doc, true)
	if s := c.Selection(); s.Anchor != 14 || s.Cursor != 6 {
		t.Errorf("line start extend = %v", s)
	}
	c.MoveToBufferStart(false)
	if c.Position() != 0 {
		t.Errorf("buffer start = %d", c.Position())
	}
	c.MoveToBufferEnd(doc, false)
	if c.Position() != doc.LenChars() {
		t.Errorf("buffer end = %d", c.Position())
	}
}

func TestSmartHome(t *testing.T) {
	doc := buffer.NewFromString("    code here\n   \nflush")

	tests := []struct {
		name    string
		fromCol int
		line    int
		wantCol int
	}{
		{"from after indent", 9, 0, 4},
		{"from indent", 4, 0, 0},
		{"from column zero", 0, 0, 4},
		{"inside indent", 2, 0, 0},
		{"blank line", 2, 1, 0},
		{"blank line at zero", 0, 1, 0},
		{"no indent", 3, 2, 0},
		{"no indent at zero", 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(doc.LineColToChar(tt.line, tt.fromCol))
			c.MoveToLineStartSmart(doc, false)
			if got := doc.CharToLineCol(c.Position()); got.Col != tt.wantCol || got.Line != tt.line {
				t.Errorf("got %v, want (%d:%d)", got, tt.line, tt.wantCol)
			}
		})
	}
}

func TestSmartHomeToggles(t *testing.T) {
	doc := buffer.NewFromString("\tx = 1")
	c := NewCursor(5)

	c.MoveToLineStartSmart(doc, false)
	if c.Position() != 1 {
		t.Fatalf("first press = %d, want 1", c.Position())
	}
	c.MoveToLineStartSmart(doc, false)
	if c.Position() != 0 {
		t.Fatalf("second press = %d, want 0", c.Position())
	}
	c.MoveToLineStartSmart(doc, false)
	if c.Position() != 1 {
		t.Fatalf("third press = %d, want 1", c.Position())
	}
}

func TestClampToBuffer(t *testing.T) {
	doc := buffer.NewFromString("abc")
	c := NewCursor(0)
	c.SetSelection(NewSelection(10, 20))
	c.ClampToBuffer(doc)
	if s := c.Selection(); s.Anchor != 3 || s.Cursor != 3 {
		t.Errorf("got %v", s)
	}
}

func TestBlockSelection(t *testing.T) {
	doc := buffer.NewFromString("abcd\nef\nijkl")
	c := NewCursor(1)
	c.SetSelection(NewSelection(0, 1))

	c.StartBlockSelection(doc)
	if !c.IsBlockMode() {
		t.Fatal("expected block mode")
	}
	if c.HasSelection() {
		t.Error("linear selection should collapse in block mode")
	}

	c.UpdateBlockSelection(2, 3)
	b, ok := c.Block()
	if !ok {
		t.Fatal("expected block")
	}
	top, bottom := b.Bounds()
	if top != (Position{Line: 0, Col: 1}) || bottom != (Position{Line: 2, Col: 3}) {
		t.Errorf("bounds = %v, %v", top, bottom)
	}

	ranges := [][2]int{{1, 3}, {1, 2}, {1, 3}}
	for line, want := range ranges {
		start, end, ok := b.ColRange(doc, line)
		if !ok || start != want[0] || end != want[1] {
			t.Errorf("ColRange(%d) = %d, %d, %v; want %v", line, start, end, ok, want)
		}
	}
	if _, _, ok := b.ColRange(doc, 3); ok {
		t.Error("line outside block should not be ok")
	}

	c.ExitBlockMode()
	if c.IsBlockMode() {
		t.Error("expected normal mode")
	}
	if _, ok := c.Block(); ok {
		t.Error("block should be discarded")
	}
}

func TestBlockBoundsNormalize(t *testing.T) {
	b := BlockSelection{Anchor: Position{Line: 3, Col: 1}, Cursor: Position{Line: 1, Col: 5}}
	top, bottom := b.Bounds()
	if top != (Position{Line: 1, Col: 1}) || bottom != (Position{Line: 3, Col: 5}) {
		t.Errorf("bounds = %v, %v", top, bottom)
	}
	if b.LineCount() != 3 {
		t.Errorf("LineCount = %d", b.LineCount())
	}
}

func TestUpdateBlockOutsideBlockMode(t *testing.T) {
	c := NewCursor(0)
	c.UpdateBlockSelection(4, 4)
	if c.IsBlockMode() {
		t.Error("update should not enter block mode")
	}
}
