package engine

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dshills/scribe/internal/log"
	"pgregory.net/rapid"
)

type commentLang struct{}

func (commentLang) LineComment() string { return "//" }

func (commentLang) BracketPairs() [][2]rune {
	return [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}}
}

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) ReadAll() (string, error) { return m.text, m.err }

func (m *memClipboard) WriteAll(s string) error {
	if m.err != nil {
		return m.err
	}
	m.text = s
	return nil
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func fixedClock() (func() time.Time, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return now }, &now
}

func wantText(t *testing.T, e *Editor, want string) {
	t.Helper()
	if got := e.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func wantCursor(t *testing.T, e *Editor, want Position) {
	t.Helper()
	if got := e.CursorPosition(); got != want {
		t.Errorf("CursorPosition() = %+v, want %+v", got, want)
	}
}

func wantOffset(t *testing.T, e *Editor, want int) {
	t.Helper()
	if got := e.CursorOffset(); got != want {
		t.Errorf("CursorOffset() = %d, want %d", got, want)
	}
}

func wantUndoCount(t *testing.T, e *Editor, want int) {
	t.Helper()
	if got := e.UndoCount(); got != want {
		t.Errorf("UndoCount() = %d, want %d", got, want)
	}
}

func mustUndo(t *testing.T, e *Editor) {
	t.Helper()
	if !e.Undo() {
		t.Fatal("Undo() = false, want true")
	}
}

func TestNewEditor(t *testing.T) {
	e := New(WithContent("hello\nworld"))

	wantText(t, e, "hello\nworld")
	if e.LenChars() != 11 {
		t.Errorf("LenChars() = %d, want 11", e.LenChars())
	}
	if e.LenLines() != 2 {
		t.Errorf("LenLines() = %d, want 2", e.LenLines())
	}
	wantCursor(t, e, Position{})
	if e.Modified() || e.IsDirty() || e.CanUndo() {
		t.Error("a new editor should be clean with no history")
	}
}

func TestInsertUndoRedo(t *testing.T) {
	e := New()
	e.InsertText("hello")
	wantText(t, e, "hello")
	wantOffset(t, e, 5)

	mustUndo(t, e)
	wantText(t, e, "")
	wantOffset(t, e, 0)

	if !e.Redo() {
		t.Fatal("Redo() = false, want true")
	}
	wantText(t, e, "hello")
	wantOffset(t, e, 5)

	if e.Redo() {
		t.Error("Redo() with nothing to redo = true")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	e := New(WithContent("x"))
	if e.Undo() || e.Redo() {
		t.Error("Undo/Redo on empty history should report false")
	}
	wantText(t, e, "x")
}

func TestSetContentClearsHistory(t *testing.T) {
	var buf bytes.Buffer
	cleanup := log.InitWriter(&buf, log.LevelDebug)
	defer cleanup()

	e := New()
	e.InsertText("draft")
	e.SetContent("fresh")

	wantText(t, e, "fresh")
	if e.CanUndo() || e.CanRedo() {
		t.Error("SetContent should drop undo and redo history")
	}
	if !strings.Contains(buf.String(), "history cleared undo=1 redo=0") {
		t.Errorf("log = %q, want a history cleared entry", buf.String())
	}
}

func TestTypingCoalesces(t *testing.T) {
	clock, _ := fixedClock()
	e := New(WithClock(clock))

	for _, ch := range "abc" {
		e.InsertChar(ch)
	}
	wantUndoCount(t, e, 1)

	mustUndo(t, e)
	wantText(t, e, "")
}

func TestNewlineBreaksCoalescing(t *testing.T) {
	clock, _ := fixedClock()
	e := New(WithClock(clock))

	e.InsertChar('a')
	e.InsertChar('\n')
	e.InsertChar('b')
	wantUndoCount(t, e, 2)

	mustUndo(t, e)
	wantText(t, e, "a\n")
	mustUndo(t, e)
	wantText(t, e, "")
}

func TestCoalesceWindowExpires(t *testing.T) {
	clock, now := fixedClock()
	e := New(WithClock(clock))

	e.InsertChar('a')
	*now = now.Add(600 * time.Millisecond)
	e.InsertChar('b')
	wantUndoCount(t, e, 2)
}

func TestBackspaceCoalesces(t *testing.T) {
	clock, _ := fixedClock()
	e := New(WithContent("abc"), WithClock(clock))
	e.MoveToBufferEnd(false)

	e.DeleteBackward()
	e.DeleteBackward()
	e.DeleteBackward()
	wantText(t, e, "")
	wantUndoCount(t, e, 1)

	mustUndo(t, e)
	wantText(t, e, "abc")
}

func TestInsertReplacesSelection(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetSelection(Selection{Anchor: 6, Cursor: 11})
	e.InsertText("there")

	wantText(t, e, "hello there")
	wantOffset(t, e, 11)

	mustUndo(t, e)
	wantText(t, e, "hello world")
	if got, want := e.Selection(), (Selection{Anchor: 6, Cursor: 11}); got != want {
		t.Errorf("Selection() = %+v, want %+v", got, want)
	}
}

func TestDeleteForwardAndBackward(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetCursorPosition(0, 1, false)

	e.DeleteForward()
	wantText(t, e, "ac")
	wantOffset(t, e, 1)

	e.DeleteBackward()
	wantText(t, e, "c")
	wantOffset(t, e, 0)

	e.DeleteBackward()
	wantText(t, e, "c")

	e.MoveToBufferEnd(false)
	e.DeleteForward()
	wantText(t, e, "c")
}

func TestInsertNewlineAutoIndent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		cursor  Position
	}{
		{"copies spaces", "  x", "  x\n  ", Position{Line: 1, Col: 2}},
		{"brace adds level", "    if x {", "    if x {\n        ", Position{Line: 1, Col: 8}},
		{"colon with tab", "\tfoo:", "\tfoo:\n\t\t", Position{Line: 1, Col: 2}},
		{"trailing space ignored", "f( ", "f( \n    ", Position{Line: 1, Col: 4}},
		{"no indent", "x", "x\n", Position{Line: 1, Col: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent(tt.content))
			e.MoveToBufferEnd(false)
			e.InsertNewline()

			wantText(t, e, tt.want)
			wantCursor(t, e, tt.cursor)

			mustUndo(t, e)
			wantText(t, e, tt.content)
		})
	}
}

func TestInsertNewlineWithoutAutoIndent(t *testing.T) {
	e := New(WithContent("  {"), WithAutoIndent(false))
	e.MoveToBufferEnd(false)
	e.InsertNewline()
	wantText(t, e, "  {\n")
}

func TestBlockDelete(t *testing.T) {
	e := New(WithContent("abcd\nefgh\nijkl"))
	e.SetCursorPosition(0, 1, false)
	e.StartBlockSelection()
	e.ExtendBlockSelection(2, 3)

	lines, ok := e.BlockSelectedText()
	if !ok {
		t.Fatal("BlockSelectedText() ok = false")
	}
	if want := []string{"bc", "fg", "jk"}; !slices.Equal(lines, want) {
		t.Errorf("BlockSelectedText() = %q, want %q", lines, want)
	}

	if !e.DeleteBlockSelection() {
		t.Fatal("DeleteBlockSelection() = false")
	}
	wantText(t, e, "ad\neh\nil")
	wantCursor(t, e, Position{Line: 0, Col: 1})
	if e.IsBlockMode() {
		t.Error("block mode should end after delete")
	}

	mustUndo(t, e)
	wantText(t, e, "abcd\nefgh\nijkl")
}

func TestBlockDeleteOutsideBlockMode(t *testing.T) {
	e := New(WithContent("abc"))
	if e.DeleteBlockSelection() {
		t.Error("DeleteBlockSelection() outside block mode = true")
	}
	if e.CanUndo() {
		t.Error("nothing should be recorded")
	}
}

func TestInsertTextAtBlock(t *testing.T) {
	e := New(WithContent("abc\nd\nefg"))
	e.SetCursorPosition(0, 2, false)
	e.ToggleBlockSelection()
	e.ExtendBlockSelection(2, 2)

	e.InsertTextAtBlock("|")
	wantText(t, e, "ab|c\nd|\nef|g")
	wantCursor(t, e, Position{Line: 0, Col: 3})
	if e.IsBlockMode() {
		t.Error("block mode should end after insert")
	}
	wantUndoCount(t, e, 1)
}

func TestBlockExtendByMotion(t *testing.T) {
	e := New(WithContent("abcd\nefgh"))
	e.SetCursorPosition(0, 1, false)
	e.ToggleBlockSelection()
	e.MoveDown(true)
	e.MoveRight(true)

	b, ok := e.BlockSelection()
	if !ok {
		t.Fatal("BlockSelection() ok = false")
	}
	top, bottom := b.Bounds()
	if top != (Position{Line: 0, Col: 1}) || bottom != (Position{Line: 1, Col: 2}) {
		t.Errorf("Bounds() = %+v, %+v; want {0 1}, {1 2}", top, bottom)
	}

	lines, _ := e.BlockSelectedText()
	if want := []string{"b", "f"}; !slices.Equal(lines, want) {
		t.Errorf("BlockSelectedText() = %q, want %q", lines, want)
	}

	e.MoveLeft(false)
	if e.IsBlockMode() {
		t.Error("a plain move should leave block mode")
	}
}

func TestMultiCursorInsert(t *testing.T) {
	e := New(WithContent("aa\nbb\ncc"))
	if !e.AddCursorBelow() || !e.AddCursorBelow() {
		t.Fatal("AddCursorBelow() = false")
	}
	if e.AddCursorBelow() {
		t.Fatal("AddCursorBelow() past the last line = true")
	}
	if e.CursorCount() != 3 {
		t.Fatalf("CursorCount() = %d, want 3", e.CursorCount())
	}

	e.InsertText("> ")
	wantText(t, e, "> aa\n> bb\n> cc")
	want := []Position{{Line: 0, Col: 2}, {Line: 1, Col: 2}, {Line: 2, Col: 2}}
	if got := e.AllCursorPositions(); !slices.Equal(got, want) {
		t.Errorf("AllCursorPositions() = %+v, want %+v", got, want)
	}

	mustUndo(t, e)
	wantText(t, e, "aa\nbb\ncc")
}

func TestMultiCursorDeleteMerges(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetCursorPosition(0, 1, false)
	if !e.AddCursorAt(0, 2) {
		t.Fatal("AddCursorAt() = false")
	}

	e.DeleteBackward()
	wantText(t, e, "c")
	if e.CursorCount() != 1 {
		t.Errorf("CursorCount() = %d, want 1", e.CursorCount())
	}
	wantOffset(t, e, 0)
}

func TestMultiCursorAddAboveAndCollapse(t *testing.T) {
	e := New(WithContent("long line\nab\nxyz"))
	e.SetCursorPosition(2, 3, false)

	if !e.AddCursorAbove() || !e.AddCursorAbove() {
		t.Fatal("AddCursorAbove() = false")
	}
	if e.AddCursorAbove() {
		t.Error("AddCursorAbove() past the first line = true")
	}

	pos := e.AllCursorPositions()
	if len(pos) != 3 {
		t.Fatalf("got %d cursors, want 3", len(pos))
	}
	if pos[1] != (Position{Line: 1, Col: 2}) {
		t.Errorf("middle cursor = %+v, want clamped to {1 2}", pos[1])
	}
	if e.PrimaryCursorIndex() != 2 {
		t.Errorf("PrimaryCursorIndex() = %d, want 2", e.PrimaryCursorIndex())
	}

	e.CollapseCursors()
	if e.CursorCount() != 1 {
		t.Errorf("CursorCount() = %d, want 1", e.CursorCount())
	}
	wantCursor(t, e, Position{Line: 2, Col: 3})
}

func TestDuplicateLine(t *testing.T) {
	e := New(WithContent("one\ntwo"))
	e.DuplicateLine()
	wantText(t, e, "one\none\ntwo")
	wantCursor(t, e, Position{Line: 1, Col: 0})

	e.GoToLine(3)
	e.DuplicateLine()
	wantText(t, e, "one\none\ntwo\ntwo")
	wantCursor(t, e, Position{Line: 3, Col: 0})
}

func TestMoveLineUpDown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		up      bool
		want    string
		ok      bool
		cursor  int
	}{
		{"up middle", "a\nb\nc", 1, true, "b\na\nc", true, 0},
		{"up last", "a\nb", 1, true, "b\na", true, 0},
		{"up first", "a\nb", 0, true, "a\nb", false, 0},
		{"down first", "a\nb\nc", 0, false, "b\na\nc", true, 1},
		{"down into last", "a\nb", 0, false, "b\na", true, 1},
		{"down last", "a\nb", 1, false, "a\nb", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent(tt.content))
			e.SetCursorPosition(tt.line, 0, false)

			var ok bool
			if tt.up {
				ok = e.MoveLineUp()
			} else {
				ok = e.MoveLineDown()
			}
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			wantText(t, e, tt.want)
			if got := e.CursorPosition().Line; got != tt.cursor {
				t.Errorf("cursor line = %d, want %d", got, tt.cursor)
			}

			if ok {
				mustUndo(t, e)
				wantText(t, e, tt.content)
			}
		})
	}
}

func TestToggleComment(t *testing.T) {
	e := New(WithContent("foo\n  bar\nbaz"), WithLanguage(commentLang{}))
	e.SetSelection(Selection{Anchor: 0, Cursor: 10})

	if !e.ToggleComment() {
		t.Fatal("ToggleComment() = false")
	}
	wantText(t, e, "// foo\n  // bar\nbaz")

	e.SetSelection(Selection{Anchor: 0, Cursor: e.Document().LineStart(2)})
	if !e.ToggleComment() {
		t.Fatal("ToggleComment() = false")
	}
	wantText(t, e, "foo\n  bar\nbaz")
}

func TestToggleCommentMixedLinesComments(t *testing.T) {
	e := New(WithContent("// a\nb"), WithLanguage(commentLang{}))
	e.SelectAll()
	if !e.ToggleComment() {
		t.Fatal("ToggleComment() = false")
	}
	wantText(t, e, "// // a\n// b")
	wantUndoCount(t, e, 1)
}

func TestToggleCommentKeepsCaret(t *testing.T) {
	e := New(WithContent("x := 1"), WithLanguage(commentLang{}))
	e.SetCursorPosition(0, 2, false)

	e.ToggleComment()
	wantText(t, e, "// x := 1")
	wantOffset(t, e, 5)

	e.ToggleComment()
	wantText(t, e, "x := 1")
	wantOffset(t, e, 2)
}

func TestToggleCommentWithoutPrefix(t *testing.T) {
	e := New(WithContent("x"))
	if e.ToggleComment() {
		t.Error("ToggleComment() without a comment prefix = true")
	}
	wantText(t, e, "x")
}

func TestFindMatchingBracket(t *testing.T) {
	e := New(WithContent("(a[b]c)"))

	tests := []struct {
		pos  int
		want int
		ok   bool
	}{
		{0, 6, true},
		{6, 0, true},
		{2, 4, true},
		{4, 2, true},
		{1, 0, false},
		{99, 0, false},
	}
	for _, tt := range tests {
		got, ok := e.FindMatchingBracket(tt.pos)
		if ok != tt.ok {
			t.Errorf("FindMatchingBracket(%d) ok = %v, want %v", tt.pos, ok, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("FindMatchingBracket(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestAutoBracket(t *testing.T) {
	e := New(WithAutoBrackets(true))

	e.TypeChar('(')
	wantText(t, e, "()")
	wantOffset(t, e, 1)

	e.TypeChar('x')
	e.TypeChar(')')
	wantText(t, e, "(x)")
	wantOffset(t, e, 3)

	at, match, ok := e.MatchingBracketAtCursor()
	if !ok {
		t.Fatal("MatchingBracketAtCursor() ok = false")
	}
	if at != 2 || match != 0 {
		t.Errorf("MatchingBracketAtCursor() = %d, %d; want 2, 0", at, match)
	}
}

func TestSearchAndReplace(t *testing.T) {
	e := New(WithContent("foo bar foo baz Foo"))

	if n := e.Find("foo"); n != 3 {
		t.Errorf("Find() = %d, want 3", n)
	}
	if got, want := e.Selection(), (Selection{Anchor: 0, Cursor: 3}); got != want {
		t.Errorf("Selection() = %+v, want %+v", got, want)
	}
	if got := e.SearchStatus(); got != "1 of 3" {
		t.Errorf("SearchStatus() = %q, want %q", got, "1 of 3")
	}

	if !e.FindNext() {
		t.Fatal("FindNext() = false")
	}
	if got, want := e.Selection(), (Selection{Anchor: 8, Cursor: 11}); got != want {
		t.Errorf("Selection() = %+v, want %+v", got, want)
	}
	if got := e.SearchStatus(); got != "2 of 3" {
		t.Errorf("SearchStatus() = %q, want %q", got, "2 of 3")
	}

	if !e.ToggleSearchCaseSensitive() {
		t.Error("ToggleSearchCaseSensitive() = false, want true")
	}
	if n := len(e.SearchMatches()); n != 2 {
		t.Errorf("case-sensitive matches = %d, want 2", n)
	}
	e.ToggleSearchCaseSensitive()

	if n := e.ReplaceAll("x"); n != 3 {
		t.Errorf("ReplaceAll() = %d, want 3", n)
	}
	wantText(t, e, "x bar x baz x")
	if e.HasSearch() {
		t.Error("ReplaceAll should clear the search")
	}
	wantUndoCount(t, e, 1)

	mustUndo(t, e)
	wantText(t, e, "foo bar foo baz Foo")
}

func TestReplaceCurrent(t *testing.T) {
	e := New(WithContent("aa aa"))
	if n := e.Find("aa"); n != 2 {
		t.Fatalf("Find() = %d, want 2", n)
	}

	if !e.ReplaceCurrent("b") {
		t.Fatal("ReplaceCurrent() = false")
	}
	wantText(t, e, "b aa")
	if got, want := e.Selection(), (Selection{Anchor: 2, Cursor: 4}); got != want {
		t.Errorf("Selection() = %+v, want %+v", got, want)
	}

	e.ClearSearch()
	if e.ReplaceCurrent("b") {
		t.Error("ReplaceCurrent() without a search = true")
	}
}

func TestGoToLine(t *testing.T) {
	e := New(WithContent("a\nbb\nccc"))

	if !e.GoToLine(3) {
		t.Fatal("GoToLine(3) = false")
	}
	wantCursor(t, e, Position{Line: 2, Col: 0})
	if e.GoToLine(0) || e.GoToLine(4) {
		t.Error("GoToLine out of range = true")
	}

	if !e.GoToLineCol(2, 10) {
		t.Fatal("GoToLineCol() = false")
	}
	wantCursor(t, e, Position{Line: 1, Col: 2})
}

func TestClipboard(t *testing.T) {
	cb := &memClipboard{}
	e := New(WithContent("hello"), WithClipboard(cb))

	if err := e.Copy(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Copy() = %v, want %v", err, ErrNoSelection)
	}

	e.SelectAll()
	if err := e.Copy(); err != nil {
		t.Fatalf("Copy() = %v", err)
	}
	if cb.text != "hello" {
		t.Errorf("clipboard = %q, want %q", cb.text, "hello")
	}

	if err := e.Cut(); err != nil {
		t.Fatalf("Cut() = %v", err)
	}
	wantText(t, e, "")

	for range 2 {
		if err := e.Paste(); err != nil {
			t.Fatalf("Paste() = %v", err)
		}
	}
	wantText(t, e, "hellohello")
}

func TestClipboardErrors(t *testing.T) {
	e := New(WithContent("abc"))
	e.SelectAll()
	if err := e.Copy(); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Copy() = %v, want %v", err, ErrNoClipboard)
	}
	if err := e.Paste(); !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Paste() = %v, want %v", err, ErrNoClipboard)
	}

	boom := errors.New("boom")
	e.SetClipboard(&memClipboard{err: boom})
	if err := e.Cut(); !errors.Is(err, boom) {
		t.Errorf("Cut() = %v, want %v", err, boom)
	}
	wantText(t, e, "abc")
}

func TestLoad(t *testing.T) {
	e := New(WithContent("keep"))
	e.InsertText("x")

	if err := e.Load(failReader{}); err == nil {
		t.Fatal("Load() from a failing reader succeeded")
	}
	wantText(t, e, "xkeep")
	if !e.CanUndo() {
		t.Error("a failed load should keep history")
	}

	err := e.Load(bytes.NewReader([]byte{'a', 0xff}))
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Load() = %v, want %v", err, ErrInvalidEncoding)
	}
	wantText(t, e, "xkeep")

	if err := e.Load(strings.NewReader("fresh\ntext")); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	wantText(t, e, "fresh\ntext")
	if e.CanUndo() || e.Modified() {
		t.Error("a loaded document should be clean with no history")
	}
	wantOffset(t, e, 0)
}

func TestModifiedAndDirty(t *testing.T) {
	e := New(WithContent("x"))
	e.InsertText("y")
	if !e.Modified() || !e.IsDirty() {
		t.Error("an edit should mark the editor modified and dirty")
	}
	if n := len(e.ChangedLines()); n != 1 {
		t.Errorf("ChangedLines() has %d lines, want 1", n)
	}

	e.Undo()
	if !e.Modified() {
		t.Error("Modified() should stay true after undo")
	}
	if e.IsDirty() {
		t.Error("IsDirty() should be false once the text matches the save")
	}

	e.Redo()
	e.MarkSaved()
	if e.Modified() || e.IsDirty() {
		t.Error("MarkSaved should clear modified and dirty")
	}
}

func TestInvalidator(t *testing.T) {
	var versions []Version
	e := New(WithContent("()"), WithAutoBrackets(true), WithInvalidator(func(v Version) {
		versions = append(versions, v)
	}))

	e.TypeChar('a')
	if len(versions) != 1 {
		t.Fatalf("got %d notifications, want 1", len(versions))
	}
	if versions[0] != e.Version() {
		t.Errorf("notified version %v, want %v", versions[0], e.Version())
	}

	// Stepping over a bracket changes nothing.
	e.MoveRight(false)
	e.TypeChar(')')
	if len(versions) != 1 {
		t.Errorf("got %d notifications, want 1", len(versions))
	}

	e.Undo()
	if len(versions) != 2 {
		t.Errorf("got %d notifications, want 2", len(versions))
	}
}

func TestSnapshot(t *testing.T) {
	e := New(WithContent("one\ntwo"))
	e.SetCursorPosition(1, 1, false)
	e.AddCursorAt(0, 0)

	s := e.Snapshot()
	e.InsertText("!")

	if s.LenLines() != 2 {
		t.Errorf("LenLines() = %d, want 2", s.LenLines())
	}
	if line, ok := s.Line(1); !ok || line != "two" {
		t.Errorf("Line(1) = %q, %v; want %q", line, ok, "two")
	}
	want := []Position{{Line: 0, Col: 0}, {Line: 1, Col: 1}}
	if !slices.Equal(s.Cursors, want) {
		t.Errorf("Cursors = %+v, want %+v", s.Cursors, want)
	}
	if got := s.PrimaryCursor(); got != (Position{Line: 1, Col: 1}) {
		t.Errorf("PrimaryCursor() = %+v, want {1 1}", got)
	}
	if s.CurrentMatch != -1 {
		t.Errorf("CurrentMatch = %d, want -1", s.CurrentMatch)
	}
	if s.HasBlock {
		t.Error("HasBlock = true without a block selection")
	}
	if s.Version == e.Version() {
		t.Error("the snapshot should keep its own version after an edit")
	}
}

// Any sequence of commands can be fully undone and then fully redone.
func TestPropertyUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.StringMatching(`[ab \n]{0,20}`).Draw(t, "initial")
		e := New(WithContent(initial), WithAutoBrackets(true))

		actions := []func(){
			func() { e.InsertText(rapid.StringMatching(`[xy\n]{1,3}`).Draw(t, "text")) },
			func() { e.TypeChar(rapid.SampledFrom([]rune{'(', ')', 'z'}).Draw(t, "ch")) },
			func() { e.InsertNewline() },
			func() { e.DeleteBackward() },
			func() { e.DeleteForward() },
			func() { e.MoveLeft(rapid.Bool().Draw(t, "extend")) },
			func() { e.MoveRight(rapid.Bool().Draw(t, "extend")) },
			func() { e.MoveUp(false) },
			func() { e.MoveDown(rapid.Bool().Draw(t, "extend")) },
			func() { e.AddCursorBelow() },
			func() { e.DuplicateLine() },
			func() { e.MoveLineUp() },
			func() { e.MoveLineDown() },
			func() { e.SelectAll() },
			func() { e.ToggleFold() },
			func() { e.FoldAll() },
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			actions[rapid.IntRange(0, len(actions)-1).Draw(t, "action")]()
			if off := e.CursorOffset(); off < 0 || off > e.LenChars() {
				t.Fatalf("cursor %d outside [0, %d]", off, e.LenChars())
			}
		}
		final := e.Text()

		for e.Undo() {
		}
		if e.Text() != initial {
			t.Fatalf("undo all = %q, want %q", e.Text(), initial)
		}
		for e.Redo() {
		}
		if e.Text() != final {
			t.Fatalf("redo all = %q, want %q", e.Text(), final)
		}
	})
}
