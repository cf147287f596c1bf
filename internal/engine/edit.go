package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/engine/cursor"
)

// forEachCursor runs fn for every cursor from last to first, so an edit at
// one cursor never invalidates the offsets of cursors not yet visited. fn
// must shift the cursors it has passed with AdjustPositions.
func (e *Editor) forEachCursor(fn func(c *cursor.Cursor)) {
	cs := e.cursors.Cursors()
	for i := len(cs) - 1; i >= 0; i-- {
		fn(cs[i])
	}
	e.cursors.Normalize()
}

// removeAt deletes [start, end) and pulls every later cursor back.
func (e *Editor) removeAt(start, end int) {
	removed := e.removeRange(start, end)
	if n := utf8.RuneCountInString(removed); n > 0 {
		e.cursors.AdjustPositions(start+n, -n)
	}
}

// deleteSelectionOf deletes c's selection and leaves a caret at its start.
func (e *Editor) deleteSelectionOf(c *cursor.Cursor) bool {
	start, end, ok := c.SelectedRange()
	if !ok {
		return false
	}
	e.removeAt(start, end)
	c.SetPosition(start, false)
	return true
}

// insertAtCursor replaces c's selection with text and leaves the caret
// after it.
func (e *Editor) insertAtCursor(c *cursor.Cursor, text string) {
	e.deleteSelectionOf(c)
	pos := c.Position()
	e.insertAt(pos, text)
	n := utf8.RuneCountInString(text)
	e.cursors.AdjustPositions(pos, n)
	c.SetPosition(pos+n, false)
}

// ============================================================================
// Insertion
// ============================================================================

// InsertChar inserts ch at every cursor, replacing selections.
func (e *Editor) InsertChar(ch rune) {
	e.InsertText(string(ch))
}

// InsertText inserts text at every cursor, replacing selections. In block
// mode the text goes into every line of the block instead.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	if e.primary().IsBlockMode() {
		e.InsertTextAtBlock(text)
		return
	}

	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		e.insertAtCursor(c, text)
	})
	e.finishEdit()
}

// InsertNewline breaks the line at every cursor. With auto-indent on, the
// new line repeats the current line's leading whitespace, plus one level
// when the text before the cursor ends in an opening bracket or colon.
func (e *Editor) InsertNewline() {
	if e.primary().IsBlockMode() {
		e.primary().ExitBlockMode()
	}

	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		e.deleteSelectionOf(c)
		pos := c.Position()
		indent := ""
		if e.autoIndent {
			indent = e.indentFor(pos)
		}

		e.insertAt(pos, "\n")
		e.insertAt(pos+1, indent)
		n := 1 + utf8.RuneCountInString(indent)
		e.cursors.AdjustPositions(pos, n)
		c.SetPosition(pos+n, false)
	})
	e.finishEdit()
}

// TypeChar inserts ch the way a keypress would: newlines auto-indent and,
// when enabled, brackets auto-close.
func (e *Editor) TypeChar(ch rune) {
	switch {
	case ch == '\n':
		e.InsertNewline()
	case e.autoBrackets:
		e.InsertCharWithAutoBracket(ch)
	default:
		e.InsertChar(ch)
	}
}

// indentFor returns the indentation for a line broken at pos.
func (e *Editor) indentFor(pos int) string {
	at := e.doc.CharToLineCol(pos)
	text, _ := e.doc.Line(at.Line)

	indent := leadingWhitespace(text)

	before := strings.TrimRight(prefixChars(text, at.Col), " \t")
	if before == "" {
		return indent
	}
	last, _ := utf8.DecodeLastRuneInString(before)
	switch last {
	case '{', '[', '(', ':':
		if strings.ContainsRune(indent, '\t') {
			return indent + "\t"
		}
		return indent + strings.Repeat(" ", e.tabWidth)
	}
	return indent
}

func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}

// prefixChars returns the first n characters of s.
func prefixChars(s string, n int) string {
	i := 0
	for off := range s {
		if i == n {
			return s[:off]
		}
		i++
	}
	return s
}

// ============================================================================
// Deletion
// ============================================================================

// DeleteBackward deletes the selection, or the character before the
// caret, at every cursor. In block mode it deletes the block.
func (e *Editor) DeleteBackward() {
	if e.primary().IsBlockMode() {
		e.DeleteBlockSelection()
		return
	}

	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		if e.deleteSelectionOf(c) {
			return
		}
		pos := c.Position()
		if pos == 0 {
			return
		}
		e.removeAt(pos-1, pos)
		c.SetPosition(pos-1, false)
	})
	e.finishEdit()
}

// DeleteForward deletes the selection, or the character after the caret,
// at every cursor. In block mode it deletes the block.
func (e *Editor) DeleteForward() {
	if e.primary().IsBlockMode() {
		e.DeleteBlockSelection()
		return
	}

	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		if e.deleteSelectionOf(c) {
			return
		}
		pos := c.Position()
		if pos >= e.doc.LenChars() {
			return
		}
		e.removeAt(pos, pos+1)
	})
	e.finishEdit()
}

// DeleteSelection deletes every selection. It returns false when no
// cursor had one.
func (e *Editor) DeleteSelection() bool {
	deleted := false
	e.beginEdit()
	e.forEachCursor(func(c *cursor.Cursor) {
		if e.deleteSelectionOf(c) {
			deleted = true
		}
	})
	e.finishEdit()
	return deleted
}

// ============================================================================
// Clipboard
// ============================================================================

// SelectedText returns the primary cursor's selected text.
func (e *Editor) SelectedText() (string, bool) {
	start, end, ok := e.primary().SelectedRange()
	if !ok {
		return "", false
	}
	return e.doc.Slice(start, end), true
}

// Copy writes the primary selection to the clipboard.
func (e *Editor) Copy() error {
	text, ok := e.SelectedText()
	if !ok {
		return ErrNoSelection
	}
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	if err := e.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// Cut copies the primary selection to the clipboard and deletes it as one
// undoable edit. Nothing is deleted if the copy fails.
func (e *Editor) Cut() error {
	if err := e.Copy(); err != nil {
		return err
	}
	e.beginEdit()
	e.deleteSelectionOf(e.primary())
	e.cursors.Normalize()
	e.finishEdit()
	return nil
}

// Paste inserts the clipboard content at every cursor.
func (e *Editor) Paste() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	e.InsertText(text)
	return nil
}
