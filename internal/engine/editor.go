package engine

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/fold"
	"github.com/dshills/scribe/internal/engine/history"
	"github.com/dshills/scribe/internal/engine/search"
	"github.com/dshills/scribe/internal/engine/tracking"
	"github.com/dshills/scribe/internal/log"
)

// Re-export commonly used types for convenience.
type (
	// Position is a 0-indexed line and character column.
	Position = buffer.Position

	// Version identifies a document state.
	Version = buffer.Version

	// Selection is an anchor/cursor pair of character offsets.
	Selection = cursor.Selection

	// BlockSelection is a rectangular selection.
	BlockSelection = cursor.BlockSelection

	// Match is a search match.
	Match = search.Match

	// DiffResult contains the result of a diff operation.
	DiffResult = tracking.DiffResult

	// LineChange marks changed lines for a gutter.
	LineChange = tracking.LineChange
)

// Invalidator is called after every committed change with the new
// document version.
type Invalidator func(v Version)

// Language supplies the syntax facts editing commands need.
type Language interface {
	// LineComment returns the line comment prefix, or "" if the language
	// has none.
	LineComment() string

	// BracketPairs returns matching open/close pairs.
	BracketPairs() [][2]rune
}

// Clipboard stores text for Copy, Cut and Paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type plainLanguage struct{}

func (plainLanguage) LineComment() string { return "" }

func (plainLanguage) BracketPairs() [][2]rune {
	return [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}}
}

// PlainText is the language used when none is set: no line comments and
// the three common bracket pairs.
var PlainText Language = plainLanguage{}

// Editor coordinates a document, its cursors and its undo history.
// It is not safe for concurrent use; hand Snapshot values to other
// goroutines instead.
type Editor struct {
	doc     *buffer.Document
	cursors *cursor.MultiCursor
	history *history.History
	search  *search.Search
	tracker *tracking.Tracker
	folds   *fold.Manager

	lang         Language
	clipboard    Clipboard
	invalidators []Invalidator

	// modified is set by any change and cleared by MarkSaved.
	modified bool

	// editVersion is the document version when the open edit began.
	editVersion Version

	// foldVersion is the document version regions were detected at.
	foldVersion Version
	foldsValid  bool

	// Configuration
	tabWidth       int
	pageSize       int
	maxUndo        int
	coalesceWindow time.Duration
	clock          func() time.Time
	autoIndent     bool
	autoBrackets   bool
	caseSensitive  bool
	folding        bool
	wordWrap       bool
	wrapWidth      int

	// Initialization
	initContent string
}

// New creates an Editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		lang:           PlainText,
		tabWidth:       DefaultTabWidth,
		pageSize:       DefaultPageSize,
		maxUndo:        DefaultMaxUndoEntries,
		coalesceWindow: DefaultCoalesceWindow,
		autoIndent:     true,
		folding:        true,
		wrapWidth:      DefaultWrapWidth,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.doc = buffer.NewFromString(e.initContent)
	e.initContent = ""
	e.cursors = cursor.NewMultiCursor(0)
	e.search = search.New()
	e.search.SetCaseSensitive(e.caseSensitive, e.doc)
	e.tracker = tracking.NewTracker()
	e.tracker.MarkSaved(e.doc.Snapshot())
	e.folds = fold.NewManager()
	e.folds.SetEnabled(e.folding)

	hopts := []history.Option{
		history.WithMaxSize(e.maxUndo),
		history.WithCoalesceWindow(e.coalesceWindow),
		history.WithCoalescing(e.coalesceWindow > 0),
	}
	if e.clock != nil {
		hopts = append(hopts, history.WithClock(e.clock))
	}
	e.history = history.New(hopts...)

	return e
}

// NewFromReader creates an Editor with content read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Editor, error) {
	e := New(opts...)
	if err := e.Load(r); err != nil {
		return nil, err
	}
	return e, nil
}

// ============================================================================
// Content
// ============================================================================

// Text returns the full document content.
func (e *Editor) Text() string {
	return e.doc.String()
}

// Document returns the underlying document for read access. Mutating it
// directly bypasses undo history.
func (e *Editor) Document() *buffer.Document {
	return e.doc
}

// Version returns the document version.
func (e *Editor) Version() Version {
	return e.doc.Version()
}

// LenChars returns the number of characters.
func (e *Editor) LenChars() int {
	return e.doc.LenChars()
}

// LenLines returns the number of lines.
func (e *Editor) LenLines() int {
	return e.doc.LenLines()
}

// Line returns line i without its newline.
func (e *Editor) Line(i int) (string, bool) {
	return e.doc.Line(i)
}

// Load replaces the content with everything read from r. The reader is
// drained before any state changes, so on error the editor is untouched.
func (e *Editor) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("load: %w", ErrInvalidEncoding)
	}
	e.SetContent(string(data))
	return nil
}

// SetContent replaces the whole document. History is cleared because its
// offsets refer to the old content, the cursors return to the start, and
// the new content counts as saved.
func (e *Editor) SetContent(text string) {
	e.doc.SetText(text)
	e.clearHistory()
	e.folds.Clear()
	e.foldsValid = false
	e.cursors.Reset(0)
	e.search.Refresh(e.doc)
	e.modified = false
	e.tracker.MarkSaved(e.doc.Snapshot())
	log.Debug(log.CatEditor, "content replaced", "chars", e.doc.LenChars(), "lines", e.doc.LenLines())
	e.notify()
}

// ============================================================================
// Modification state
// ============================================================================

// Modified reports whether the document changed since it was loaded or
// last marked saved.
func (e *Editor) Modified() bool {
	return e.modified
}

// IsDirty reports whether the content differs from the saved state. Unlike
// Modified it turns false again when edits are undone.
func (e *Editor) IsDirty() bool {
	return e.tracker.IsDirty(e.doc.Snapshot())
}

// MarkSaved records the current content as saved.
func (e *Editor) MarkSaved() {
	e.modified = false
	e.tracker.MarkSaved(e.doc.Snapshot())
}

// SavedDiff returns a line diff from the saved state to the current text.
func (e *Editor) SavedDiff() DiffResult {
	return e.tracker.Diff(e.doc.Snapshot())
}

// ChangedLines returns gutter markers for lines changed since the save.
func (e *Editor) ChangedLines() []LineChange {
	return e.tracker.ChangedLines(e.doc.Snapshot())
}

// Tracker returns the change tracker for checkpoint queries.
func (e *Editor) Tracker() *tracking.Tracker {
	return e.tracker
}

// ============================================================================
// Configuration
// ============================================================================

// Language returns the active language.
func (e *Editor) Language() Language {
	return e.lang
}

// SetLanguage changes the language used for comments and brackets and
// for choosing how regions fold.
func (e *Editor) SetLanguage(lang Language) {
	if lang == nil {
		lang = PlainText
	}
	e.lang = lang
	e.foldsValid = false
}

// SetClipboard changes the clipboard.
func (e *Editor) SetClipboard(cb Clipboard) {
	e.clipboard = cb
}

// OnInvalidate registers a callback fired after every committed change.
func (e *Editor) OnInvalidate(fn Invalidator) {
	if fn != nil {
		e.invalidators = append(e.invalidators, fn)
	}
}

// TabWidth returns the indent width in spaces.
func (e *Editor) TabWidth() int {
	return e.tabWidth
}

// PageSize returns the lines moved by a page motion.
func (e *Editor) PageSize() int {
	return e.pageSize
}

// SetPageSize sets the lines moved by a page motion, typically the
// viewport height.
func (e *Editor) SetPageSize(lines int) {
	if lines > 0 {
		e.pageSize = lines
	}
}

// ============================================================================
// Transactions
// ============================================================================

func (e *Editor) primary() *cursor.Cursor {
	return e.cursors.Primary()
}

// beginEdit opens a history group with the primary selection.
func (e *Editor) beginEdit() {
	e.editVersion = e.doc.Version()
	e.history.BeginEdit(e.primary().Selection())
}

// finishEdit commits the open group. Edits that changed nothing leave the
// modified flag and caches alone.
func (e *Editor) finishEdit() {
	e.history.CommitEdit(e.primary().Selection())
	if e.doc.Version() == e.editVersion {
		return
	}
	e.changed()
	e.reveal()
}

// changed marks the document modified, refreshes live search matches and
// fires the invalidators.
func (e *Editor) changed() {
	e.modified = true
	if e.search.IsActive() {
		e.search.Refresh(e.doc)
	}
	e.notify()
}

func (e *Editor) notify() {
	v := e.doc.Version()
	for _, fn := range e.invalidators {
		fn(v)
	}
}

// insertAt inserts text and records it.
func (e *Editor) insertAt(pos int, text string) {
	if text == "" {
		return
	}
	pos = max(0, min(pos, e.doc.LenChars()))
	e.doc.Insert(pos, text)
	e.history.Record(history.Insert(pos, text))
}

// removeRange deletes [start, end) and records the removed text.
func (e *Editor) removeRange(start, end int) string {
	text := e.doc.Slice(start, end)
	if text == "" {
		return ""
	}
	start = max(0, start)
	e.doc.Remove(start, start+utf8.RuneCountInString(text))
	e.history.Record(history.Delete(start, text))
	return text
}

// applyOperation replays a history operation verbatim.
func (e *Editor) applyOperation(op history.EditOperation) {
	switch op.Kind {
	case history.OpInsert:
		e.doc.Insert(op.Position, op.Text)
	case history.OpDelete:
		e.doc.Remove(op.Position, op.End())
	}
}

// singleCursor drops secondary cursors before a primary-only command.
func (e *Editor) singleCursor() *cursor.Cursor {
	if !e.cursors.IsSingle() {
		e.cursors.CollapseToPrimary()
	}
	return e.primary()
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the most recent undo group. It returns false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	ops, sel, ok := e.history.Undo()
	if !ok {
		return false
	}
	for _, op := range ops {
		e.applyOperation(op)
	}
	e.restoreSelection(sel)
	return true
}

// Redo reapplies the most recently undone group. It returns false when
// there is nothing to redo.
func (e *Editor) Redo() bool {
	ops, sel, ok := e.history.Redo()
	if !ok {
		return false
	}
	for _, op := range ops {
		e.applyOperation(op)
	}
	e.restoreSelection(sel)
	return true
}

func (e *Editor) restoreSelection(sel Selection) {
	c := e.singleCursor()
	c.ExitBlockMode()
	c.SetSelection(sel)
	c.ClampToBuffer(e.doc)
	e.changed()
	e.reveal()
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo groups.
func (e *Editor) UndoCount() int {
	return e.history.UndoCount()
}

// clearHistory drops all undo and redo state.
func (e *Editor) clearHistory() {
	log.Debug(log.CatEditor, "history cleared", "undo", e.history.UndoCount(), "redo", e.history.RedoCount())
	e.history.Clear()
}
