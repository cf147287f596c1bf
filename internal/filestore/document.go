// Package filestore connects editors to files on disk.
//
// A Store opens files into Documents, each owning an engine.Editor, and
// writes them back. Text is held with "\n" line endings and without a
// byte order mark; both are restored on save. A Watcher reports external
// changes so callers can offer a reload.
package filestore

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/highlight"
)

// Document is an open file. Its methods must be called from the goroutine
// that owns the editor.
type Document struct {
	// ID identifies the document for the life of the process, across
	// SaveAs renames.
	ID uuid.UUID

	path   string
	editor *engine.Editor
	lang   *highlight.Language

	ending LineEnding
	bom    bool

	diskModTime time.Time
	openedAt    time.Time
}

func newDocument(path string, ed *engine.Editor) *Document {
	return &Document{
		ID:       uuid.New(),
		path:     path,
		editor:   ed,
		lang:     highlight.PlainText(),
		ending:   LineEndingLF,
		openedAt: time.Now(),
	}
}

// Path returns the absolute path, or "" for a document never saved.
func (d *Document) Path() string {
	return d.path
}

// Name returns the file's base name, or "untitled".
func (d *Document) Name() string {
	if d.path == "" {
		return "untitled"
	}
	return filepath.Base(d.path)
}

// Editor returns the document's editor.
func (d *Document) Editor() *engine.Editor {
	return d.editor
}

// Language returns the detected language.
func (d *Document) Language() *highlight.Language {
	return d.lang
}

// SetLanguage overrides the detected language.
func (d *Document) SetLanguage(lang *highlight.Language) {
	d.lang = lang
	d.editor.SetLanguage(lang)
}

// LineEnding returns the newline style used on save.
func (d *Document) LineEnding() LineEnding {
	return d.ending
}

// SetLineEnding changes the newline style used on save.
func (d *Document) SetLineEnding(le LineEnding) {
	d.ending = le
}

// HasBOM reports whether the file is saved with a UTF-8 byte order mark.
func (d *Document) HasBOM() bool {
	return d.bom
}

// Modified reports unsaved edits.
func (d *Document) Modified() bool {
	return d.editor.Modified()
}

// DiskModTime returns the file's modification time when it was last read
// or written.
func (d *Document) DiskModTime() time.Time {
	return d.diskModTime
}

// OpenedAt returns when the document was created.
func (d *Document) OpenedAt() time.Time {
	return d.openedAt
}

// Bytes returns the content as it would be written to disk.
func (d *Document) Bytes() []byte {
	return encode(d.editor.Text(), d.ending, d.bom)
}

// detectLanguage picks a language from the path and content and hands it
// to the editor.
func (d *Document) detectLanguage() {
	d.lang = highlight.DetectContent(d.path, d.editor.Text())
	d.editor.SetLanguage(d.lang)
}
