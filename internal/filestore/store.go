package filestore

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/engine"
	"github.com/dshills/scribe/internal/log"
)

// DefaultMaxFileSize is the largest file Open accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Option configures a Store.
type Option func(*Store)

// WithMaxFileSize sets the size limit. Zero disables it.
func WithMaxFileSize(size int64) Option {
	return func(s *Store) {
		s.maxFileSize = size
	}
}

// WithEditorOptions sets options for every editor the store creates.
func WithEditorOptions(opts ...engine.Option) Option {
	return func(s *Store) {
		s.editorOpts = append(s.editorOpts, opts...)
	}
}

// WithWatcher registers every opened path with w.
func WithWatcher(w *Watcher) Option {
	return func(s *Store) {
		s.watcher = w
	}
}

// Store tracks open documents. Its bookkeeping is safe for concurrent use;
// each Document's editor still belongs to one goroutine.
type Store struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*Document

	maxFileSize int64
	editorOpts  []engine.Option
	watcher     *Watcher

	onOpen   []func(doc *Document)
	onSave   []func(doc *Document)
	onReload []func(doc *Document)
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		docs:        make(map[uuid.UUID]*Document),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates an empty untitled document.
func (s *Store) New() *Document {
	doc := newDocument("", engine.New(s.editorOpts...))
	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.mu.Unlock()
	s.notify(&s.onOpen, doc)
	return doc
}

// Open reads path into a new document, or returns the document already
// holding it.
func (s *Store) Open(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	if doc, ok := s.Get(abs); ok {
		return doc, nil
	}

	text, info, err := s.read(abs)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	ed := engine.New(s.editorOpts...)
	decoded, ending, bom := decode(text)
	if err := ed.Load(bytes.NewReader(decoded)); err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	doc := newDocument(abs, ed)
	doc.ending = ending
	doc.bom = bom
	doc.diskModTime = info.ModTime()
	doc.detectLanguage()

	s.mu.Lock()
	if existing := s.byPath(abs); existing != nil {
		s.mu.Unlock()
		return existing, nil
	}
	s.docs[doc.ID] = doc
	s.mu.Unlock()

	s.watch(abs)
	log.Info(log.CatFile, "opened", "path", abs, "id", doc.ID, "lines", ed.LenLines(), "lang", doc.lang.Name())
	s.notify(&s.onOpen, doc)
	return doc, nil
}

// read stats and reads a file, enforcing the store's limits.
func (s *Store) read(abs string) ([]byte, fs.FileInfo, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, ErrIsDirectory
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, nil, ErrFileTooLarge
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, err
	}
	if IsBinary(data) {
		return nil, nil, ErrBinaryContent
	}
	return data, info, nil
}

// Save writes doc to its path and marks it saved.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.path == "" {
		return &PathError{Op: "save", Path: doc.Name(), Err: ErrNoPath}
	}
	if err := s.write(doc, doc.path); err != nil {
		return &PathError{Op: "save", Path: doc.path, Err: err}
	}
	log.Info(log.CatFile, "saved", "path", doc.path, "id", doc.ID)
	s.notify(&s.onSave, doc)
	return nil
}

// SaveAs writes doc to path and moves the document there. The language is
// detected again from the new name.
func (s *Store) SaveAs(ctx context.Context, doc *Document, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &PathError{Op: "saveas", Path: path, Err: err}
	}
	if other, ok := s.Get(abs); ok && other != doc {
		return &PathError{Op: "saveas", Path: path, Err: ErrAlreadyOpen}
	}
	if err := s.write(doc, abs); err != nil {
		return &PathError{Op: "saveas", Path: path, Err: err}
	}

	old := doc.path
	doc.path = abs
	doc.detectLanguage()
	if old != abs {
		s.unwatch(old)
		s.watch(abs)
	}
	log.Info(log.CatFile, "saved as", "from", old, "path", abs, "id", doc.ID)
	s.notify(&s.onSave, doc)
	return nil
}

func (s *Store) write(doc *Document, path string) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, doc.Bytes(), perm); err != nil {
		return err
	}
	doc.editor.MarkSaved()
	doc.diskModTime = time.Now()
	if info, err := os.Stat(path); err == nil {
		doc.diskModTime = info.ModTime()
	}
	return nil
}

// Reload replaces the content with the file on disk. Unsaved edits are an
// error unless force is set. Undo history is cleared.
func (s *Store) Reload(ctx context.Context, doc *Document, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.path == "" {
		return &PathError{Op: "reload", Path: doc.Name(), Err: ErrNoPath}
	}
	if !force && doc.Modified() {
		return &PathError{Op: "reload", Path: doc.path, Err: ErrDirty}
	}
	text, info, err := s.read(doc.path)
	if err != nil {
		return &PathError{Op: "reload", Path: doc.path, Err: err}
	}
	decoded, ending, bom := decode(text)
	if err := doc.editor.Load(bytes.NewReader(decoded)); err != nil {
		return &PathError{Op: "reload", Path: doc.path, Err: err}
	}
	doc.ending = ending
	doc.bom = bom
	doc.diskModTime = info.ModTime()
	log.Info(log.CatFile, "reloaded", "path", doc.path, "id", doc.ID)
	s.notify(&s.onReload, doc)
	return nil
}

// Close forgets doc. Unsaved edits are an error unless force is set.
func (s *Store) Close(doc *Document, force bool) error {
	if !force && doc.Modified() {
		return &PathError{Op: "close", Path: doc.Name(), Err: ErrDirty}
	}
	s.mu.Lock()
	_, ok := s.docs[doc.ID]
	delete(s.docs, doc.ID)
	s.mu.Unlock()
	if !ok {
		return &PathError{Op: "close", Path: doc.Name(), Err: ErrNotOpen}
	}
	s.unwatch(doc.path)
	log.Debug(log.CatFile, "closed", "path", doc.path, "id", doc.ID)
	return nil
}

// Get returns the document holding path.
func (s *Store) Get(path string) (*Document, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := s.byPath(abs)
	return doc, doc != nil
}

// Lookup returns the document with the given ID.
func (s *Store) Lookup(id uuid.UUID) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

func (s *Store) byPath(abs string) *Document {
	for _, doc := range s.docs {
		if doc.path == abs {
			return doc
		}
	}
	return nil
}

// Documents returns every open document ordered by path, untitled last.
func (s *Store) Documents() []*Document {
	s.mu.RLock()
	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if (a.path == "") != (b.path == "") {
			return b.path == ""
		}
		if a.path != b.path {
			return a.path < b.path
		}
		return a.openedAt.Before(b.openedAt)
	})
	return docs
}

// Dirty returns the documents with unsaved edits.
func (s *Store) Dirty() []*Document {
	var dirty []*Document
	for _, doc := range s.Documents() {
		if doc.Modified() {
			dirty = append(dirty, doc)
		}
	}
	return dirty
}

// Count returns the number of open documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Change describes a file altered by someone else.
type Change struct {
	Doc     *Document
	Removed bool
}

// HasExternalChanges reports whether doc's file was modified or removed
// since the store last read or wrote it.
func (s *Store) HasExternalChanges(doc *Document) (Change, bool) {
	if doc.path == "" {
		return Change{}, false
	}
	info, err := os.Stat(doc.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Change{Doc: doc, Removed: true}, true
	}
	if err != nil || info.ModTime().Equal(doc.diskModTime) {
		return Change{}, false
	}
	return Change{Doc: doc}, true
}

// ExternalChange maps a watcher event to the affected document. Events
// caused by the store's own writes are ignored.
func (s *Store) ExternalChange(ev Event) (Change, bool) {
	doc, ok := s.Get(ev.Path)
	if !ok {
		return Change{}, false
	}
	c, ok := s.HasExternalChanges(doc)
	if ok {
		log.Info(log.CatWatcher, "external change", "path", doc.path, "op", ev.Op, "removed", c.Removed)
	}
	return c, ok
}

func (s *Store) watch(path string) {
	if s.watcher == nil || path == "" {
		return
	}
	if err := s.watcher.Add(path); err != nil && !errors.Is(err, ErrAlreadyWatching) {
		log.Warn(log.CatWatcher, "watch failed", "path", path, "error", err)
	}
}

func (s *Store) unwatch(path string) {
	if s.watcher == nil || path == "" {
		return
	}
	_ = s.watcher.Remove(path)
}

// OnOpen registers a handler called after a document is created or
// opened.
func (s *Store) OnOpen(handler func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOpen = append(s.onOpen, handler)
}

// OnSave registers a handler called after a document is written.
func (s *Store) OnSave(handler func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSave = append(s.onSave, handler)
}

// OnReload registers a handler called after a document is reloaded.
func (s *Store) OnReload(handler func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, handler)
}

// notify calls handlers outside the lock so they may use the store.
func (s *Store) notify(handlers *[]func(doc *Document), doc *Document) {
	s.mu.RLock()
	hs := make([]func(doc *Document), len(*handlers))
	copy(hs, *handlers)
	s.mu.RUnlock()
	for _, h := range hs {
		h(doc)
	}
}
