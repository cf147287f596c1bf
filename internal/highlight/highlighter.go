package highlight

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/log"
)

// DefaultCacheTTL is how long an unused version stays cached.
const DefaultCacheTTL = 5 * time.Minute

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithTheme selects a chroma style by name.
func WithTheme(name string) Option {
	return func(h *Highlighter) {
		h.theme = NewTheme(name)
	}
}

// WithCacheTTL sets the cache expiry. Zero or negative keeps the default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(h *Highlighter) {
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

// Highlighter lexes snapshots of one document. It is safe for concurrent
// use, so a renderer goroutine may call Highlight while the editing
// goroutine calls Invalidate.
type Highlighter struct {
	mu    sync.RWMutex
	lang  *Language
	theme *Theme
	ttl   time.Duration
	cache *gocache.Cache
}

// entry is one cached lexing result.
type entry struct {
	version buffer.Version
	lines   [][]Span
}

// New creates a highlighter for lang. A nil lang means plain text.
func New(lang *Language, opts ...Option) *Highlighter {
	if lang == nil {
		lang = PlainText()
	}
	h := &Highlighter{
		lang: lang,
		ttl:  DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.theme == nil {
		h.theme = NewTheme(DefaultStyle)
	}
	h.cache = gocache.New(h.ttl, 2*h.ttl)
	return h
}

// Language returns the active language.
func (h *Highlighter) Language() *Language {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lang
}

// SetLanguage switches languages and drops every cached result.
func (h *Highlighter) SetLanguage(lang *Language) {
	if lang == nil {
		lang = PlainText()
	}
	h.mu.Lock()
	h.lang = lang
	h.mu.Unlock()
	h.cache.Flush()
}

// Theme returns the active theme.
func (h *Highlighter) Theme() *Theme {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.theme
}

// SetTheme switches the chroma style and drops every cached result.
func (h *Highlighter) SetTheme(name string) {
	h.mu.Lock()
	h.theme = NewTheme(name)
	h.mu.Unlock()
	h.cache.Flush()
}

// Highlight returns the spans of every line of snap, indexed by line.
// Results are cached by document version.
func (h *Highlighter) Highlight(snap buffer.Snapshot) ([][]Span, error) {
	h.mu.RLock()
	lang, theme := h.lang, h.theme
	h.mu.RUnlock()

	key := cacheKey(lang, theme, snap.Version())
	if v, ok := h.cache.Get(key); ok {
		if e, ok := v.(entry); ok {
			return e.lines, nil
		}
		log.Error(log.CatHighlight, "wrong type in span cache", "key", key)
	}

	lines, err := lex(lang, theme, snap.Text(), snap.LenLines())
	if err != nil {
		log.Warn(log.CatHighlight, "lexing failed", "lang", lang.Name(), "error", err)
		return nil, err
	}
	h.cache.Set(key, entry{version: snap.Version(), lines: lines}, gocache.DefaultExpiration)
	log.Debug(log.CatHighlight, "lexed", "lang", lang.Name(), "version", snap.Version(), "lines", len(lines))
	return lines, nil
}

// Lines returns the spans of lines first through last inclusive, clamped
// to the document.
func (h *Highlighter) Lines(snap buffer.Snapshot, first, last int) ([][]Span, error) {
	all, err := h.Highlight(snap)
	if err != nil {
		return nil, err
	}
	first = max(first, 0)
	last = min(last, len(all)-1)
	if first > last {
		return nil, nil
	}
	return all[first : last+1], nil
}

// Invalidate drops every cached result that is not for version v. It has
// the shape of an editor invalidator.
func (h *Highlighter) Invalidate(v buffer.Version) {
	dropped := 0
	for key, item := range h.cache.Items() {
		if e, ok := item.Object.(entry); ok && e.version == v {
			continue
		}
		h.cache.Delete(key)
		dropped++
	}
	if dropped > 0 {
		log.Debug(log.CatHighlight, "invalidated", "version", v, "dropped", dropped)
	}
}

// Cached reports how many versions are cached.
func (h *Highlighter) Cached() int {
	return h.cache.ItemCount()
}

func cacheKey(lang *Language, theme *Theme, v buffer.Version) string {
	return fmt.Sprintf("%s/%s/%d", lang.Name(), theme.Name(), v)
}

// lex tokenises text and splits tokens into per-line spans. Columns are
// character offsets within the line.
func lex(lang *Language, theme *Theme, text string, lineCount int) ([][]Span, error) {
	it, err := lang.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", lang.Name(), err)
	}

	lines := make([][]Span, lineCount)
	line, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		kind := kindOf(tok.Type)
		style := theme.StyleFor(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				line++
				col = 0
			}
			n := utf8.RuneCountInString(part)
			if n == 0 || line >= lineCount {
				continue
			}
			lines[line] = appendSpan(lines[line], Span{
				StartCol: col,
				EndCol:   col + n,
				Kind:     kind,
				Style:    style,
			})
			col += n
		}
	}
	return lines, nil
}

// appendSpan merges s into the previous span when they touch and look the
// same.
func appendSpan(spans []Span, s Span) []Span {
	if k := len(spans) - 1; k >= 0 {
		prev := &spans[k]
		if prev.EndCol == s.StartCol && prev.Kind == s.Kind && prev.Style == s.Style {
			prev.EndCol = s.EndCol
			return spans
		}
	}
	return append(spans, s)
}
