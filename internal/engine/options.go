package engine

import (
	"time"

	"github.com/dshills/scribe/internal/engine/history"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultPageSize       = 20
	DefaultMaxUndoEntries = history.DefaultMaxSize
	DefaultCoalesceWindow = history.DefaultCoalesceWindow
	DefaultWrapWidth      = 80
	MinWrapWidth          = 10
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial content of the editor.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.initContent = content
	}
}

// WithTabWidth sets the number of spaces in one indent level.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithPageSize sets the number of lines moved by page up and page down.
func WithPageSize(lines int) Option {
	return func(e *Editor) {
		if lines > 0 {
			e.pageSize = lines
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo groups.
func WithMaxUndoEntries(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.maxUndo = n
		}
	}
}

// WithCoalesceWindow sets how close together typed characters must be to
// share an undo step. Zero disables coalescing.
func WithCoalesceWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.coalesceWindow = d
		}
	}
}

// WithClock replaces time.Now for the undo history.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.clock = now
	}
}

// WithAutoIndent enables copying indentation on newline.
func WithAutoIndent(enabled bool) Option {
	return func(e *Editor) {
		e.autoIndent = enabled
	}
}

// WithAutoBrackets enables bracket auto-closing in TypeChar.
func WithAutoBrackets(enabled bool) Option {
	return func(e *Editor) {
		e.autoBrackets = enabled
	}
}

// WithLanguage sets the language used for comments and brackets.
func WithLanguage(lang Language) Option {
	return func(e *Editor) {
		if lang != nil {
			e.lang = lang
		}
	}
}

// WithClipboard sets the clipboard used by Copy, Cut and Paste.
func WithClipboard(cb Clipboard) Option {
	return func(e *Editor) {
		e.clipboard = cb
	}
}

// WithInvalidator registers a callback fired after every committed change.
func WithInvalidator(fn Invalidator) Option {
	return func(e *Editor) {
		if fn != nil {
			e.invalidators = append(e.invalidators, fn)
		}
	}
}

// WithCaseSensitiveSearch sets the initial search matching mode.
func WithCaseSensitiveSearch(enabled bool) Option {
	return func(e *Editor) {
		e.caseSensitive = enabled
	}
}

// WithFolding enables fold detection. It is on by default.
func WithFolding(enabled bool) Option {
	return func(e *Editor) {
		e.folding = enabled
	}
}

// WithWordWrap wraps lines longer than cols columns. Zero or less turns
// wrapping off.
func WithWordWrap(cols int) Option {
	return func(e *Editor) {
		e.wordWrap = cols > 0
		if cols > 0 {
			e.wrapWidth = max(cols, MinWrapWidth)
		}
	}
}
