package history

import "time"

// Option configures a History.
type Option func(*History)

// WithMaxSize bounds the undo stack. Values below 1 keep the default.
func WithMaxSize(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxSize = n
		}
	}
}

// WithCoalesceWindow sets the maximum gap between merged edits.
func WithCoalesceWindow(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.window = d
		}
	}
}

// WithCoalescing enables or disables merging of typing runs.
func WithCoalescing(enabled bool) Option {
	return func(h *History) {
		h.coalescing = enabled
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}
