// Package clipboard provides the editor's clipboard: the system clipboard
// when one is reachable, an in-memory register otherwise.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/scribe/internal/log"
)

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadAll returns the stored text.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteAll replaces the stored text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// System uses the operating system clipboard and falls back to memory when
// no clipboard utility is available or a call fails. Writes always land in
// the fallback too, so a later failed read still returns the last copy.
type System struct {
	read        func() (string, error)
	write       func(string) error
	unsupported bool

	fallback *Memory

	mu     sync.Mutex
	warned bool
}

// New returns a clipboard backed by the system clipboard.
func New() *System {
	return newSystem(clipboard.ReadAll, clipboard.WriteAll, clipboard.Unsupported)
}

func newSystem(read func() (string, error), write func(string) error, unsupported bool) *System {
	if unsupported {
		log.Info(log.CatClipboard, "system clipboard unavailable, using memory")
	}
	return &System{
		read:        read,
		write:       write,
		unsupported: unsupported,
		fallback:    NewMemory(),
	}
}

// IsSystem reports whether the system clipboard is in use.
func (s *System) IsSystem() bool {
	return !s.unsupported
}

// ReadAll returns the clipboard text.
func (s *System) ReadAll() (string, error) {
	if s.unsupported {
		return s.fallback.ReadAll()
	}
	text, err := s.read()
	if err != nil {
		s.warnOnce("read", err)
		return s.fallback.ReadAll()
	}
	return text, nil
}

// WriteAll stores text on the clipboard.
func (s *System) WriteAll(text string) error {
	_ = s.fallback.WriteAll(text)
	if s.unsupported {
		return nil
	}
	if err := s.write(text); err != nil {
		s.warnOnce("write", err)
	}
	return nil
}

func (s *System) warnOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned {
		return
	}
	s.warned = true
	log.Warn(log.CatClipboard, "system clipboard failed, using memory", "op", op, "error", err)
}
