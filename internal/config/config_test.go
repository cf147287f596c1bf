package config

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func newTestLoader(files memFS, env ...string) *Loader {
	return NewLoader(WithFileSystem(files), WithEnviron(append([]string{}, env...)))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.Equal(t, 500*time.Millisecond, cfg.Editor.CoalesceWindow.Duration)
	assert.True(t, cfg.Editor.AutoIndent)
}

func TestLoadFile(t *testing.T) {
	files := memFS{"/scribe.toml": `
[editor]
tab_width = 8
coalesce_window = "250ms"
auto_brackets = true
word_wrap = true
wrap_width = 100
folding = false

[search]
case_sensitive = true

[log]
level = "debug"
`}

	cfg, err := newTestLoader(files).Load("/scribe.toml")
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, 250*time.Millisecond, cfg.Editor.CoalesceWindow.Duration)
	assert.True(t, cfg.Editor.AutoBrackets)
	assert.True(t, cfg.Editor.WordWrap)
	assert.Equal(t, 100, cfg.Editor.WrapWidth)
	assert.False(t, cfg.Editor.Folding)
	assert.True(t, cfg.Search.CaseSensitive)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.Editor.PageSize)
	assert.True(t, cfg.Editor.AutoIndent)
	assert.Equal(t, "monokai", cfg.Highlight.Style)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := newTestLoader(memFS{}).Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newTestLoader(memFS{}).Load("/nope.toml")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"unknown key", "[editor]\ntab_widht = 3\n", ErrUnknownKey},
		{"unknown section", "[ui]\ntheme = \"dark\"\n", ErrUnknownKey},
		{"out of range", "[editor]\ntab_width = 0\n", ErrInvalidValue},
		{"negative window", "[editor]\ncoalesce_window = \"-1s\"\n", ErrInvalidValue},
		{"narrow wrap", "[editor]\nwrap_width = 4\n", ErrInvalidValue},
		{"bad level", "[log]\nlevel = \"loud\"\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(memFS{"/c.toml": tt.content}).Load("/c.toml")
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadParseErrorPosition(t *testing.T) {
	files := memFS{"/c.toml": "[editor]\ntab_width = \"wide\"\n"}
	_, err := newTestLoader(files).Load("/c.toml")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/c.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.NotEmpty(t, pe.Message)
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := newTestLoader(memFS{"/c.toml": "[editor\n"}).Load("/c.toml")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "/c.toml")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	files := memFS{"/c.toml": "[editor]\ntab_width = 8\n"}
	l := newTestLoader(files,
		"SCRIBE_EDITOR_TAB_WIDTH=2",
		"SCRIBE_EDITOR_COALESCE_WINDOW=1s",
		"SCRIBE_LOG=/tmp/scribe.log",
		"SCRIBE_LOG_LEVEL=warn",
		"SCRIBE_HIGHLIGHT_ENABLED=off",
		"SCRIBE_EDITOR_WORD_WRAP=true",
		"HOME=/root",
	)

	cfg, err := l.Load("/c.toml")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, time.Second, cfg.Editor.CoalesceWindow.Duration)
	assert.Equal(t, "/tmp/scribe.log", cfg.Log.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Highlight.Enabled)
	assert.True(t, cfg.Editor.WordWrap)
}

func TestEnvironmentErrors(t *testing.T) {
	_, err := newTestLoader(memFS{}, "SCRIBE_EDITOR_BOGUS=1").Load("")
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = newTestLoader(memFS{}, "SCRIBE_EDITOR_AUTO_INDENT=maybe").Load("")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "environment", pe.Path)
	assert.Zero(t, pe.Line)
}

func TestEnvironmentDisabled(t *testing.T) {
	l := NewLoader(WithFileSystem(memFS{}), WithEnvPrefix(""), WithEnviron([]string{"SCRIBE_EDITOR_TAB_WIDTH=2"}))
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Editor.TabWidth)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)

	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
