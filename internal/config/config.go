// Package config loads scribe's settings.
//
// Settings come from three layers, each overriding the one before:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, by default ~/.config/scribe/config.toml
//  3. SCRIBE_* environment variables
//
// A file looks like:
//
//	[editor]
//	tab_width = 4
//	coalesce_window = "500ms"
//	word_wrap = true
//
//	[highlight]
//	style = "monokai"
//
//	[log]
//	path = "/tmp/scribe.log"
//	level = "debug"
//
// Unknown keys are errors, so typos surface instead of being ignored.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/scribe/internal/config/loader"
	"github.com/dshills/scribe/internal/log"
)

// Config holds every setting.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Search    SearchConfig    `toml:"search"`
	Highlight HighlightConfig `toml:"highlight"`
	Log       LogConfig       `toml:"log"`
}

// EditorConfig configures editing behavior.
type EditorConfig struct {
	TabWidth       int      `toml:"tab_width"`
	PageSize       int      `toml:"page_size"`
	MaxUndo        int      `toml:"max_undo"`
	CoalesceWindow Duration `toml:"coalesce_window"`
	AutoIndent     bool     `toml:"auto_indent"`
	AutoBrackets   bool     `toml:"auto_brackets"`
	Folding        bool     `toml:"folding"`
	WordWrap       bool     `toml:"word_wrap"`
	WrapWidth      int      `toml:"wrap_width"`
}

// SearchConfig configures search.
type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive"`
}

// HighlightConfig configures syntax highlighting.
type HighlightConfig struct {
	Enabled  bool     `toml:"enabled"`
	Style    string   `toml:"style"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// LogConfig configures the debug log. An empty path disables logging.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:       4,
			PageSize:       20,
			MaxUndo:        1000,
			CoalesceWindow: Duration{500 * time.Millisecond},
			AutoIndent:     true,
			AutoBrackets:   false,
			Folding:        true,
			WordWrap:       false,
			WrapWidth:      80,
		},
		Highlight: HighlightConfig{
			Enabled:  true,
			Style:    "monokai",
			CacheTTL: Duration{5 * time.Minute},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting outside its allowed range.
func (c *Config) Validate() error {
	switch {
	case c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16:
		return invalid("editor.tab_width", c.Editor.TabWidth, "must be between 1 and 16")
	case c.Editor.PageSize < 1:
		return invalid("editor.page_size", c.Editor.PageSize, "must be positive")
	case c.Editor.MaxUndo < 1:
		return invalid("editor.max_undo", c.Editor.MaxUndo, "must be positive")
	case c.Editor.CoalesceWindow.Duration < 0:
		return invalid("editor.coalesce_window", c.Editor.CoalesceWindow, "must not be negative")
	case c.Editor.WrapWidth < 10:
		return invalid("editor.wrap_width", c.Editor.WrapWidth, "must be at least 10")
	case c.Highlight.Style == "":
		return invalid("highlight.style", c.Highlight.Style, "must not be empty")
	case c.Highlight.CacheTTL.Duration < 0:
		return invalid("highlight.cache_ttl", c.Highlight.CacheTTL, "must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, err.Error())
	}
	return nil
}

func invalid(key string, value any, why string) error {
	return fmt.Errorf("%w: %s = %v: %s", ErrInvalidValue, key, value, why)
}

// DefaultPath returns the user's config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scribe", "config.toml")
}

// Loader builds a Config from defaults, a file and the environment.
type Loader struct {
	fs        loader.FileSystem
	envPrefix string
	environ   []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads config files from fsys.
func WithFileSystem(fsys loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithEnviron reads variables from env instead of the process
// environment.
func WithEnviron(env []string) LoaderOption {
	return func(l *Loader) {
		l.environ = env
	}
}

// NewLoader creates a Loader on the OS file system and environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a validated Config. An empty path skips the file layer. A
// path that does not exist returns ErrFileNotFound.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		found, err := loader.NewTOMLLoaderWithFS(l.fs).DecodeFile(path, cfg)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		log.Debug(log.CatConfig, "loaded config file", "path", path)
	}

	if l.envPrefix != "" {
		env := loader.NewEnvLoader(l.envPrefix)
		if l.environ != nil {
			env = loader.NewEnvLoaderFrom(l.envPrefix, l.environ)
		}
		vars, err := env.Load()
		if err != nil {
			return nil, err
		}
		if err := loader.DecodeMap("environment", vars, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds a Config with the default Loader. If path is empty the
// default path is tried, and its absence is not an error.
func Load(path string) (*Config, error) {
	l := NewLoader()
	if path != "" {
		return l.Load(path)
	}

	cfg, err := l.Load(DefaultPath())
	if errors.Is(err, ErrFileNotFound) {
		return l.Load("")
	}
	return cfg, err
}
