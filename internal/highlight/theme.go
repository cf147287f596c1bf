package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Style is a renderer-neutral text style. Colors are "#rrggbb" strings,
// empty when the theme leaves them unset.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Theme resolves token styles from a chroma style.
type Theme struct {
	name  string
	style *chroma.Style
}

// NewTheme returns the named chroma style. Unknown names fall back to
// chroma's default style; the fallback's name is reported by Name.
func NewTheme(name string) *Theme {
	if name == "" {
		name = DefaultStyle
	}
	s := styles.Get(name)
	if s == nil {
		s = styles.Fallback
	}
	return &Theme{name: s.Name, style: s}
}

// Name returns the resolved style name.
func (t *Theme) Name() string {
	return t.name
}

// Background returns the theme's base style.
func (t *Theme) Background() Style {
	return convertEntry(t.style.Get(chroma.Background))
}

// StyleFor returns the style of a chroma token type.
func (t *Theme) StyleFor(tt chroma.TokenType) Style {
	return convertEntry(t.style.Get(tt))
}

func convertEntry(e chroma.StyleEntry) Style {
	var s Style
	if e.Colour.IsSet() {
		s.Foreground = e.Colour.String()
	}
	if e.Background.IsSet() {
		s.Background = e.Background.String()
	}
	s.Bold = e.Bold == chroma.Yes
	s.Italic = e.Italic == chroma.Yes
	s.Underline = e.Underline == chroma.Yes
	return s
}

// Themes lists the available style names.
func Themes() []string {
	return styles.Names()
}
