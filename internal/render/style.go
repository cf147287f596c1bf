package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scribe/internal/highlight"
)

// Styles holds the base tcell styles. Selections, matches and secondary
// cursors are drawn as attribute overlays on top of them.
type Styles struct {
	Text       tcell.Style
	LineNumber tcell.Style
	EmptyLine  tcell.Style
	Status     tcell.Style
}

// StylesFromTheme derives the element styles from a chroma theme.
func StylesFromTheme(theme *highlight.Theme) Styles {
	base := tcell.StyleDefault
	if theme != nil {
		base = applyStyle(base, theme.Background())
	}
	return Styles{
		Text:       base,
		LineNumber: base.Dim(true),
		EmptyLine:  base.Foreground(tcell.ColorGray),
		Status:     base.Reverse(true),
	}
}

// applyStyle layers a highlight style over st.
func applyStyle(st tcell.Style, hs highlight.Style) tcell.Style {
	if hs.Foreground != "" {
		st = st.Foreground(tcell.GetColor(hs.Foreground))
	}
	if hs.Background != "" {
		st = st.Background(tcell.GetColor(hs.Background))
	}
	if hs.Bold {
		st = st.Bold(true)
	}
	if hs.Italic {
		st = st.Italic(true)
	}
	if hs.Underline {
		st = st.Underline(true)
	}
	return st
}
