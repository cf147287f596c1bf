package highlight

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainTextName is the name of the fallback language.
const PlainTextName = "plaintext"

var defaultBrackets = [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}}

var markupBrackets = [][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}

// lineComments maps chroma lexer names to their line comment prefix.
var lineComments = map[string]string{
	"Go":              "//",
	"C":               "//",
	"C++":             "//",
	"C#":              "//",
	"Java":            "//",
	"JavaScript":      "//",
	"TypeScript":      "//",
	"Rust":            "//",
	"Swift":           "//",
	"Kotlin":          "//",
	"Scala":           "//",
	"Dart":            "//",
	"PHP":             "//",
	"Zig":             "//",
	"Protocol Buffer": "//",
	"Python":          "#",
	"Python 2":        "#",
	"Ruby":            "#",
	"Bash":            "#",
	"Fish":            "#",
	"PowerShell":      "#",
	"Perl":            "#",
	"R":               "#",
	"YAML":            "#",
	"TOML":            "#",
	"Makefile":        "#",
	"Docker":          "#",
	"Elixir":          "#",
	"Nim":             "#",
	"SQL":             "--",
	"Lua":             "--",
	"Haskell":         "--",
	"Elm":             "--",
	"Clojure":         ";",
	"Common Lisp":     ";",
	"Scheme":          ";",
	"INI":             ";",
	"Erlang":          "%",
	"TeX":             "%",
	"VimL":            "\"",

	"MySQL":                  "--",
	"PL/pgSQL":               "--",
	"PostgreSQL SQL dialect": "--",
	"Transact-SQL":           "--",
}

// indentLanguages mark blocks by indentation rather than brackets.
var indentLanguages = map[string]bool{
	"Python":       true,
	"Python 2":     true,
	"YAML":         true,
	"Nim":          true,
	"CoffeeScript": true,
}

var markupLanguages = map[string]bool{
	"HTML": true,
	"XML":  true,
	"JSX":  true,
	"TSX":  true,
}

// Language is a chroma lexer plus the editing facts the engine asks for.
// It satisfies engine.Language.
type Language struct {
	name     string
	lexer    chroma.Lexer
	comment  string
	brackets [][2]rune
}

func newLanguage(lexer chroma.Lexer) *Language {
	name := lexer.Config().Name
	brackets := defaultBrackets
	if markupLanguages[name] {
		brackets = markupBrackets
	}
	return &Language{
		name:     name,
		lexer:    chroma.Coalesce(lexer),
		comment:  lineComments[name],
		brackets: brackets,
	}
}

// PlainText returns the fallback language. It has no comment prefix.
func PlainText() *Language {
	return &Language{
		name:     PlainTextName,
		lexer:    lexers.Fallback,
		brackets: defaultBrackets,
	}
}

// extensionLexers pins extensions that several chroma lexers claim.
var extensionLexers = map[string]string{
	".sql": "SQL",
}

func match(filename string) chroma.Lexer {
	if name, ok := extensionLexers[strings.ToLower(filepath.Ext(filename))]; ok {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	return lexers.Match(filename)
}

// Detect picks a language from a filename, falling back to plain text.
func Detect(filename string) *Language {
	if l := match(filename); l != nil {
		return newLanguage(l)
	}
	return PlainText()
}

// DetectContent picks a language from a filename, then from the content
// itself, then falls back to plain text.
func DetectContent(filename, content string) *Language {
	if l := match(filename); l != nil {
		return newLanguage(l)
	}
	if l := lexers.Analyse(content); l != nil {
		return newLanguage(l)
	}
	return PlainText()
}

// Lookup returns the language registered under name or alias, such as
// "go" or "python".
func Lookup(name string) (*Language, error) {
	if name == PlainTextName {
		return PlainText(), nil
	}
	l := lexers.Get(name)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoLanguage, name)
	}
	return newLanguage(l), nil
}

// Name returns the lexer name, such as "Go".
func (l *Language) Name() string {
	return l.name
}

// LineComment returns the line comment prefix or "".
func (l *Language) LineComment() string {
	return l.comment
}

// BracketPairs returns the open/close pairs used for matching and
// auto-closing.
func (l *Language) BracketPairs() [][2]rune {
	return l.brackets
}

// IsPlainText reports whether this is the fallback language.
func (l *Language) IsPlainText() bool {
	return l.name == PlainTextName
}

// IndentFolds reports whether blocks fold by indentation.
func (l *Language) IndentFolds() bool {
	return indentLanguages[l.name]
}
