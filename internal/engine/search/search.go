// Package search finds literal matches of a query in document text.
//
// Matches are reported as character offsets and may overlap. Searches are
// case-insensitive unless enabled otherwise; insensitive matching uses
// Unicode simple case folding one character at a time so that offsets in
// the folded text line up with the original.
package search

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Text is the document view a search needs.
type Text interface {
	String() string
	LenChars() int
	LenLines() int
	LineStart(line int) int
}

// Match is a half-open character range [Start, End).
type Match struct {
	Start int
	End   int
}

// Len returns the length of the match in characters.
func (m Match) Len() int {
	return m.End - m.Start
}

// Search holds the query, its matches and the current match.
type Search struct {
	query         string
	caseSensitive bool
	matches       []Match
	current       int // -1 when no match is current

	fold cases.Caser
}

// New creates an empty, case-insensitive search.
func New() *Search {
	return &Search{
		current: -1,
		fold:    cases.Fold(),
	}
}

// Query returns the current query.
func (s *Search) Query() string {
	return s.query
}

// SetQuery replaces the query and searches text. It returns the number of
// matches found.
func (s *Search) SetQuery(query string, text Text) int {
	s.query = query
	return s.findAll(text)
}

// IsActive returns true if the query is not empty.
func (s *Search) IsActive() bool {
	return s.query != ""
}

// IsCaseSensitive reports the case mode.
func (s *Search) IsCaseSensitive() bool {
	return s.caseSensitive
}

// SetCaseSensitive changes the case mode and re-searches when it changed.
func (s *Search) SetCaseSensitive(sensitive bool, text Text) {
	if s.caseSensitive == sensitive {
		return
	}
	s.caseSensitive = sensitive
	s.findAll(text)
}

// ToggleCaseSensitive flips the case mode, re-searches, and returns the new
// mode.
func (s *Search) ToggleCaseSensitive(text Text) bool {
	s.caseSensitive = !s.caseSensitive
	s.findAll(text)
	return s.caseSensitive
}

// Matches returns all matches in document order.
func (s *Search) Matches() []Match {
	return s.matches
}

// Count returns the number of matches.
func (s *Search) Count() int {
	return len(s.matches)
}

// CurrentIndex returns the zero-based index of the current match.
func (s *Search) CurrentIndex() (int, bool) {
	return s.current, s.current >= 0
}

// Current returns the current match.
func (s *Search) Current() (Match, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// Clear drops the query and all matches.
func (s *Search) Clear() {
	s.query = ""
	s.matches = nil
	s.current = -1
}

// Next advances to the following match, wrapping past the last one.
func (s *Search) Next() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	if s.current < 0 {
		s.current = 0
	} else {
		s.current = (s.current + 1) % len(s.matches)
	}
	return s.matches[s.current], true
}

// Prev moves to the preceding match, wrapping before the first one.
func (s *Search) Prev() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	if s.current > 0 {
		s.current--
	} else {
		s.current = len(s.matches) - 1
	}
	return s.matches[s.current], true
}

// FindNearest makes current the first match starting at or after pos, or
// the first match overall when none does.
func (s *Search) FindNearest(pos int) (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	s.current = 0
	for i, m := range s.matches {
		if m.Start >= pos {
			s.current = i
			break
		}
	}
	return s.matches[s.current], true
}

// Refresh re-runs the query after text changed and keeps the current match
// near where it was.
func (s *Search) Refresh(text Text) {
	old, ok := s.Current()
	s.findAll(text)
	if ok {
		s.FindNearest(old.Start)
	}
}

// MatchesInRange returns matches overlapping lines startLine through
// endLine inclusive.
func (s *Search) MatchesInRange(text Text, startLine, endLine int) []Match {
	if len(s.matches) == 0 {
		return nil
	}

	lo := text.LineStart(startLine)
	hi := text.LenChars()
	if endLine+1 < text.LenLines() {
		hi = text.LineStart(endLine + 1)
	}

	var out []Match
	for _, m := range s.matches {
		if m.End > lo && m.Start < hi {
			out = append(out, m)
		}
	}
	return out
}

// NonOverlapping returns matches with every match that overlaps an earlier
// kept one removed.
func (s *Search) NonOverlapping() []Match {
	var out []Match
	end := -1
	for _, m := range s.matches {
		if m.Start >= end {
			out = append(out, m)
			end = m.End
		}
	}
	return out
}

// Status describes the search for a status line: empty when inactive,
// "No results", "i of n", or "n results" when no match is current.
func (s *Search) Status() string {
	if !s.IsActive() {
		return ""
	}
	n := len(s.matches)
	if n == 0 {
		return "No results"
	}
	if s.current >= 0 {
		return fmt.Sprintf("%d of %d", s.current+1, n)
	}
	return fmt.Sprintf("%d results", n)
}

func (s *Search) findAll(text Text) int {
	s.matches = nil
	s.current = -1
	if s.query == "" {
		return 0
	}

	hay := s.normalize(text.String())
	needle := s.normalize(s.query)
	if len(needle) == 0 || len(needle) > len(hay) {
		return 0
	}

	for i := 0; i+len(needle) <= len(hay); i++ {
		if hasPrefix(hay[i:], needle) {
			s.matches = append(s.matches, Match{Start: i, End: i + len(needle)})
		}
	}
	if len(s.matches) > 0 {
		s.current = 0
	}
	return len(s.matches)
}

// normalize returns the runes of str, folded one by one when the search is
// case-insensitive. A rune whose folding expands keeps its original form.
func (s *Search) normalize(str string) []rune {
	out := make([]rune, 0, utf8.RuneCountInString(str))
	for _, r := range str {
		if !s.caseSensitive {
			r = s.foldRune(r)
		}
		out = append(out, r)
	}
	return out
}

func (s *Search) foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}
	folded := s.fold.String(string(r))
	f, size := utf8.DecodeRuneInString(folded)
	if size != len(folded) {
		return r
	}
	return f
}

func hasPrefix(s, prefix []rune) bool {
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
