package engine

import "unicode/utf8"

// Find searches for query and selects the first match at or after the
// primary cursor, wrapping to the first match. It returns the number of
// matches. An empty query clears the search.
func (e *Editor) Find(query string) int {
	n := e.search.SetQuery(query, e.doc)
	if m, ok := e.search.FindNearest(e.primary().Position()); ok {
		e.selectMatch(m)
	}
	return n
}

// FindNext selects the next match, wrapping at the end.
func (e *Editor) FindNext() bool {
	m, ok := e.search.Next()
	if ok {
		e.selectMatch(m)
	}
	return ok
}

// FindPrev selects the previous match, wrapping at the start.
func (e *Editor) FindPrev() bool {
	m, ok := e.search.Prev()
	if ok {
		e.selectMatch(m)
	}
	return ok
}

func (e *Editor) selectMatch(m Match) {
	c := e.singleCursor()
	c.ExitBlockMode()
	c.SetSelection(Selection{Anchor: m.Start, Cursor: m.End})
	e.reveal()
}

// ClearSearch ends the search.
func (e *Editor) ClearSearch() {
	e.search.Clear()
}

// HasSearch reports whether a query is active.
func (e *Editor) HasSearch() bool {
	return e.search.IsActive()
}

// SearchQuery returns the active query.
func (e *Editor) SearchQuery() string {
	return e.search.Query()
}

// SearchMatches returns every match in document order.
func (e *Editor) SearchMatches() []Match {
	return e.search.Matches()
}

// SearchMatchesInRange returns the matches overlapping lines first through
// last inclusive.
func (e *Editor) SearchMatchesInRange(first, last int) []Match {
	return e.search.MatchesInRange(e.doc, first, last)
}

// CurrentSearchMatch returns the selected match.
func (e *Editor) CurrentSearchMatch() (Match, bool) {
	return e.search.Current()
}

// SearchStatus returns a status line such as "2 of 5".
func (e *Editor) SearchStatus() string {
	return e.search.Status()
}

// IsSearchCaseSensitive reports the matching mode.
func (e *Editor) IsSearchCaseSensitive() bool {
	return e.search.IsCaseSensitive()
}

// SetSearchCaseSensitive sets the matching mode and re-runs the search.
func (e *Editor) SetSearchCaseSensitive(sensitive bool) {
	e.search.SetCaseSensitive(sensitive, e.doc)
	if m, ok := e.search.FindNearest(e.primary().Position()); ok {
		e.selectMatch(m)
	}
}

// ToggleSearchCaseSensitive flips the matching mode and returns the new
// one.
func (e *Editor) ToggleSearchCaseSensitive() bool {
	e.SetSearchCaseSensitive(!e.search.IsCaseSensitive())
	return e.search.IsCaseSensitive()
}

// ReplaceCurrent replaces the selected match with replacement as one
// undoable edit and selects the next match after it. It returns false when
// no match is selected.
func (e *Editor) ReplaceCurrent(replacement string) bool {
	m, ok := e.search.Current()
	if !ok {
		return false
	}
	c := e.singleCursor()
	c.ExitBlockMode()

	e.beginEdit()
	e.removeRange(m.Start, m.End)
	e.insertAt(m.Start, replacement)
	after := m.Start + utf8.RuneCountInString(replacement)
	c.SetPosition(after, false)
	e.finishEdit()

	if next, ok := e.search.FindNearest(after); ok {
		e.selectMatch(next)
	}
	return true
}

// ReplaceAll replaces every non-overlapping match as one undoable edit,
// ends the search and returns the number of replacements.
func (e *Editor) ReplaceAll(replacement string) int {
	matches := e.search.NonOverlapping()
	if len(matches) == 0 {
		return 0
	}
	c := e.singleCursor()
	c.ExitBlockMode()

	n := utf8.RuneCountInString(replacement)
	offset := 0

	e.beginEdit()
	for _, m := range matches {
		start := m.Start + offset
		e.removeRange(start, m.End+offset)
		e.insertAt(start, replacement)
		offset += n - m.Len()
	}
	last := matches[len(matches)-1]
	c.SetPosition(last.End+offset, false)
	e.finishEdit()

	e.search.Clear()
	return len(matches)
}
