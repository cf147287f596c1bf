package fold

// Manager owns the fold regions of one document and their folded state.
// It is not safe for concurrent use; hand out Index values instead.
type Manager struct {
	regions []Region
	index   Index
	enabled bool
}

// NewManager returns an enabled Manager with no regions.
func NewManager() *Manager {
	return &Manager{enabled: true}
}

// Enabled reports whether folding is on.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// SetEnabled turns folding on or off. Turning it off drops every region.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.Clear()
	}
}

// Clear drops every region.
func (m *Manager) Clear() {
	m.regions = nil
	m.rebuild()
}

// Index returns an immutable view of the current regions.
func (m *Manager) Index() Index {
	return m.index
}

// Regions returns a copy of the regions, sorted by start line.
func (m *Manager) Regions() []Region {
	return m.index.Regions()
}

// Detect replaces the regions with those found in doc. A new region stays
// folded if a folded region started on the same line before. Nothing is
// detected while folding is off.
func (m *Manager) Detect(doc Lines, s Strategy) {
	if !m.enabled {
		return
	}
	var found []Region
	if s == Indent {
		found = DetectIndent(doc)
	} else {
		found = DetectBrackets(doc)
	}
	for i := range found {
		found[i].Folded = m.index.IsFolded(found[i].Start)
	}
	m.regions = found
	m.rebuild()
}

func (m *Manager) rebuild() {
	m.index = NewIndex(m.regions)
}

func (m *Manager) set(line int, folded func(bool) bool) bool {
	i, ok := m.index.find(line)
	if !ok {
		return false
	}
	m.regions[i].Folded = folded(m.regions[i].Folded)
	m.rebuild()
	return true
}

// Toggle flips the region starting on line. It returns false if no region
// starts there.
func (m *Manager) Toggle(line int) bool {
	return m.set(line, func(f bool) bool { return !f })
}

// Fold folds the region starting on line.
func (m *Manager) Fold(line int) bool {
	return m.set(line, func(bool) bool { return true })
}

// Unfold unfolds the region starting on line.
func (m *Manager) Unfold(line int) bool {
	return m.set(line, func(bool) bool { return false })
}

// FoldAll folds every region.
func (m *Manager) FoldAll() {
	for i := range m.regions {
		m.regions[i].Folded = true
	}
	m.rebuild()
}

// UnfoldAll unfolds every region.
func (m *Manager) UnfoldAll() {
	for i := range m.regions {
		m.regions[i].Folded = false
	}
	m.rebuild()
}

// Reveal unfolds every region hiding line and reports whether any did.
func (m *Manager) Reveal(line int) bool {
	if !m.index.IsHidden(line) {
		return false
	}
	for i, r := range m.regions {
		if r.Folded && line > r.Start && line <= r.End {
			m.regions[i].Folded = false
		}
	}
	m.rebuild()
	return true
}

// IsHidden reports whether line is inside a folded region.
func (m *Manager) IsHidden(line int) bool {
	return m.index.IsHidden(line)
}

// IsFoldStart reports whether a region starts on line.
func (m *Manager) IsFoldStart(line int) bool {
	return m.index.IsFoldStart(line)
}

// IsFolded reports whether the region starting on line is folded.
func (m *Manager) IsFolded(line int) bool {
	return m.index.IsFolded(line)
}

// AnyFolded reports whether some line is hidden.
func (m *Manager) AnyFolded() bool {
	return m.index.AnyFolded()
}
