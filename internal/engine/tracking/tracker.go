package tracking

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dshills/scribe/internal/engine/buffer"
)

// Errors returned by snapshot operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ChangeKind classifies a run of changed lines for gutter display.
type ChangeKind uint8

const (
	// LinesAdded marks lines that are new since the checkpoint.
	LinesAdded ChangeKind = iota + 1

	// LinesModified marks lines that replaced checkpoint lines.
	LinesModified

	// LinesRemoved marks a point where checkpoint lines were deleted.
	LinesRemoved
)

// String returns the kind name.
func (k ChangeKind) String() string {
	switch k {
	case LinesAdded:
		return "added"
	case LinesModified:
		return "modified"
	case LinesRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// LineChange is a run of changed lines in current-text coordinates. For
// LinesRemoved, Line is the line the deletion sits above and Count is the
// number of lines that were removed.
type LineChange struct {
	Kind  ChangeKind
	Line  int
	Count int
}

// Checkpoint is a named snapshot of a document.
type Checkpoint struct {
	Name      string
	Timestamp time.Time
	Snapshot  buffer.Snapshot
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithContextLines sets the context kept around diff hunks.
func WithContextLines(n int) TrackerOption {
	return func(t *Tracker) {
		if n >= 0 {
			t.opts.ContextLines = n
		}
	}
}

// Tracker holds the saved state of a document and named checkpoints, and
// compares them with the current content.
type Tracker struct {
	mu sync.RWMutex

	saved    buffer.Snapshot
	hasSaved bool

	checkpoints map[string]Checkpoint
	opts        DiffOptions
}

// NewTracker creates a tracker with no saved state.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		checkpoints: make(map[string]Checkpoint),
		opts:        DefaultDiffOptions(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MarkSaved records snap as the state on disk.
func (t *Tracker) MarkSaved(snap buffer.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saved = snap
	t.hasSaved = true
}

// Saved returns the saved snapshot, if any.
func (t *Tracker) Saved() (buffer.Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.saved, t.hasSaved
}

// IsDirty reports whether cur differs in content from the saved state. A
// document that was never saved is dirty unless it is empty. Editing text
// and then restoring it makes the document clean again.
func (t *Tracker) IsDirty(cur buffer.Snapshot) bool {
	t.mu.RLock()
	saved, ok := t.saved, t.hasSaved
	t.mu.RUnlock()

	if !ok {
		return cur.LenChars() > 0
	}
	if saved.Version() == cur.Version() {
		return false
	}
	if saved.LenChars() != cur.LenChars() {
		return true
	}
	return saved.Text() != cur.Text()
}

// Diff compares the saved state with cur.
func (t *Tracker) Diff(cur buffer.Snapshot) DiffResult {
	t.mu.RLock()
	saved, opts := t.saved, t.opts
	t.mu.RUnlock()
	return ComputeLineDiff(saved.Text(), cur.Text(), opts)
}

// ChangedLines returns the lines of cur that differ from the saved state.
func (t *Tracker) ChangedLines(cur buffer.Snapshot) []LineChange {
	t.mu.RLock()
	saved := t.saved
	t.mu.RUnlock()
	return changedLines(diffLines(saved.Text(), cur.Text()))
}

// CreateCheckpoint stores snap under name, replacing any checkpoint with
// the same name.
func (t *Tracker) CreateCheckpoint(name string, snap buffer.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkpoints[name] = Checkpoint{
		Name:      name,
		Timestamp: time.Now(),
		Snapshot:  snap,
	}
}

// Checkpoint returns the named checkpoint.
func (t *Tracker) Checkpoint(name string) (Checkpoint, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cp, ok := t.checkpoints[name]
	if !ok {
		return Checkpoint{}, ErrSnapshotNotFound
	}
	return cp, nil
}

// Checkpoints returns all checkpoints, oldest first.
func (t *Tracker) Checkpoints() []Checkpoint {
	t.mu.RLock()
	out := make([]Checkpoint, 0, len(t.checkpoints))
	for _, cp := range t.checkpoints {
		out = append(out, cp)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Name < out[j].Name
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// DeleteCheckpoint removes the named checkpoint.
func (t *Tracker) DeleteCheckpoint(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.checkpoints, name)
}

// DiffSinceCheckpoint compares the named checkpoint with cur.
func (t *Tracker) DiffSinceCheckpoint(name string, cur buffer.Snapshot) (DiffResult, error) {
	cp, err := t.Checkpoint(name)
	if err != nil {
		return DiffResult{}, err
	}
	t.mu.RLock()
	opts := t.opts
	t.mu.RUnlock()
	return ComputeLineDiff(cp.Snapshot.Text(), cur.Text(), opts), nil
}

// Reset forgets the saved state and all checkpoints.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saved = buffer.Snapshot{}
	t.hasSaved = false
	t.checkpoints = make(map[string]Checkpoint)
}

// changedLines folds a flattened diff into gutter markers. A run of
// deletions directly followed by insertions is a modification.
func changedLines(ops []lineOp) []LineChange {
	var out []LineChange
	line := 0
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffEqual {
			line++
			i++
			continue
		}

		deleted := 0
		for i < len(ops) && ops[i].kind == DiffDelete {
			deleted++
			i++
		}
		inserted := 0
		for i < len(ops) && ops[i].kind == DiffInsert {
			inserted++
			i++
		}

		switch {
		case deleted > 0 && inserted > 0:
			out = append(out, LineChange{Kind: LinesModified, Line: line, Count: inserted})
		case inserted > 0:
			out = append(out, LineChange{Kind: LinesAdded, Line: line, Count: inserted})
		default:
			out = append(out, LineChange{Kind: LinesRemoved, Line: line, Count: deleted})
		}
		line += inserted
	}
	return out
}
