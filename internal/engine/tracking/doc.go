// Package tracking compares a document against checkpoints of its own
// content: the last saved state and any number of named snapshots.
//
// Snapshots are buffer.Snapshot values, which share structure with the
// live document and cost nothing to keep. Comparisons are line based and
// run on github.com/sergi/go-diff:
//
//	tr := tracking.NewTracker()
//	tr.MarkSaved(doc.Snapshot())
//
//	// ... edits ...
//
//	tr.IsDirty(doc.Snapshot())      // content differs from the saved state
//	tr.ChangedLines(doc.Snapshot()) // gutter markers
//	res := tr.Diff(doc.Snapshot())
//	fmt.Print(tracking.UnifiedDiff(res, "a/file", "b/file"))
//
// # Thread Safety
//
// Tracker methods are safe for concurrent use, so a file watcher may mark
// the saved state while a renderer reads change markers.
package tracking
