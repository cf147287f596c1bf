package tracking

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged lines kept around each
// hunk.
const DefaultContextLines = 3

// DiffOptions configures diff computation.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to include
	// around each change.
	ContextLines int
}

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{ContextLines: DefaultContextLines}
}

// DiffType indicates the type of a diffed line.
type DiffType uint8

const (
	// DiffEqual indicates unchanged lines.
	DiffEqual DiffType = iota

	// DiffInsert indicates added lines.
	DiffInsert

	// DiffDelete indicates removed lines.
	DiffDelete
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// LineDiff is one hunk of a line diff.
type LineDiff struct {
	// OldStart is the first old line covered by the hunk (0-indexed).
	OldStart int
	OldCount int

	// NewStart is the first new line covered by the hunk (0-indexed).
	NewStart int
	NewCount int

	// Lines holds the hunk body, each line prefixed with ' ', '+' or '-'.
	Lines []string
}

// DiffResult contains the complete result of a diff operation.
type DiffResult struct {
	Hunks []LineDiff

	OldLineCount int
	NewLineCount int
}

// HasChanges returns true if there are any differences.
func (dr DiffResult) HasChanges() bool {
	return len(dr.Hunks) > 0
}

// InsertedLines returns the total number of inserted lines.
func (dr DiffResult) InsertedLines() int {
	return dr.countPrefix('+')
}

// DeletedLines returns the total number of deleted lines.
func (dr DiffResult) DeletedLines() int {
	return dr.countPrefix('-')
}

func (dr DiffResult) countPrefix(p byte) int {
	count := 0
	for _, hunk := range dr.Hunks {
		for _, line := range hunk.Lines {
			if len(line) > 0 && line[0] == p {
				count++
			}
		}
	}
	return count
}

// lineOp is a single line of a flattened diff.
type lineOp struct {
	kind DiffType
	text string
}

// ComputeLineDiff computes a line diff between two texts.
func ComputeLineDiff(oldText, newText string, opts DiffOptions) DiffResult {
	ops := diffLines(oldText, newText)

	res := DiffResult{
		OldLineCount: strings.Count(oldText, "\n") + 1,
		NewLineCount: strings.Count(newText, "\n") + 1,
	}
	res.Hunks = buildHunks(ops, max(opts.ContextLines, 0))
	return res
}

func diffLines(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		kind := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffInsert
		case diffmatchpatch.DiffDelete:
			kind = DiffDelete
		}
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}
	return ops
}

// splitLines splits text into lines without their newlines. A trailing
// newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// buildHunks groups changed lines with up to context unchanged lines on
// each side. Changes separated by no more than 2*context unchanged lines
// share a hunk.
func buildHunks(ops []lineOp, context int) []LineDiff {
	oldAt := make([]int, len(ops)+1)
	newAt := make([]int, len(ops)+1)
	for i, op := range ops {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if op.kind != DiffInsert {
			oldAt[i+1]++
		}
		if op.kind != DiffDelete {
			newAt[i+1]++
		}
	}

	var hunks []LineDiff
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffEqual {
			i++
			continue
		}

		start := max(i-context, 0)
		last := i
		for j := i + 1; j < len(ops); {
			if ops[j].kind != DiffEqual {
				last = j
				j++
				continue
			}
			k := j
			for k < len(ops) && ops[k].kind == DiffEqual {
				k++
			}
			if k == len(ops) || k-j > 2*context {
				break
			}
			j = k
		}
		end := min(last+1+context, len(ops))

		hunk := LineDiff{
			OldStart: oldAt[start],
			OldCount: oldAt[end] - oldAt[start],
			NewStart: newAt[start],
			NewCount: newAt[end] - newAt[start],
		}
		for _, op := range ops[start:end] {
			hunk.Lines = append(hunk.Lines, prefix(op.kind)+op.text)
		}
		hunks = append(hunks, hunk)
		i = end
	}
	return hunks
}

func prefix(kind DiffType) string {
	switch kind {
	case DiffInsert:
		return "+"
	case DiffDelete:
		return "-"
	}
	return " "
}

// UnifiedDiff returns the diff in unified diff format.
func UnifiedDiff(result DiffResult, oldName, newName string) string {
	if !result.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- ")
	sb.WriteString(oldName)
	sb.WriteString("\n")
	sb.WriteString("+++ ")
	sb.WriteString(newName)
	sb.WriteString("\n")

	for _, hunk := range result.Hunks {
		sb.WriteString("@@ -")
		sb.WriteString(hunkRange(hunk.OldStart, hunk.OldCount))
		sb.WriteString(" +")
		sb.WriteString(hunkRange(hunk.NewStart, hunk.NewCount))
		sb.WriteString(" @@\n")

		for _, line := range hunk.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// hunkRange formats a unified diff range. Empty ranges name the line
// before them.
func hunkRange(start, count int) string {
	if count == 0 {
		return strconv.Itoa(start) + ",0"
	}
	return strconv.Itoa(start+1) + "," + strconv.Itoa(count)
}
