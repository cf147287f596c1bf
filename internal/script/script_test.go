package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scribe/internal/clipboard"
	"github.com/dshills/scribe/internal/engine"
)

func run(t *testing.T, content, src string, opts ...engine.Option) (*engine.Editor, Result) {
	t.Helper()
	s, err := ParseString(src)
	require.NoError(t, err)
	e := engine.New(append([]engine.Option{engine.WithContent(content)}, opts...)...)
	res, err := s.Run(context.Background(), e)
	require.NoError(t, err)
	return e, res
}

func TestParsePositions(t *testing.T) {
	s, err := ParseString(`
name: positions
steps:
  - goto: 12
  - goto: "3:4"
  - goto: {line: 5, col: 6}
  - move: line_end
  - move: {to: word_right, extend: true}
`)
	require.NoError(t, err)
	require.Len(t, s.Steps, 5)

	assert.Equal(t, Point{Line: 12, Col: 1}, *s.Steps[0].Goto)
	assert.Equal(t, Point{Line: 3, Col: 4}, *s.Steps[1].Goto)
	assert.Equal(t, Point{Line: 5, Col: 6}, *s.Steps[2].Goto)
	assert.Equal(t, Move{To: "line_end"}, *s.Steps[3].Move)
	assert.Equal(t, Move{To: "word_right", Extend: true}, *s.Steps[4].Move)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrNoSteps},
		{"no steps", "name: x\n", ErrNoSteps},
		{"no action", "steps:\n  - repeat: 2\n", ErrInvalidStep},
		{"two actions", "steps:\n  - insert: a\n    type: b\n", ErrInvalidStep},
		{"unknown command", "steps:\n  - do: explode\n", ErrUnknownCommand},
		{"unknown motion", "steps:\n  - move: sideways\n", ErrUnknownMotion},
		{"bad position", "steps:\n  - goto: abc\n", ErrInvalidStep},
		{"line zero", "steps:\n  - goto: 0\n", ErrInvalidStep},
		{"negative repeat", "steps:\n  - do: undo\n    repeat: -1\n", ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseUnknownKey(t *testing.T) {
	_, err := ParseString("steps:\n  - insert: a\nbogus: 1\n")
	assert.Error(t, err)
}

func TestStepErrorIndex(t *testing.T) {
	_, err := ParseString("steps:\n  - insert: a\n  - {}\n")
	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)
	assert.Contains(t, err.Error(), "step 2")
}

func TestRunReplaceAll(t *testing.T) {
	e, res := run(t, "foo bar foo\n", `
steps:
  - find: foo
  - replace_all: baz
`)
	assert.Equal(t, "baz bar baz\n", e.Text())
	assert.Equal(t, 2, res.Replaced)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, e.Version(), res.Version)

	require.True(t, e.Undo())
	assert.Equal(t, "foo bar foo\n", e.Text(), "replace all is one undo step")
}

func TestRunReplaceCurrent(t *testing.T) {
	e, res := run(t, "a a a", `
steps:
  - find: a
  - replace: b
    repeat: 2
`)
	assert.Equal(t, "b b a", e.Text())
	assert.Equal(t, 2, res.Replaced)
}

func TestRunCaseSensitive(t *testing.T) {
	e, _ := run(t, "Foo foo", `
case_sensitive: true
steps:
  - find: foo
  - replace_all: bar
`)
	assert.Equal(t, "Foo bar", e.Text())
}

func TestRunMovesAndTyping(t *testing.T) {
	e, _ := run(t, "a\nb", `
steps:
  - goto: 2
  - move: line_end
  - type: X
  - goto: "1:1"
  - insert: ">"
`)
	assert.Equal(t, ">a\nbX", e.Text())
}

func TestRunSelectAndDelete(t *testing.T) {
	e, _ := run(t, "hello world", `
steps:
  - select: {from: "1:1", to: "1:7"}
  - do: delete_selection
`)
	assert.Equal(t, "world", e.Text())
}

func TestRunMultiCursor(t *testing.T) {
	e, _ := run(t, "ab\ncd\nef", `
steps:
  - goto: 1
  - do: add_cursor_below
    repeat: 2
  - insert: "-"
`)
	assert.Equal(t, "-ab\n-cd\n-ef", e.Text())
	assert.Equal(t, 3, e.CursorCount())
}

func TestRunCursorAt(t *testing.T) {
	e, _ := run(t, "ab\ncd", `
steps:
  - goto: "1:2"
  - cursor: "2:2"
  - insert: "|"
`)
	assert.Equal(t, "a|b\nc|d", e.Text())
}

func TestRunBlock(t *testing.T) {
	e, _ := run(t, "abcd\nefgh", `
steps:
  - block: {from: "1:2", to: "2:4"}
  - do: delete_block
`)
	assert.Equal(t, "ad\neh", e.Text())

	e, _ = run(t, "abcd\nefgh", `
steps:
  - block: {from: "1:2", to: "2:2"}
  - block_insert: "|"
`)
	assert.Equal(t, "a|bcd\ne|fgh", e.Text())
	assert.False(t, e.IsBlockMode())
}

func TestRunUndoRedo(t *testing.T) {
	e, _ := run(t, "x", `
steps:
  - insert: "abc "
  - do: undo
`)
	assert.Equal(t, "x", e.Text())

	e, _ = run(t, "x", `
steps:
  - insert: "abc "
  - do: undo
  - do: redo
`)
	assert.Equal(t, "abc x", e.Text())
}

func TestRunClipboard(t *testing.T) {
	e, _ := run(t, "one", `
steps:
  - do: select_all
  - do: copy
  - move: buffer_end
  - do: paste
`, engine.WithClipboard(clipboard.NewMemory()))
	assert.Equal(t, "oneone", e.Text())
}

func TestRunClipboardMissing(t *testing.T) {
	s, err := ParseString("steps:\n  - do: paste\n")
	require.NoError(t, err)
	_, err = s.Run(context.Background(), engine.New())
	assert.ErrorIs(t, err, engine.ErrNoClipboard)
}

func TestRunStrict(t *testing.T) {
	s, err := ParseString(`
strict: true
steps:
  - insert: "x"
  - find: missing
`)
	require.NoError(t, err)
	e := engine.New(engine.WithContent("abc"))
	res, err := s.Run(context.Background(), e)

	require.ErrorIs(t, err, ErrNoMatch)
	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)
	assert.Equal(t, "find", se.Action)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, "xabc", e.Text(), "earlier steps stay applied")
}

func TestRunLenientFind(t *testing.T) {
	_, res := run(t, "abc", "steps:\n  - find: missing\n  - replace_all: y\n")
	assert.Zero(t, res.Matches)
	assert.Zero(t, res.Replaced)
}

func TestRunGotoOutOfRange(t *testing.T) {
	s, err := ParseString("steps:\n  - goto: 9\n")
	require.NoError(t, err)
	_, err = s.Run(context.Background(), engine.New(engine.WithContent("a\nb")))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRunCanceled(t *testing.T) {
	s, err := ParseString("steps:\n  - insert: a\n")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := engine.New()
	_, err = s.Run(ctx, e)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.Text())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - insert: hi\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
