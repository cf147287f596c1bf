package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "WRITE", OpWrite.String())
	assert.Equal(t, "CREATE|WRITE", (OpCreate | OpWrite).String())
	assert.Equal(t, "UNKNOWN", Op(0).String())
	assert.True(t, (OpCreate | OpWrite).Has(OpWrite))
	assert.False(t, OpWrite.Has(OpRemove))
}

func TestWatcherAddRemove(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "b.txt", "b")

	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	assert.ErrorIs(t, w.Add(a), ErrAlreadyWatching)
	assert.True(t, w.IsWatching(a))

	require.NoError(t, w.Remove(a))
	assert.False(t, w.IsWatching(a))
	assert.ErrorIs(t, w.Remove(a), ErrNotWatching)
	assert.True(t, w.IsWatching(b))
}

func TestWatcherReportsWrites(t *testing.T) {
	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	dir := t.TempDir()
	watched := writeFile(t, dir, "watched.txt", "one")
	writeFile(t, dir, "ignored.txt", "one")
	require.NoError(t, w.Add(watched))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("two"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("two"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("three"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, watched, ev.Path)
	assert.True(t, ev.Op.Has(OpWrite))
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, w.Add(t.TempDir()), ErrWatcherClosed)
}

func TestStoreWithWatcher(t *testing.T) {
	w, err := NewWatcher(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.txt", "v1")
	s := NewStore(WithWatcher(w))

	doc, err := s.Open(ctx, path)
	require.NoError(t, err)
	assert.True(t, w.IsWatching(path))

	later := time.Now().Add(5 * time.Second)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.NoError(t, os.Chtimes(path, later, later))

	ev := waitEvent(t, w)
	c, changed := s.ExternalChange(ev)
	require.True(t, changed)
	assert.Same(t, doc, c.Doc)

	require.NoError(t, s.Reload(ctx, doc, false))
	assert.Equal(t, "v2", doc.Editor().Text())

	require.NoError(t, s.Close(doc, false))
	assert.False(t, w.IsWatching(path))
}
