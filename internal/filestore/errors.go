package filestore

import (
	"errors"
	"fmt"
)

// Errors returned by file operations.
var (
	// ErrNoPath indicates Save on a document that has never been saved.
	ErrNoPath = errors.New("document has no path")

	// ErrBinaryContent indicates a file that does not look like text.
	ErrBinaryContent = errors.New("file appears to be binary")

	// ErrIsDirectory indicates a directory was opened as a file.
	ErrIsDirectory = errors.New("is a directory")

	// ErrFileTooLarge indicates a file over the store's size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrDirty indicates an operation that would discard unsaved changes.
	ErrDirty = errors.New("document has unsaved changes")

	// ErrAlreadyOpen indicates another document already uses a path.
	ErrAlreadyOpen = errors.New("path already open")

	// ErrNotOpen indicates a document the store does not hold.
	ErrNotOpen = errors.New("document not open")

	// ErrWatcherClosed indicates use of a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")
)

// PathError records a failed file operation.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
