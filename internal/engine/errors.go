package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrInvalidEncoding indicates loaded content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")

	// ErrNoClipboard indicates a clipboard command without a clipboard.
	ErrNoClipboard = errors.New("no clipboard configured")

	// ErrNoSelection indicates a command that needs selected text.
	ErrNoSelection = errors.New("no selection")
)
