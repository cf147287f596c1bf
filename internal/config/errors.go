package config

import (
	"errors"

	"github.com/dshills/scribe/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidValue indicates a setting outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownKey indicates a key that matches no setting.
	ErrUnknownKey = loader.ErrUnknownKey
)

// ParseError represents an error while parsing a configuration file.
// Line and Column are zero when the source has no meaningful position.
type ParseError = loader.ParseError
