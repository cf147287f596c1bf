package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownKey indicates a key with no matching setting.
var ErrUnknownKey = errors.New("unknown configuration key")

// TOMLLoader decodes configuration from TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader on the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS())
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem) *TOMLLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &TOMLLoader{fs: fsys}
}

// DecodeFile decodes the file at path into v. Keys absent from the file
// leave v's existing values alone. found is false, with a nil error, when
// the file does not exist.
func (l *TOMLLoader) DecodeFile(path string, v any) (found bool, err error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return true, Decode(path, data, v)
}

// DecodeReader decodes TOML from r into v.
func (l *TOMLLoader) DecodeReader(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return Decode("<reader>", data, v)
}

// Decode decodes data into v, rejecting unknown keys. source names the
// data in errors.
func Decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return newParseError(source, err)
	}
	return nil
}

// DecodeMap decodes a nested map, such as EnvLoader output, into v.
func DecodeMap(source string, m map[string]any, v any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", source, err)
	}
	if err := Decode(source, data, v); err != nil {
		// Positions in re-encoded text mean nothing to the user.
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line, pe.Column = 0, 0
		}
		return err
	}
	return nil
}

func newParseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		pe.Err = fmt.Errorf("%w: %w", ErrUnknownKey, err)
		if len(strict.Errors) > 0 {
			derr := strict.Errors[0]
			pe.Line, pe.Column = derr.Position()
			pe.Message = fmt.Sprintf("unknown key %q", joinKey(derr.Key()))
		}
		return pe
	}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		pe.Message = derr.Error()
	}
	return pe
}

func joinKey(key toml.Key) string {
	var b bytes.Buffer
	for i, k := range key {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
