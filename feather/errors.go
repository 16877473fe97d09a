package feather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the database file does not exist.
	ErrNotFound = errors.New("feather: file not found")
	// ErrUnknownColumn is returned when a requested column is not in the file.
	ErrUnknownColumn = errors.New("feather: unknown column")
	// ErrStorage is returned for unreadable, truncated or malformed files.
	ErrStorage = errors.New("feather: storage error")
	// ErrClosed is returned when reading from a closed Reader.
	ErrClosed = errors.New("feather: reader is closed")
)

// UnknownColumnError names the column that could not be found.
type UnknownColumnError struct {
	Column string
	Path   string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("feather: unknown column %q in %s", e.Column, e.Path)
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }

func storageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStorage, fmt.Sprintf(format, args...))
}
