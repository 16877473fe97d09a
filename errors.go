package rankdb

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rankdb/feather"
	"github.com/hupe1980/rankdb/ids"
)

var (
	// ErrNotFound is returned when the database file does not exist.
	ErrNotFound = feather.ErrNotFound
	// ErrConfiguration is returned for invalid constructor arguments, such as
	// an empty name or duplicate identifiers.
	ErrConfiguration = errors.New("rankdb: configuration error")
	// ErrUnknownFormat is returned by Open for unrecognized file extensions.
	ErrUnknownFormat = errors.New("rankdb: unknown database format")
	// ErrUnknownColumn is returned when a requested column is not stored.
	ErrUnknownColumn = feather.ErrUnknownColumn
	// ErrStorage is returned for unreadable or malformed database files.
	ErrStorage = feather.ErrStorage
	// ErrClosed is returned when loading from a closed database.
	ErrClosed = feather.ErrClosed
)

// UnknownFormatError names the extension Open did not recognize.
type UnknownFormatError struct {
	Path      string
	Extension string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("rankdb: unknown database extension %q for %s", e.Extension, e.Path)
}

func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Identifier uniqueness is a configuration property of the store.
	if errors.Is(err, ids.ErrDuplicateIdentifier) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return err
}
