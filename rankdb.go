package rankdb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/hupe1980/rankdb/feather"
	"github.com/hupe1980/rankdb/ids"
	"github.com/hupe1980/rankdb/table"
)

// Signature is a collection of identifiers of interest, such as the genes of
// a pathway. Load reads Identifiers once per call and never modifies it.
type Signature interface {
	Identifiers() []string
}

// StaticSignature is a named, fixed list of identifiers.
type StaticSignature struct {
	name    string
	members []string
}

// NewSignature returns a signature holding a copy of members.
func NewSignature(name string, members ...string) *StaticSignature {
	return &StaticSignature{
		name:    name,
		members: slices.Clone(members),
	}
}

// Name returns the signature name.
func (s *StaticSignature) Name() string {
	return s.name
}

// Identifiers returns the members. Do not modify.
func (s *StaticSignature) Identifiers() []string {
	return s.members
}

// Database is a read-only ranking database.
//
// Implementations are safe for concurrent use. Identifiers and IdentifierSet
// are computed once and stable for the database's lifetime.
type Database interface {
	// Name returns the name the database was opened with.
	Name() string
	// Kind returns what the identifiers name (genes or regions).
	Kind() ids.Kind
	// TotalIdentifiers returns the number of identifiers, the index column excluded.
	TotalIdentifiers() (int, error)
	// Identifiers returns all identifiers in file order. Do not modify.
	Identifiers() ([]string, error)
	// IdentifierSet returns the identifiers as a set.
	IdentifierSet() (*ids.Set, error)
	// LoadFull returns the table with every identifier and every feature.
	LoadFull() (*table.Table, error)
	// Load returns the table restricted to the identifiers in sig that the
	// database ranks, in file order. Unranked members are dropped. A nil sig
	// selects no identifiers.
	Load(sig Signature) (*table.Table, error)
	// Close releases the backing store.
	Close() error
}

// Open opens the ranking database at path under the given name.
// The file extension selects the implementation; only Feather files
// (".feather") are recognized.
func Open(path, name string, optFns ...Option) (Database, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: database name must not be empty", ErrConfiguration)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// Resolve the controller once so a resident wrapper shares it.
	o := applyOptions(optFns)
	optFns = append(slices.Clone(optFns), WithResourceController(o.controller()))

	var db Database
	switch ext := filepath.Ext(path); ext {
	case feather.Extension:
		fdb, err := NewFeatherDatabase(path, name, optFns...)
		if err != nil {
			return nil, err
		}
		db = fdb
	default:
		return nil, &UnknownFormatError{Path: path, Extension: ext}
	}

	if o.inMemory {
		mem, err := NewInMemory(db, optFns...)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return mem, nil
	}
	return db, nil
}

func selectColumns(set *ids.Set, sig Signature) []string {
	if sig == nil {
		return nil
	}
	return set.Select(sig.Identifiers())
}
