package rankdb

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/rankdb/feather"
	"github.com/hupe1980/rankdb/ids"
	"github.com/hupe1980/rankdb/table"
)

// FeatherDatabase is a Database read directly from a Feather file.
// Every load reads the file; only the selected columns are decoded.
type FeatherDatabase struct {
	name   string
	reader *feather.Reader
	opts   options
	logger *Logger

	identifiers   func() ([]string, error)
	identifierSet func() (*ids.Set, error)
}

var _ Database = (*FeatherDatabase)(nil)

// NewFeatherDatabase opens the Feather file at path.
// The file is checked for existence only; it is read on first use.
func NewFeatherDatabase(path, name string, optFns ...Option) (*FeatherDatabase, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: database name must not be empty", ErrConfiguration)
	}

	o := applyOptions(optFns)
	logger := o.logger.WithDatabase(name)

	r, err := feather.Open(path,
		feather.WithResourceController(o.controller()),
		feather.WithLogger(logger.Logger),
	)
	logger.LogOpen(context.Background(), path, err)
	if err != nil {
		return nil, translateError(err)
	}

	db := &FeatherDatabase{
		name:   name,
		reader: r,
		opts:   o,
		logger: logger,
	}
	db.identifiers = sync.OnceValues(db.readIdentifiers)
	db.identifierSet = sync.OnceValues(db.buildIdentifierSet)
	return db, nil
}

// Name implements Database.
func (db *FeatherDatabase) Name() string {
	return db.name
}

// Path returns the database file path.
func (db *FeatherDatabase) Path() string {
	return db.reader.Path()
}

// Kind implements Database. The kind follows from the file name.
func (db *FeatherDatabase) Kind() ids.Kind {
	return db.reader.Kind()
}

// IndexColumnName returns the name of the column holding the feature names.
func (db *FeatherDatabase) IndexColumnName() string {
	return db.reader.IndexColumnName()
}

// TotalIdentifiers implements Database.
func (db *FeatherDatabase) TotalIdentifiers() (int, error) {
	identifiers, err := db.identifiers()
	if err != nil {
		return 0, err
	}
	return len(identifiers), nil
}

// Identifiers implements Database.
func (db *FeatherDatabase) Identifiers() ([]string, error) {
	return db.identifiers()
}

// IdentifierSet implements Database.
func (db *FeatherDatabase) IdentifierSet() (*ids.Set, error) {
	return db.identifierSet()
}

// LoadFull implements Database.
func (db *FeatherDatabase) LoadFull() (*table.Table, error) {
	return db.load(true, func() (*table.Table, error) {
		return db.reader.ReadAll()
	})
}

// Load implements Database.
func (db *FeatherDatabase) Load(sig Signature) (*table.Table, error) {
	set, err := db.identifierSet()
	if err != nil {
		return nil, err
	}

	names := append([]string{db.reader.IndexColumnName()}, selectColumns(set, sig)...)
	return db.load(false, func() (*table.Table, error) {
		return db.reader.ReadColumns(names)
	})
}

// Export loads the columns selected by sig and encodes the table with the
// configured codec.
func (db *FeatherDatabase) Export(sig Signature) ([]byte, error) {
	tbl, err := db.Load(sig)
	if err != nil {
		return nil, err
	}
	return tbl.Encode(db.opts.codec)
}

// Close releases the file mapping. Loads after Close fail with ErrClosed.
func (db *FeatherDatabase) Close() error {
	return db.reader.Close()
}

// String returns the database name.
func (db *FeatherDatabase) String() string {
	return db.name
}

// GoString implements fmt.GoStringer.
func (db *FeatherDatabase) GoString() string {
	return fmt.Sprintf("FeatherDatabase(name=%q)", db.name)
}

func (db *FeatherDatabase) load(full bool, read func() (*table.Table, error)) (*table.Table, error) {
	start := time.Now()
	tbl, err := read()
	err = translateError(err)
	elapsed := time.Since(start)

	var columns, rows int
	if tbl != nil {
		columns, rows = tbl.NumColumns(), tbl.NumRows()
	}
	db.opts.metricsCollector.RecordRead(db.name, columns, rows, elapsed, err)
	db.logger.LogLoad(context.Background(), full, columns, rows, elapsed, err)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

func (db *FeatherDatabase) readIdentifiers() ([]string, error) {
	names, err := db.reader.ColumnNames()
	if err != nil {
		return nil, translateError(err)
	}

	index := db.reader.IndexColumnName()
	at := slices.Index(names, index)
	if at < 0 {
		return nil, fmt.Errorf("%w: %s: index column %q not found", ErrStorage, db.reader.Path(), index)
	}
	return slices.Delete(slices.Clone(names), at, at+1), nil
}

func (db *FeatherDatabase) buildIdentifierSet() (*ids.Set, error) {
	identifiers, err := db.identifiers()
	if err != nil {
		return nil, err
	}
	set, err := ids.New(db.reader.Kind(), identifiers)
	if err != nil {
		return nil, translateError(err)
	}
	return set, nil
}
