package rankdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/rankdb/ids"
	"github.com/hupe1980/rankdb/resource"
	"github.com/hupe1980/rankdb/table"
)

// InMemory is a Database that holds the full table of another database in
// memory. It reads the wrapped database once, at construction, and serves
// every load from the retained table.
type InMemory struct {
	db    Database
	table *table.Table
	opts  options

	rc       *resource.Controller
	reserved int64

	closeOnce sync.Once
	closeErr  error
}

var _ Database = (*InMemory)(nil)

// NewInMemory loads the full table of db and retains it.
//
// The table size is reserved on the resource controller; construction fails
// with resource.ErrMemoryLimitExceeded when the reservation does not fit.
func NewInMemory(db Database, optFns ...Option) (*InMemory, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: no database to keep in memory", ErrConfiguration)
	}

	o := applyOptions(optFns)
	logger := o.logger.WithDatabase(db.Name())
	ctx := context.Background()
	start := time.Now()

	m, err := newInMemory(db, o)

	var bytes int64
	if m != nil {
		bytes = m.reserved
	}
	elapsed := time.Since(start)
	o.metricsCollector.RecordResidentLoad(db.Name(), bytes, elapsed, err)
	logger.LogResident(ctx, bytes, elapsed, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newInMemory(db Database, o options) (*InMemory, error) {
	tbl, err := db.LoadFull()
	if err != nil {
		return nil, err
	}

	// Warm the memoized metadata before the decorator is shared.
	if _, err := db.IdentifierSet(); err != nil {
		return nil, err
	}

	rc := o.controller()
	size := tbl.SizeBytes()
	if !rc.TryAcquireMemory(size) {
		return nil, fmt.Errorf("rankdb: %s: resident table of %d bytes: %w", db.Name(), size, resource.ErrMemoryLimitExceeded)
	}

	return &InMemory{
		db:       db,
		table:    tbl,
		opts:     o,
		rc:       rc,
		reserved: size,
	}, nil
}

// Name implements Database.
func (m *InMemory) Name() string {
	return m.db.Name()
}

// Kind implements Database.
func (m *InMemory) Kind() ids.Kind {
	return m.db.Kind()
}

// TotalIdentifiers implements Database.
func (m *InMemory) TotalIdentifiers() (int, error) {
	return m.db.TotalIdentifiers()
}

// Identifiers implements Database.
func (m *InMemory) Identifiers() ([]string, error) {
	return m.db.Identifiers()
}

// IdentifierSet implements Database.
func (m *InMemory) IdentifierSet() (*ids.Set, error) {
	return m.db.IdentifierSet()
}

// LoadFull returns the retained table.
func (m *InMemory) LoadFull() (*table.Table, error) {
	return m.table, nil
}

// Load returns the retained table restricted to the members of sig.
// The result shares column storage with the retained table.
func (m *InMemory) Load(sig Signature) (*table.Table, error) {
	var members map[string]struct{}
	if sig != nil {
		set, err := m.db.IdentifierSet()
		if err != nil {
			return nil, err
		}
		members = set.Intersect(sig.Identifiers())
	}

	return m.table.Select(func(name string) bool {
		_, ok := members[name]
		return ok
	}), nil
}

// Export encodes the table selected by sig with the configured codec.
func (m *InMemory) Export(sig Signature) ([]byte, error) {
	tbl, err := m.Load(sig)
	if err != nil {
		return nil, err
	}
	return tbl.Encode(m.opts.codec)
}

// Unwrap returns the wrapped database.
func (m *InMemory) Unwrap() Database {
	return m.db
}

// Close releases the memory reservation and closes the wrapped database.
// It is idempotent.
func (m *InMemory) Close() error {
	m.closeOnce.Do(func() {
		m.rc.ReleaseMemory(m.reserved)
		m.opts.metricsCollector.RecordResidentRelease(m.db.Name(), m.reserved)
		m.closeErr = m.db.Close()
	})
	return m.closeErr
}

// String returns the database name.
func (m *InMemory) String() string {
	return m.db.Name()
}

// GoString implements fmt.GoStringer.
func (m *InMemory) GoString() string {
	return fmt.Sprintf("InMemory(%#v)", m.db)
}
