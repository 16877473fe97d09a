package rankdb

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankdb/ids"
	"github.com/hupe1980/rankdb/resource"
	"github.com/hupe1980/rankdb/table"
	"github.com/hupe1980/rankdb/testutil"
)

// countingDB is an in-process Database that counts the reads it serves.
type countingDB struct {
	name string
	full *table.Table
	set  *ids.Set
	err  error

	loadFull atomic.Int32
	load     atomic.Int32
	closed   atomic.Int32
}

func newCountingDB(t *testing.T) *countingDB {
	t.Helper()
	cols := []table.Column{
		{Name: "geneA", Ranks: []int32{2, 0}},
		{Name: "geneB", Ranks: []int32{0, 1}},
		{Name: "geneC", Ranks: []int32{1, 2}},
	}
	full, err := table.New("motifs", []string{"motif1", "motif2"}, cols)
	require.NoError(t, err)
	set, err := ids.New(ids.KindGene, full.ColumnNames())
	require.NoError(t, err)
	return &countingDB{name: "counting", full: full, set: set}
}

func (c *countingDB) Name() string                     { return c.name }
func (c *countingDB) Kind() ids.Kind                   { return c.set.Kind() }
func (c *countingDB) TotalIdentifiers() (int, error)   { return c.set.Len(), nil }
func (c *countingDB) Identifiers() ([]string, error)   { return c.set.Identifiers(), nil }
func (c *countingDB) IdentifierSet() (*ids.Set, error) { return c.set, nil }

func (c *countingDB) Close() error {
	c.closed.Add(1)
	return nil
}

func (c *countingDB) LoadFull() (*table.Table, error) {
	c.loadFull.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.full, nil
}

func (c *countingDB) Load(sig Signature) (*table.Table, error) {
	c.load.Add(1)
	keep := c.set.Intersect(sig.Identifiers())
	return c.full.Select(func(name string) bool {
		_, ok := keep[name]
		return ok
	}), nil
}

func TestNewInMemory_Nil(t *testing.T) {
	_, err := NewInMemory(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewInMemory_LoadError(t *testing.T) {
	inner := newCountingDB(t)
	inner.err = errors.New("boom")

	metrics := &BasicMetricsCollector{}
	_, err := NewInMemory(inner, WithMetricsCollector(metrics))
	require.Error(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().ResidentLoadErrors)
}

func TestInMemory_NoReadsAfterConstruction(t *testing.T) {
	inner := newCountingDB(t)

	m, err := NewInMemory(inner)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.loadFull.Load())

	for i := 0; i < 3; i++ {
		full, err := m.LoadFull()
		require.NoError(t, err)
		assert.Same(t, inner.full, full)

		tbl, err := m.Load(NewSignature("s", "geneC", "geneA", "geneZ"))
		require.NoError(t, err)
		assert.Equal(t, []string{"geneA", "geneC"}, tbl.ColumnNames())
		assert.Equal(t, 2, tbl.NumRows())
	}

	assert.Equal(t, int32(1), inner.loadFull.Load())
	assert.Equal(t, int32(0), inner.load.Load())
}

func TestInMemory_PreservesDatabase(t *testing.T) {
	inner := newCountingDB(t)

	m, err := NewInMemory(inner)
	require.NoError(t, err)

	assert.Equal(t, inner.Name(), m.Name())
	assert.Equal(t, inner.Kind(), m.Kind())
	assert.Same(t, inner, m.Unwrap())

	total, err := m.TotalIdentifiers()
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	identifiers, err := m.Identifiers()
	require.NoError(t, err)
	assert.Equal(t, []string{"geneA", "geneB", "geneC"}, identifiers)

	set, err := m.IdentifierSet()
	require.NoError(t, err)
	assert.Same(t, inner.set, set)

	for _, members := range [][]string{
		{},
		{"geneZ"},
		{"geneB"},
		{"geneC", "geneB", "geneA"},
	} {
		sig := NewSignature("s", members...)
		want, err := inner.Load(sig)
		require.NoError(t, err)
		got, err := m.Load(sig)
		require.NoError(t, err)
		assert.Equal(t, want.ColumnNames(), got.ColumnNames())
		assert.Equal(t, want.Features(), got.Features())
	}

	tbl, err := m.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumColumns())
	assert.Equal(t, 2, tbl.NumRows())
}

func TestInMemory_FeatherBacked(t *testing.T) {
	fx := testutil.NewRNG(8).RankingFixture("motifs", 6, 10)
	path := writeDB(t, "hg38.genes_vs_motifs.rankings.feather", fx)

	metrics := &BasicMetricsCollector{}
	fdb, err := NewFeatherDatabase(path, "hg38", WithMetricsCollector(metrics))
	require.NoError(t, err)

	want, err := fdb.LoadFull()
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().ReadCount)

	m, err := NewInMemory(fdb, WithMetricsCollector(metrics))
	require.NoError(t, err)
	defer m.Close()

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ReadCount)
	assert.Equal(t, int64(1), stats.ResidentLoadCount)
	assert.Positive(t, stats.ResidentBytes)

	got, err := m.LoadFull()
	require.NoError(t, err)
	assert.Equal(t, want.ColumnNames(), got.ColumnNames())
	assert.Equal(t, want.Features(), got.Features())

	for i := 0; i < 5; i++ {
		_, err := m.Load(NewSignature("s", fx.Columns[i], fx.Columns[9-i]))
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), metrics.GetStats().ReadCount)

	assert.Equal(t, "hg38", m.String())
	assert.Equal(t, `InMemory(FeatherDatabase(name="hg38"))`, fmt.Sprintf("%#v", m))
}

func TestInMemory_MemoryAccounting(t *testing.T) {
	fx := testutil.NewRNG(3).RankingFixture("motifs", 10, 10)
	path := writeDB(t, "hg38.genes_vs_motifs.rankings.feather", fx)

	t.Run("ReleasedOnClose", func(t *testing.T) {
		rc := resource.NewController(resource.Config{DecodeWorkers: 2, MemoryLimitBytes: 1 << 20})

		db, err := Open(path, "hg38", WithInMemory(), WithResourceController(rc))
		require.NoError(t, err)

		full, err := db.LoadFull()
		require.NoError(t, err)
		assert.Equal(t, full.SizeBytes(), rc.MemoryUsage())

		require.NoError(t, db.Close())
		require.NoError(t, db.Close())
		assert.Equal(t, int64(0), rc.MemoryUsage())
	})

	t.Run("ReleaseReported", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}
		db, err := Open(path, "hg38", WithInMemory(), WithMetricsCollector(metrics))
		require.NoError(t, err)
		assert.Positive(t, metrics.GetStats().ResidentBytes)

		require.NoError(t, db.Close())
		require.NoError(t, db.Close())
		stats := metrics.GetStats()
		assert.Equal(t, int64(0), stats.ResidentBytes)
		assert.Equal(t, int64(1), stats.ResidentReleases)
	})

	t.Run("LimitExceeded", func(t *testing.T) {
		_, err := Open(path, "hg38", WithInMemory(), WithMemoryLimit(64))
		assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	})
}

func TestInMemory_CloseClosesWrapped(t *testing.T) {
	inner := newCountingDB(t)
	m, err := NewInMemory(inner)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, int32(1), inner.closed.Load())

	// The resident table stays usable.
	_, err = m.LoadFull()
	assert.NoError(t, err)
}

func TestInMemory_Concurrent(t *testing.T) {
	m, err := NewInMemory(newCountingDB(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl, err := m.Load(NewSignature("s", "geneB"))
			if assert.NoError(t, err) {
				assert.Equal(t, []string{"geneB"}, tbl.ColumnNames())
			}
		}()
	}
	wg.Wait()
}
