package feather

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/rankdb/ids"
	"github.com/hupe1980/rankdb/internal/mmap"
	"github.com/hupe1980/rankdb/table"
)

var featherV1Magic = []byte("FEA1")

// minArrowFileSize is two "ARROW1" magics plus the footer length.
const minArrowFileSize = 2*6 + 4

// Reader is a read-only view of a Feather database file.
type Reader struct {
	path string
	rule Rule
	opts options

	// mu guards closed and keeps the mapping alive for in-flight reads.
	mu      sync.RWMutex
	closed  bool
	m       *mmap.Mapping
	mapping func() (*mmap.Mapping, error)

	schema func() (*arrow.Schema, error)
	names  func() ([]string, error)
}

// Open returns a Reader for the Feather file at path.
// Only existence is checked; the file is not read until it is needed.
func Open(path string, optFns ...Option) (*Reader, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrStorage, path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	r := &Reader{
		path: path,
		rule: Resolve(path),
		opts: applyOptions(optFns),
	}
	r.mapping = sync.OnceValues(r.openMapping)
	r.schema = sync.OnceValues(r.readSchema)
	r.names = sync.OnceValues(r.readNames)
	return r, nil
}

// Path returns the database file path.
func (r *Reader) Path() string {
	return r.path
}

// Rule returns the naming rule the file name resolved to.
func (r *Reader) Rule() Rule {
	return r.rule
}

// IndexColumnName returns the name of the column holding the feature names.
func (r *Reader) IndexColumnName() string {
	return r.rule.Index
}

// Kind returns what the data columns of this file name.
func (r *Reader) Kind() ids.Kind {
	return r.rule.Kind
}

// ColumnCount returns the number of stored columns, index column included.
func (r *Reader) ColumnCount() (int, error) {
	names, err := r.names()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// ColumnNames returns all column names in file order, index column included.
// The returned slice is shared; do not modify.
func (r *Reader) ColumnNames() ([]string, error) {
	return r.names()
}

// ReadAll reads every column.
func (r *Reader) ReadAll() (*table.Table, error) {
	names, err := r.names()
	if err != nil {
		return nil, err
	}
	return r.ReadColumns(names)
}

// ReadColumns reads the named columns into a table.
//
// The index column is always read and becomes the row labels, whether or not
// it is listed. The other names become data columns in the order given;
// repeated names are read once.
func (r *Reader) ReadColumns(names []string) (*table.Table, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == r.rule.Index {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		idx := schema.FieldIndices(name)
		if len(idx) == 0 {
			return nil, &UnknownColumnError{Column: name, Path: r.path}
		}
		selected = append(selected, idx[0])
	}

	idx := schema.FieldIndices(r.rule.Index)
	if len(idx) == 0 {
		return nil, storageErrorf("%s: index column %q not found", r.path, r.rule.Index)
	}

	return r.read(context.Background(), schema, idx[0], selected)
}

// Close releases the file mapping. It is idempotent.
// Close waits for in-flight reads to finish.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.m != nil {
		return r.m.Close()
	}
	return nil
}

func (r *Reader) openMapping() (*mmap.Mapping, error) {
	m, err := mmap.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}
		return nil, fmt.Errorf("%w: map %s: %w", ErrStorage, r.path, err)
	}
	if bytes.HasPrefix(m.Bytes(), featherV1Magic) {
		_ = m.Close()
		return nil, storageErrorf("%s is a Feather v1 file; only Feather v2 (Arrow IPC) is supported", r.path)
	}
	// Projected reads jump between column buffers.
	_ = m.Advise(mmap.AccessRandom)
	r.m = m
	return m, nil
}

// withMapping runs fn while holding the mapping open.
func (r *Reader) withMapping(fn func(m *mmap.Mapping) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrClosed
	}
	m, err := r.mapping()
	if err != nil {
		return err
	}
	return fn(m)
}

// newFileReader builds an IPC reader over the mapped bytes. Buffers of
// uncompressed record batches are slices of the mapping, so pages of columns
// that are never decoded are never faulted in.
func (r *Reader) newFileReader(m *mmap.Mapping) (*ipc.FileReader, error) {
	if m.Size() < minArrowFileSize {
		return nil, storageErrorf("%s: %d bytes is too short for an Arrow IPC file", r.path, m.Size())
	}
	fr, err := ipc.NewMappedFileReader(m.Bytes(), ipc.WithAllocator(r.opts.mem))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStorage, r.path, err)
	}
	return fr, nil
}

func (r *Reader) readSchema() (*arrow.Schema, error) {
	var schema *arrow.Schema
	err := r.withMapping(func(m *mmap.Mapping) error {
		fr, err := r.newFileReader(m)
		if err != nil {
			return err
		}
		defer fr.Close()
		schema = fr.Schema()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func (r *Reader) readNames() ([]string, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}
	names := make([]string, schema.NumFields())
	for i := range names {
		names[i] = schema.Field(i).Name
	}
	return names, nil
}

func (r *Reader) read(ctx context.Context, schema *arrow.Schema, indexIdx int, selected []int) (*table.Table, error) {
	start := time.Now()

	columns := make([]table.Column, len(selected))
	for i, fi := range selected {
		c, err := newColumn(schema.Field(fi))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.path, err)
		}
		columns[i] = c
	}

	features := []string{}
	batches := 0
	err := r.withMapping(func(m *mmap.Mapping) error {
		fr, err := r.newFileReader(m)
		if err != nil {
			return err
		}
		defer fr.Close()

		batches = fr.NumRecords()
		for b := 0; b < batches; b++ {
			rec, err := fr.RecordAt(b)
			if err != nil {
				return fmt.Errorf("%w: %s: record batch %d: %w", ErrStorage, r.path, b, err)
			}
			features, err = r.readBatch(ctx, rec, indexIdx, features, columns, selected)
			rec.Release()
			if err != nil {
				return fmt.Errorf("%s: record batch %d: %w", r.path, b, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tbl, err := table.New(r.rule.Index, features, columns)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStorage, r.path, err)
	}

	r.opts.logger.Debug("feather: columns read",
		"path", r.path,
		"columns", len(selected),
		"rows", len(features),
		"batches", batches,
		"duration", time.Since(start),
	)
	return tbl, nil
}

func (r *Reader) readBatch(ctx context.Context, rec arrow.Record, indexIdx int, features []string, columns []table.Column, selected []int) ([]string, error) {
	index := rec.Column(indexIdx)
	if err := r.opts.rc.AcquireIO(ctx, bufferBytes(index)); err != nil {
		return features, err
	}
	features, err := appendLabels(features, index)
	if err != nil {
		return features, err
	}
	return features, r.decodeBatch(ctx, rec, columns, selected)
}

// decodeBatch appends the selected columns of rec, one goroutine per column,
// bounded by the decode budget.
func (r *Reader) decodeBatch(ctx context.Context, rec arrow.Record, columns []table.Column, selected []int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.rc.DecodeWorkers())

	for i, fi := range selected {
		g.Go(func() error {
			if err := r.opts.rc.AcquireDecode(gctx); err != nil {
				return err
			}
			defer r.opts.rc.ReleaseDecode()

			arr := rec.Column(fi)
			if err := r.opts.rc.AcquireIO(gctx, bufferBytes(arr)); err != nil {
				return err
			}
			return appendValues(&columns[i], arr)
		})
	}
	return g.Wait()
}

// bufferBytes returns the size of the buffers backing arr. For uncompressed
// files these are the bytes read from the mapping to decode arr.
func bufferBytes(arr arrow.Array) int {
	n := 0
	for _, b := range arr.Data().Buffers() {
		if b != nil {
			n += b.Len()
		}
	}
	return n
}
