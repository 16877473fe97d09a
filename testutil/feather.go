package testutil

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

// Compression selects the IPC body compression of a fixture.
type Compression int

const (
	Uncompressed Compression = iota
	LZ4
	ZSTD
)

// Fixture describes a ranking database to write.
// Ranks[c] (or Scores[c]) holds the cells of Columns[c], one per feature.
type Fixture struct {
	Index    string
	Features []string
	Columns  []string
	Ranks    [][]int32
	Scores   [][]float32

	// IndexLast stores the index column after the data columns.
	IndexLast bool
	// Narrow stores ranks as int16.
	Narrow bool
	// BatchSize splits the rows into record batches. 0 writes one batch.
	BatchSize   int
	Compression Compression
}

// Signature is a minimal signature: a name and its members.
type Signature struct {
	Name    string
	Members []string
}

// Identifiers returns the members.
func (s Signature) Identifiers() []string {
	return s.Members
}

// WriteFeather writes fx to path as a Feather v2 file.
func WriteFeather(tb testing.TB, path string, fx Fixture) {
	tb.Helper()
	require.NoError(tb, WriteFeatherFile(path, fx))
}

// WriteFeatherFile writes fx to path as a Feather v2 file.
func WriteFeatherFile(path string, fx Fixture) error {
	if fx.Index == "" {
		fx.Index = "features"
	}
	rows := len(fx.Features)
	for c, name := range fx.Columns {
		var n int
		if fx.Scores != nil {
			n = len(fx.Scores[c])
		} else {
			n = len(fx.Ranks[c])
		}
		if n != rows {
			return fmt.Errorf("testutil: column %q has %d values, want %d", name, n, rows)
		}
	}

	rankType := arrow.DataType(arrow.PrimitiveTypes.Int32)
	if fx.Narrow {
		rankType = arrow.PrimitiveTypes.Int16
	}

	dataFields := make([]arrow.Field, len(fx.Columns))
	for c, name := range fx.Columns {
		typ := rankType
		if fx.Scores != nil {
			typ = arrow.PrimitiveTypes.Float32
		}
		dataFields[c] = arrow.Field{Name: name, Type: typ}
	}
	indexField := arrow.Field{Name: fx.Index, Type: arrow.BinaryTypes.String}

	var fields []arrow.Field
	if fx.IndexLast {
		fields = append(append(fields, dataFields...), indexField)
	} else {
		fields = append(append(fields, indexField), dataFields...)
	}
	schema := arrow.NewSchema(fields, nil)

	var buf bytes.Buffer
	mem := memory.NewGoAllocator()
	opts := []ipc.Option{ipc.WithSchema(schema), ipc.WithAllocator(mem)}
	switch fx.Compression {
	case LZ4:
		opts = append(opts, ipc.WithLZ4())
	case ZSTD:
		opts = append(opts, ipc.WithZstd())
	}

	w, err := ipc.NewFileWriter(&buf, opts...)
	if err != nil {
		return err
	}

	batch := fx.BatchSize
	if batch <= 0 || batch > rows {
		batch = rows
	}
	if rows == 0 {
		if err := writeBatch(w, mem, schema, fx, 0, 0); err != nil {
			return err
		}
	}
	for lo := 0; lo < rows; lo += batch {
		if err := writeBatch(w, mem, schema, fx, lo, min(lo+batch, rows)); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func writeBatch(w *ipc.FileWriter, mem memory.Allocator, schema *arrow.Schema, fx Fixture, lo, hi int) error {
	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.AppendValues(fx.Features[lo:hi], nil)
	index := sb.NewArray()
	defer index.Release()

	data := make([]arrow.Array, len(fx.Columns))
	for c := range fx.Columns {
		data[c] = buildColumn(mem, fx, c, lo, hi)
		defer data[c].Release()
	}

	var cols []arrow.Array
	if fx.IndexLast {
		cols = append(append(cols, data...), index)
	} else {
		cols = append(append(cols, index), data...)
	}

	rec := array.NewRecord(schema, cols, int64(hi-lo))
	defer rec.Release()
	return w.Write(rec)
}

func buildColumn(mem memory.Allocator, fx Fixture, c, lo, hi int) arrow.Array {
	switch {
	case fx.Scores != nil:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		b.AppendValues(fx.Scores[c][lo:hi], nil)
		return b.NewArray()
	case fx.Narrow:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		for _, v := range fx.Ranks[c][lo:hi] {
			b.Append(int16(v)) //nolint:gosec
		}
		return b.NewArray()
	default:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		b.AppendValues(fx.Ranks[c][lo:hi], nil)
		return b.NewArray()
	}
}
