// Package table holds ranking tables loaded from a ranking database.
//
// A Table is row-indexed by feature (motif, track, ...) and has one column per
// identifier (gene or region). Columns hold either 0-based ranks or scores,
// depending on the database the table was read from.
//
// Tables are immutable once built. Projections share column storage with the
// table they were taken from.
package table

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rankdb/codec"
)

var (
	// ErrShape is returned when a column length differs from the row count.
	ErrShape = errors.New("table: column length does not match row count")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("table: duplicate column")
)

// ValueType is the cell type of a column.
type ValueType uint8

const (
	// Ranks columns hold 0-based rank positions.
	Ranks ValueType = iota
	// Scores columns hold floating point scores.
	Scores
)

func (v ValueType) String() string {
	if v == Scores {
		return "scores"
	}
	return "ranks"
}

// Column is one identifier's values across all features.
// Exactly one of Ranks or Scores is used; Scores wins when both are set.
type Column struct {
	Name   string
	Ranks  []int32
	Scores []float32
}

// Type returns the cell type of the column.
func (c *Column) Type() ValueType {
	if c.Scores != nil {
		return Scores
	}
	return Ranks
}

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.Scores != nil {
		return len(c.Scores)
	}
	return len(c.Ranks)
}

// Float64 returns cell i as a float64 regardless of the column type.
func (c *Column) Float64(i int) float64 {
	if c.Scores != nil {
		return float64(c.Scores[i])
	}
	return float64(c.Ranks[i])
}

// Table is a feature-by-identifier ranking matrix.
type Table struct {
	index    string
	features []string
	rows     map[string]int
	columns  []Column
	byName   map[string]int
}

// New builds a table. index names the column the feature labels came from.
func New(index string, features []string, columns []Column) (*Table, error) {
	rows := make(map[string]int, len(features))
	for i, f := range features {
		rows[f] = i
	}

	byName := make(map[string]int, len(columns))
	for i := range columns {
		c := &columns[i]
		if c.Len() != len(features) {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrShape, c.Name, c.Len(), len(features))
		}
		if _, ok := byName[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		byName[c.Name] = i
	}

	return &Table{
		index:    index,
		features: features,
		rows:     rows,
		columns:  columns,
		byName:   byName,
	}, nil
}

// IndexName returns the name of the column that holds the row labels.
func (t *Table) IndexName() string {
	return t.index
}

// Features returns the row labels in row order.
// The returned slice is shared; do not modify.
func (t *Table) Features() []string {
	return t.features
}

// NumRows returns the number of features.
func (t *Table) NumRows() int {
	return len(t.features)
}

// NumColumns returns the number of identifier columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns the identifier column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name
	}
	return names
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.columns[i], true
}

// ColumnAt returns the i-th column.
func (t *Table) ColumnAt(i int) *Column {
	return &t.columns[i]
}

// Row returns the row index of a feature.
func (t *Table) Row(feature string) (int, bool) {
	i, ok := t.rows[feature]
	return i, ok
}

// Value returns the cell for feature and identifier.
func (t *Table) Value(feature, identifier string) (float64, bool) {
	r, ok := t.rows[feature]
	if !ok {
		return 0, false
	}
	c, ok := t.Column(identifier)
	if !ok {
		return 0, false
	}
	return c.Float64(r), true
}

// Select returns a table with the columns for which keep returns true,
// in the same order. Column storage is shared with t.
func (t *Table) Select(keep func(name string) bool) *Table {
	columns := make([]Column, 0, len(t.columns))
	byName := make(map[string]int)
	for _, c := range t.columns {
		if keep(c.Name) {
			byName[c.Name] = len(columns)
			columns = append(columns, c)
		}
	}
	return &Table{
		index:    t.index,
		features: t.features,
		rows:     t.rows,
		columns:  columns,
		byName:   byName,
	}
}

// SizeBytes estimates the memory held by the table's cells and labels.
func (t *Table) SizeBytes() int64 {
	var n int64
	for _, f := range t.features {
		n += int64(len(f)) + 16
	}
	for i := range t.columns {
		c := &t.columns[i]
		n += int64(len(c.Name)) + 16
		n += int64(len(c.Ranks))*4 + int64(len(c.Scores))*4
	}
	return n
}

type tableJSON struct {
	Index    string       `json:"index"`
	Features []string     `json:"features"`
	Columns  []columnJSON `json:"columns"`
}

// columnJSON carries the cell type explicitly so that columns without rows
// keep it.
type columnJSON struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Ranks  []int32   `json:"ranks,omitempty"`
	Scores []float32 `json:"scores,omitempty"`
}

func (c *columnJSON) column() (Column, error) {
	switch c.Type {
	case "", Ranks.String():
		if c.Scores != nil {
			return Column{}, fmt.Errorf("table: column %q: scores in a ranks column", c.Name)
		}
		if c.Ranks == nil {
			c.Ranks = []int32{}
		}
		return Column{Name: c.Name, Ranks: c.Ranks}, nil
	case Scores.String():
		if c.Ranks != nil {
			return Column{}, fmt.Errorf("table: column %q: ranks in a scores column", c.Name)
		}
		if c.Scores == nil {
			c.Scores = []float32{}
		}
		return Column{Name: c.Name, Scores: c.Scores}, nil
	default:
		return Column{}, fmt.Errorf("table: column %q: unknown type %q", c.Name, c.Type)
	}
}

// MarshalJSON encodes the table with codec.Default.
func (t *Table) MarshalJSON() ([]byte, error) {
	return t.Encode(codec.Default)
}

// Encode serializes the table with the given codec.
func (t *Table) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	columns := make([]columnJSON, len(t.columns))
	for i := range t.columns {
		col := &t.columns[i]
		columns[i] = columnJSON{Name: col.Name, Type: col.Type().String()}
		if col.Type() == Scores {
			columns[i].Scores = col.Scores
		} else {
			columns[i].Ranks = col.Ranks
		}
	}
	return c.Marshal(tableJSON{
		Index:    t.index,
		Features: t.features,
		Columns:  columns,
	})
}

// Decode parses a table serialized by Encode.
func Decode(c codec.Codec, data []byte) (*Table, error) {
	if c == nil {
		c = codec.Default
	}
	var v tableJSON
	if err := c.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("table: decode: %w", err)
	}
	columns := make([]Column, len(v.Columns))
	for i := range v.Columns {
		col, err := v.Columns[i].column()
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	if v.Features == nil {
		v.Features = []string{}
	}
	return New(v.Index, v.Features, columns)
}
