package feather

import (
	"math"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hupe1980/rankdb/table"
)

// newColumn returns an empty column typed after field.
func newColumn(field arrow.Field) (table.Column, error) {
	switch field.Type.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return table.Column{Name: field.Name, Ranks: []int32{}}, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return table.Column{Name: field.Name, Scores: []float32{}}, nil
	default:
		return table.Column{}, storageErrorf("column %q: unsupported type %s", field.Name, field.Type)
	}
}

type rankValue interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32
}

func appendRanks[T rankValue](dst []int32, src []T) ([]int32, bool) {
	for _, v := range src {
		w := int64(v)
		if w < math.MinInt32 || w > math.MaxInt32 {
			return dst, false
		}
		dst = append(dst, int32(w))
	}
	return dst, true
}

// appendValues copies the cells of arr onto c. The copy outlives arr.
func appendValues(c *table.Column, arr arrow.Array) error {
	if n := arr.NullN(); n > 0 {
		return storageErrorf("column %q has %d null values", c.Name, n)
	}

	ok := true
	switch a := arr.(type) {
	case *array.Int8:
		c.Ranks, ok = appendRanks(c.Ranks, a.Int8Values())
	case *array.Int16:
		c.Ranks, ok = appendRanks(c.Ranks, a.Int16Values())
	case *array.Int32:
		c.Ranks = append(c.Ranks, a.Int32Values()...)
	case *array.Int64:
		c.Ranks, ok = appendRanks(c.Ranks, a.Int64Values())
	case *array.Uint8:
		c.Ranks, ok = appendRanks(c.Ranks, a.Uint8Values())
	case *array.Uint16:
		c.Ranks, ok = appendRanks(c.Ranks, a.Uint16Values())
	case *array.Uint32:
		c.Ranks, ok = appendRanks(c.Ranks, a.Uint32Values())
	case *array.Float32:
		c.Scores = append(c.Scores, a.Float32Values()...)
	case *array.Float64:
		for _, v := range a.Float64Values() {
			c.Scores = append(c.Scores, float32(v))
		}
	default:
		return storageErrorf("column %q: unsupported type %s", c.Name, arr.DataType())
	}
	if !ok {
		return storageErrorf("column %q: rank out of int32 range", c.Name)
	}
	return nil
}

// appendLabels copies the feature names in arr onto dst.
// Strings are cloned because arr's buffers are released after the batch.
func appendLabels(dst []string, arr arrow.Array) ([]string, error) {
	if n := arr.NullN(); n > 0 {
		return dst, storageErrorf("index column has %d null values", n)
	}

	switch a := arr.(type) {
	case *array.String:
		for i := 0; i < a.Len(); i++ {
			dst = append(dst, strings.Clone(a.Value(i)))
		}
	case *array.LargeString:
		for i := 0; i < a.Len(); i++ {
			dst = append(dst, strings.Clone(a.Value(i)))
		}
	case *array.StringView:
		for i := 0; i < a.Len(); i++ {
			dst = append(dst, strings.Clone(a.Value(i)))
		}
	case *array.Dictionary:
		values, err := appendLabels(nil, a.Dictionary())
		if err != nil {
			return dst, err
		}
		for i := 0; i < a.Len(); i++ {
			dst = append(dst, values[a.GetValueIndex(i)])
		}
	default:
		return dst, storageErrorf("index column: unsupported type %s", arr.DataType())
	}
	return dst, nil
}
