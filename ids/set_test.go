package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(KindGene, []string{"geneA", "geneB", "geneC"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, KindGene, s.Kind())
	assert.Equal(t, []string{"geneA", "geneB", "geneC"}, s.Identifiers())
	assert.True(t, s.Contains("geneB"))
	assert.False(t, s.Contains("geneb"))

	p, ok := s.Position("geneC")
	assert.True(t, ok)
	assert.Equal(t, 2, p)

	_, ok = s.Position("geneZ")
	assert.False(t, ok)
}

func TestNew_CopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	s, err := New(KindUnknown, in)
	require.NoError(t, err)

	in[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Identifiers())
}

func TestNew_Duplicate(t *testing.T) {
	_, err := New(KindGene, []string{"a", "b", "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	var de *DuplicateError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "a", de.Identifier)
	assert.Equal(t, 0, de.First)
	assert.Equal(t, 2, de.Second)
}

func TestNew_Empty(t *testing.T) {
	s, err := New(KindRegion, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Select([]string{"x"}))
}

func TestIntersect(t *testing.T) {
	s, err := New(KindGene, []string{"geneA", "geneB", "geneC"})
	require.NoError(t, err)

	got := s.Intersect([]string{"geneZ", "geneB", "geneB"})
	assert.Equal(t, map[string]struct{}{"geneB": {}}, got)

	assert.Empty(t, s.Intersect(nil))
}

func TestSelect_FileOrder(t *testing.T) {
	s, err := New(KindGene, []string{"g0", "g1", "g2", "g3", "g4"})
	require.NoError(t, err)

	got := s.Select([]string{"g4", "missing", "g1", "g3", "g1"})
	assert.Equal(t, []string{"g1", "g3", "g4"}, got)

	bm := s.Positions([]string{"g4", "g0"})
	assert.Equal(t, []uint32{0, 4}, bm.ToArray())
}

func TestSubset_KeepsKind(t *testing.T) {
	s, err := New(KindRegion, []string{"chr1:1-100", "chr1:200-300", "chr2:5-50"})
	require.NoError(t, err)

	sub := s.Subset([]string{"chr2:5-50", "chr1:1-100"})
	assert.Equal(t, KindRegion, sub.Kind())
	assert.Equal(t, []string{"chr1:1-100", "chr2:5-50"}, sub.Identifiers())

	p, ok := sub.Position("chr2:5-50")
	assert.True(t, ok)
	assert.Equal(t, 1, p)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "gene", KindGene.String())
	assert.Equal(t, "region", KindRegion.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
