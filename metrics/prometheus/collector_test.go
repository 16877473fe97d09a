package prometheus

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankdb"
	rtestutil "github.com/hupe1980/rankdb/testutil"
)

func TestCollector(t *testing.T) {
	c := NewCollector("rankdb")
	c.RecordRead("hg38", 3, 10, time.Millisecond, nil)
	c.RecordRead("hg38", 2, 10, time.Millisecond, nil)
	c.RecordRead("hg38", 0, 0, time.Millisecond, errors.New("boom"))
	c.RecordResidentLoad("hg38", 2048, time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.reads.WithLabelValues("hg38", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reads.WithLabelValues("hg38", "error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.readColumns.WithLabelValues("hg38")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(c.residentBytes.WithLabelValues("hg38")))

	expected := `
# HELP rankdb_resident_loads_total Ranking tables materialized in memory
# TYPE rankdb_resident_loads_total counter
rankdb_resident_loads_total{database="hg38",status="ok"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "rankdb_resident_loads_total"))
}

func TestCollector_Register(t *testing.T) {
	reg := prom.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("rankdb")))
}

func TestCollector_WithDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hg38.genes_vs_motifs.rankings.feather")
	rtestutil.WriteFeather(t, path, rtestutil.NewRNG(1).RankingFixture("motifs", 4, 6))

	c := NewCollector("rankdb")
	db, err := rankdb.Open(path, "hg38", rankdb.WithInMemory(), rankdb.WithMetricsCollector(c))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 3; i++ {
		_, err := db.Load(rankdb.NewSignature("s", "gene1", "gene4"))
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(c.reads.WithLabelValues("hg38", "ok")))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.readColumns.WithLabelValues("hg38")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.residentLoads.WithLabelValues("hg38", "ok")))
	assert.Positive(t, testutil.ToFloat64(c.residentBytes.WithLabelValues("hg38")))

	require.NoError(t, db.Close())
	assert.Equal(t, 0.0, testutil.ToFloat64(c.residentBytes.WithLabelValues("hg38")))
}

func TestCollector_ResidentRelease(t *testing.T) {
	c := NewCollector("rankdb")
	c.RecordResidentLoad("hg38", 2048, time.Millisecond, nil)
	c.RecordResidentLoad("hg38", 1024, time.Millisecond, nil)
	c.RecordResidentLoad("hg38", 512, time.Millisecond, errors.New("limit"))
	assert.Equal(t, 3072.0, testutil.ToFloat64(c.residentBytes.WithLabelValues("hg38")))

	c.RecordResidentRelease("hg38", 2048)
	assert.Equal(t, 1024.0, testutil.ToFloat64(c.residentBytes.WithLabelValues("hg38")))
}
