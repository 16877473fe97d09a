// Package testutil provides testing utilities for rankdb.
//
// This package is intended for use in tests and benchmarks only. It writes
// Feather v2 ranking databases with the Arrow IPC writer, so tests exercise
// the same file format the reader sees in production.
//
//	rng := testutil.NewRNG(4711)
//	fx := rng.RankingFixture("motifs", 5, 100)
//	testutil.WriteFeather(t, filepath.Join(dir, "hg38.genes_vs_motifs.rankings.feather"), fx)
package testutil
