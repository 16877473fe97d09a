// Package feather reads ranking databases stored as Feather v2 files.
//
// Feather v2 is the Arrow IPC file format. A ranking database stores one
// column per gene or region plus one index column holding the feature names
// (motifs, tracks, ...). The name of the index column follows from the file
// name; see Resolve.
//
// # Lazy Access
//
// Open only checks that the file exists. The file is memory-mapped and its
// schema read on the first metadata or data request, and the mapping is then
// shared by every read until Close.
//
// # Projection
//
// ReadColumns decodes only the requested columns. Record batches are read
// straight from the mapping: for uncompressed files the buffers of other
// columns are never touched, so a projection faults in only the pages it
// needs. LZ4 or ZSTD compressed batches are decompressed whole by the Arrow
// IPC reader, so projecting a compressed file costs about as much as ReadAll.
// Columns are decoded in parallel, bounded by the decode budget of the
// resource.Controller the reader was opened with, and the buffer bytes of
// every decoded column are charged to its IO budget.
//
//	r, err := feather.Open("hg38.genes_vs_motifs.rankings.feather")
//	if err != nil { ... }
//	defer r.Close()
//
//	tbl, err := r.ReadColumns([]string{r.IndexColumnName(), "TP53", "MYC"})
//
// # Thread Safety
//
// A Reader is safe for concurrent use. Every read builds its own IPC reader
// over the shared mapping.
package feather
