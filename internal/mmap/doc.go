// Package mmap provides read-only memory-mapped access to ranking database files.
//
// A database file is mapped once and shared by every reader of that file.
// Arrow IPC readers are built over the mapped bytes, so pages are faulted in
// from the page cache on demand instead of read up front.
//
//	m, err := mmap.Open("hg38.genes_vs_motifs.rankings.feather")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessRandom)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close is idempotent, but
// callers must ensure no goroutine uses Bytes() after Close returns.
package mmap
