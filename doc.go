// Package rankdb provides read-only access to feature ranking databases.
//
// A ranking database is a matrix whose rows are regulatory features (motifs,
// tracks, ...) and whose columns are genes or genomic regions. Each cell holds
// the 0-based rank (or the score) of that gene for that feature. Databases are
// produced by external tools and stored as Feather v2 files.
//
// # Quick Start
//
//	db, err := rankdb.Open("hg38.genes_vs_motifs.rankings.feather", "hg38")
//	if err != nil { ... }
//	defer db.Close()
//
//	sig := rankdb.NewSignature("hypoxia", "VEGFA", "EPO", "CA9")
//	tbl, err := db.Load(sig)
//
// Load reads only the columns of the signature members the database ranks,
// in file order. Members the database does not rank are dropped silently.
//
// # Memory-Resident Databases
//
// NewInMemory (or Open with WithInMemory) reads the full table once and serves
// every later load from memory:
//
//	db, err := rankdb.Open(path, "hg38", rankdb.WithInMemory())
//
// # Thread Budget
//
// Column decoding runs on a bounded number of workers. The budget is read once
// from the RANKDB_THREADS environment variable (default 4, minimum 1) unless
// the host passes its own controller:
//
//	rc := rankdb.NewResourceController(rankdb.ThreadsFromEnv())
//	db, err := rankdb.Open(path, "hg38", rankdb.WithResourceController(rc))
//
// # Thread Safety
//
// Databases are safe for concurrent Load and LoadFull calls.
package rankdb
