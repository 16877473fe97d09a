// Package ids implements identifier sets for ranking databases.
//
// An identifier names a gene or a genomic region; in a ranking database each
// identifier is a column. A Set maps every identifier to its column position
// in the source file, which is what lets a signature be projected onto the
// database in file order regardless of the order the signature lists its
// members in.
//
//	set, err := ids.New(ids.KindGene, []string{"TP53", "MYC", "SOX2"})
//	cols := set.Select([]string{"SOX2", "TP53", "unknown"}) // ["TP53", "SOX2"]
//
// Sets are immutable and safe for concurrent use.
package ids
