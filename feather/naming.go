package feather

import (
	"strings"

	"github.com/hupe1980/rankdb/ids"
)

// Index column names.
const (
	IndexMotifs   = "motifs"
	IndexTracks   = "tracks"
	IndexFeatures = "features"
)

// Extension is the file extension of Feather databases.
const Extension = ".feather"

// Rule maps a file name suffix to the index column name and identifier kind
// used by databases with that suffix.
type Rule struct {
	Suffix string
	Index  string
	Kind   ids.Kind
}

// Rules is checked in order; the first matching suffix wins.
var Rules = []Rule{
	{Suffix: ".genes_vs_motifs.rankings.feather", Index: IndexMotifs, Kind: ids.KindGene},
	{Suffix: ".regions_vs_motifs.rankings.feather", Index: IndexMotifs, Kind: ids.KindRegion},
	{Suffix: ".genes_vs_motifs.scores.feather", Index: IndexMotifs, Kind: ids.KindGene},
	{Suffix: ".regions_vs_motifs.scores.feather", Index: IndexMotifs, Kind: ids.KindRegion},
	{Suffix: ".genes_vs_tracks.rankings.feather", Index: IndexTracks, Kind: ids.KindGene},
	{Suffix: ".regions_vs_tracks.rankings.feather", Index: IndexTracks, Kind: ids.KindRegion},
	{Suffix: ".genes_vs_tracks.scores.feather", Index: IndexTracks, Kind: ids.KindGene},
	{Suffix: ".regions_vs_tracks.scores.feather", Index: IndexTracks, Kind: ids.KindRegion},
}

// Fallback applies to files that match no rule.
var Fallback = Rule{Index: IndexFeatures, Kind: ids.KindUnknown}

// Resolve returns the naming rule for path.
func Resolve(path string) Rule {
	for _, r := range Rules {
		if strings.HasSuffix(path, r.Suffix) {
			return r
		}
	}
	return Fallback
}
