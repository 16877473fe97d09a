package ids

// Kind tags what an identifier names.
type Kind uint8

const (
	// KindUnknown is used when the producer does not say.
	KindUnknown Kind = iota
	// KindGene marks gene identifiers.
	KindGene
	// KindRegion marks genomic region identifiers.
	KindRegion
)

func (k Kind) String() string {
	switch k {
	case KindGene:
		return "gene"
	case KindRegion:
		return "region"
	default:
		return "unknown"
	}
}
