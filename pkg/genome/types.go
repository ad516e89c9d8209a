package genome

// Record holds the per-genome metadata consumed by the QC and scoring
// decisions. Fields mirror the GTDB metadata table; a Record is built once
// at ingestion and never mutated.
type Record struct {
	// Taxonomy is the ordered 7-rank GTDB taxonomy (domain..species),
	// each rank prefixed by its rank letter (d__, p__, ..., s__).
	Taxonomy []string

	// CheckM estimates (percentages, 0-100).
	CheckMCompleteness          float64
	CheckMContamination         float64
	CheckMStrainHeterogeneity100 float64

	// Assembly statistics.
	GenomeSize     int64
	ContigCount    int
	N50Contigs     int
	ScaffoldCount  int
	AmbiguousBases int64
	TotalGapLength int64
	SSUCount       int
	SSULength      int

	// NCBI assembly metadata. String fields are empty when NCBI provides
	// no value (user genomes in particular).
	NCBIAssemblyLevel           string
	NCBIGenomeRepresentation    string
	NCBIRefseqCategory          string
	NCBITypeMaterialDesignation string
	NCBIMoleculeCount           int
	NCBIUnspannedGaps           int
	NCBISpannedGaps             int
	NCBIGenomeCategory          string

	// GTDB curation metadata.
	GTDBTypeDesignation  string
	MimagHighQuality     bool
	GTDBRepresentative   bool
	GTDBClusteredGenomes []string
}

// Domain returns the domain rank of the GTDB taxonomy (e.g. "d__Archaea"),
// or an empty string if the taxonomy is unassigned.
func (r *Record) Domain() string {
	if len(r.Taxonomy) == 0 {
		return ""
	}
	return r.Taxonomy[0]
}

// Species returns the species rank of the GTDB taxonomy. The placeholder
// "s__" means the genome is unassigned at species rank.
func (r *Record) Species() string {
	if len(r.Taxonomy) < 7 {
		return "s__"
	}
	return r.Taxonomy[6]
}
