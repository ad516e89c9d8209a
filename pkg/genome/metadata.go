package genome

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names looked up in the GTDB metadata table. Columns are located
// from the header row by name, never by position.
var metadataColumns = []string{
	"genome",
	"gtdb_taxonomy",
	"checkm_completeness",
	"checkm_contamination",
	"checkm_strain_heterogeneity_100",
	"genome_size",
	"contig_count",
	"n50_contigs",
	"scaffold_count",
	"ambiguous_bases",
	"total_gap_length",
	"ssu_count",
	"ssu_length",
	"ncbi_assembly_level",
	"ncbi_genome_representation",
	"ncbi_refseq_category",
	"ncbi_type_material_designation",
	"ncbi_molecule_count",
	"ncbi_unspanned_gaps",
	"ncbi_spanned_gaps",
	"ncbi_genome_category",
	"gtdb_type_designation",
	"mimag_high_quality",
	"gtdb_representative",
	"gtdb_clustered_genomes",
}

// ReadMetadata parses the GTDB genome metadata table into per-genome
// records keyed by genome id. Database prefixes (RS_/GB_) are stripped from
// ids unless keepPrefix is set.
func ReadMetadata(path string, keepPrefix bool) (map[string]*Record, error) {
	f, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range metadataColumns {
		if _, ok := col[name]; !ok {
			return nil, &MalformedReportError{Path: path, Column: name}
		}
	}

	records := make(map[string]*Record)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata row: %w", err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("metadata row for %s is truncated", row[0])
		}

		gid := row[col["genome"]]
		if !keepPrefix {
			gid = CanonicalID(gid)
		}

		rec := &Record{
			Taxonomy:                    splitTaxonomy(row[col["gtdb_taxonomy"]]),
			NCBIAssemblyLevel:           row[col["ncbi_assembly_level"]],
			NCBIGenomeRepresentation:    row[col["ncbi_genome_representation"]],
			NCBIRefseqCategory:          row[col["ncbi_refseq_category"]],
			NCBITypeMaterialDesignation: row[col["ncbi_type_material_designation"]],
			NCBIGenomeCategory:          row[col["ncbi_genome_category"]],
			GTDBTypeDesignation:         row[col["gtdb_type_designation"]],
			MimagHighQuality:            parseBool(row[col["mimag_high_quality"]]),
			GTDBRepresentative:          parseBool(row[col["gtdb_representative"]]),
			GTDBClusteredGenomes:        splitClustered(row[col["gtdb_clustered_genomes"]]),
		}

		p := fieldParser{gid: gid, row: row, col: col}
		rec.CheckMCompleteness = p.requiredFloat("checkm_completeness")
		rec.CheckMContamination = p.requiredFloat("checkm_contamination")
		rec.CheckMStrainHeterogeneity100 = p.requiredFloat("checkm_strain_heterogeneity_100")
		rec.GenomeSize = p.requiredInt("genome_size")
		rec.ContigCount = int(p.requiredInt("contig_count"))
		rec.N50Contigs = int(p.requiredInt("n50_contigs"))
		rec.ScaffoldCount = int(p.requiredInt("scaffold_count"))
		rec.AmbiguousBases = p.requiredInt("ambiguous_bases")
		rec.TotalGapLength = p.requiredInt("total_gap_length")
		rec.SSUCount = p.optionalInt("ssu_count")
		rec.SSULength = p.optionalInt("ssu_length")
		rec.NCBIMoleculeCount = p.optionalInt("ncbi_molecule_count")
		rec.NCBIUnspannedGaps = p.optionalInt("ncbi_unspanned_gaps")
		rec.NCBISpannedGaps = p.optionalInt("ncbi_spanned_gaps")
		if p.err != nil {
			return nil, p.err
		}

		records[gid] = rec
	}

	return records, nil
}

// fieldParser accumulates the first parse failure so record construction
// can stay linear.
type fieldParser struct {
	gid string
	row []string
	col map[string]int
	err error
}

func (p *fieldParser) requiredFloat(field string) float64 {
	if p.err != nil {
		return 0
	}
	s := p.row[p.col[field]]
	if absentValue(s) {
		p.err = &MissingFieldError{Gid: p.gid, Field: field}
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = &MissingFieldError{Gid: p.gid, Field: field}
		return 0
	}
	return v
}

func (p *fieldParser) requiredInt(field string) int64 {
	if p.err != nil {
		return 0
	}
	s := p.row[p.col[field]]
	if absentValue(s) {
		p.err = &MissingFieldError{Gid: p.gid, Field: field}
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.err = &MissingFieldError{Gid: p.gid, Field: field}
		return 0
	}
	return v
}

// optionalInt parses counts that NCBI does not report for user-submitted
// genomes. An absent value is zero; a present but unparseable value is
// still an error.
func (p *fieldParser) optionalInt(field string) int {
	if p.err != nil {
		return 0
	}
	s := p.row[p.col[field]]
	if absentValue(s) {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = &MissingFieldError{Gid: p.gid, Field: field}
		return 0
	}
	return v
}

func absentValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "na", "n/a":
		return true
	}
	return false
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "yes":
		return true
	}
	return false
}

func splitTaxonomy(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	ranks := strings.Split(s, ";")
	for i := range ranks {
		ranks[i] = strings.TrimSpace(ranks[i])
	}
	return ranks
}

func splitClustered(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	gids := strings.Split(s, ";")
	for i := range gids {
		gids[i] = strings.TrimSpace(gids[i])
	}
	return gids
}
