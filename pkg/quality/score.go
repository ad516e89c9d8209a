// Package quality scores genome assemblies and applies the QC gate that
// decides whether a genome may participate in species clustering.
package quality

import (
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
	"github.com/gtdbtools/speciestk/pkg/typestrain"
)

// Score calculates a quality score for each requested genome. Higher is
// better; the value is an open-ended tally used to rank genomes when
// selecting a cluster representative.
func Score(gids []string, metadata map[string]*genome.Record) (map[string]float64, error) {
	scores := make(map[string]float64, len(gids))

	for _, gid := range gids {
		rec, ok := metadata[gid]
		if !ok {
			return nil, &genome.MissingFieldError{Gid: gid, Field: "metadata record"}
		}

		// A genome consisting of fully spanned chromosomes and plasmids
		// is considered very high quality.
		var q float64
		if completeAssembly(rec) {
			q = 100
		}

		q += rec.CheckMCompleteness - 5*rec.CheckMContamination

		designation := strings.ToLower(rec.NCBITypeMaterialDesignation)
		if _, ok := typestrain.NCBITypeSpecies[designation]; ok {
			q += 200
		}

		refseqCategory := strings.ToLower(rec.NCBIRefseqCategory)
		_, proxy := typestrain.NCBIProxyType[designation]
		if proxy ||
			strings.Contains(refseqCategory, "representative") ||
			strings.Contains(refseqCategory, "reference") {
			q += 10
		}

		q -= 5 * float64(rec.ContigCount) / 100
		q -= 5 * float64(rec.AmbiguousBases) / 1e5

		category := strings.ToLower(rec.NCBIGenomeCategory)
		if strings.Contains(category, "metagenome") {
			q -= 200
		}
		if strings.Contains(category, "single cell") {
			q -= 100
		}

		// Reward a near-complete 16S rRNA gene. Archaeal 16S genes are
		// shorter, so the length cutoff depends on the domain.
		minSSULen := 1200
		if rec.Domain() == "d__Archaea" {
			minSSULen = 900
		}
		if rec.SSULength >= minSSULen {
			q += 10
		}

		scores[gid] = q
	}

	return scores, nil
}

// completeAssembly reports whether a genome appears to consist entirely of
// unspanned chromosomes and plasmids.
func completeAssembly(rec *genome.Record) bool {
	level := strings.ToLower(rec.NCBIAssemblyLevel)

	return (level == "complete genome" || level == "chromosome") &&
		strings.ToLower(rec.NCBIGenomeRepresentation) == "full" &&
		rec.ScaffoldCount == rec.NCBIMoleculeCount &&
		rec.NCBIUnspannedGaps == 0 &&
		rec.NCBISpannedGaps <= 10 &&
		rec.AmbiguousBases <= 1e4 &&
		rec.TotalGapLength <= 1e4 &&
		rec.SSUCount >= 1
}
