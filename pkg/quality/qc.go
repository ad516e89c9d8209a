package quality

import "github.com/gtdbtools/speciestk/pkg/genome"

// Thresholds are the QC acceptance criteria applied to every genome.
type Thresholds struct {
	MinCompleteness  float64
	MaxContamination float64
	MinQuality       float64

	// SHException is the strain heterogeneity at or above which
	// contamination is attributed to conspecific strains and discounted.
	SHException float64

	MinMarkerPerc float64
	MaxContigs    int
	MinN50        int
	MaxAmbiguous  int64
}

// DefaultThresholds returns the QC criteria used for GTDB reference
// releases.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCompleteness:  50,
		MaxContamination: 10,
		MinQuality:       50,
		SHException:      80,
		MinMarkerPerc:    40,
		MaxContigs:       1000,
		MinN50:           5000,
		MaxAmbiguous:     100000,
	}
}

// FailureCounts tallies QC failures by category across a batch. A genome
// failing several criteria increments several counters. Counts from
// parallel workers merge with plain addition.
type FailureCounts struct {
	Completeness   int
	Contamination  int
	Quality        int
	MarkerPerc     int
	ContigCount    int
	N50            int
	AmbiguousBases int
}

// Merge adds the counts from another tally. Addition is commutative, so
// merge order across workers does not matter.
func (c *FailureCounts) Merge(o FailureCounts) {
	c.Completeness += o.Completeness
	c.Contamination += o.Contamination
	c.Quality += o.Quality
	c.MarkerPerc += o.MarkerPerc
	c.ContigCount += o.ContigCount
	c.N50 += o.N50
	c.AmbiguousBases += o.AmbiguousBases
}

// Total returns the number of category failures recorded.
func (c *FailureCounts) Total() int {
	return c.Completeness + c.Contamination + c.Quality +
		c.MarkerPerc + c.ContigCount + c.N50 + c.AmbiguousBases
}

// Counts returns the tally keyed by canonical category name.
func (c *FailureCounts) Counts() map[string]int {
	return map[string]int{
		"comp":         c.Completeness,
		"cont":         c.Contamination,
		"qual":         c.Quality,
		"marker_perc":  c.MarkerPerc,
		"contig_count": c.ContigCount,
		"N50":          c.N50,
		"ambig":        c.AmbiguousBases,
	}
}

// PassQC checks a genome against the QC criteria. All checks are evaluated
// independently so a genome can fail multiple categories in one call; every
// failing category increments the shared tally.
func PassQC(rec *genome.Record, markerPerc float64, t Thresholds, failed *FailureCounts) bool {
	ok := true

	if rec.CheckMCompleteness < t.MinCompleteness {
		failed.Completeness++
		ok = false
	}

	if rec.CheckMStrainHeterogeneity100 >= t.SHException {
		// High strain heterogeneity indicates contamination from
		// conspecific strains rather than foreign DNA, so the
		// contamination penalty is discounted proportionally.
		if rec.CheckMContamination > 20 {
			failed.Contamination++
			ok = false
		}
		q := rec.CheckMCompleteness - 5*rec.CheckMContamination*(1.0-rec.CheckMStrainHeterogeneity100/100.0)
		if q < t.MinQuality {
			failed.Quality++
			ok = false
		}
	} else {
		if rec.CheckMContamination > t.MaxContamination {
			failed.Contamination++
			ok = false
		}
		q := rec.CheckMCompleteness - 5*rec.CheckMContamination
		if q < t.MinQuality {
			failed.Quality++
			ok = false
		}
	}

	if markerPerc < t.MinMarkerPerc {
		failed.MarkerPerc++
		ok = false
	}

	if rec.ContigCount > t.MaxContigs {
		failed.ContigCount++
		ok = false
	}
	if rec.N50Contigs < t.MinN50 {
		failed.N50++
		ok = false
	}
	if rec.AmbiguousBases > t.MaxAmbiguous {
		failed.AmbiguousBases++
		ok = false
	}

	return ok
}
