package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

func testThresholds() Thresholds {
	return Thresholds{
		MinCompleteness:  90,
		MaxContamination: 5,
		MinQuality:       50,
		SHException:      80,
		MinMarkerPerc:    90,
		MaxContigs:       1000,
		MinN50:           5000,
		MaxAmbiguous:     100000,
	}
}

func cleanRecord() *genome.Record {
	return &genome.Record{
		Taxonomy:           []string{"d__Bacteria", "p__", "c__", "o__", "f__", "g__", "s__"},
		CheckMCompleteness: 95,
		CheckMContamination: 1,
		ContigCount:        10,
		N50Contigs:         500000,
		AmbiguousBases:     0,
	}
}

func TestPassQCAllCriteriaMet(t *testing.T) {
	var failed FailureCounts

	ok := PassQC(cleanRecord(), 100, testThresholds(), &failed)

	assert.True(t, ok)
	assert.Equal(t, 0, failed.Total())
}

func TestPassQCLowCompletenessFailsRegardless(t *testing.T) {
	rec := cleanRecord()
	rec.CheckMCompleteness = 50
	rec.CheckMContamination = 0

	var failed FailureCounts
	ok := PassQC(rec, 100, testThresholds(), &failed)

	assert.False(t, ok)
	assert.Equal(t, 1, failed.Completeness)
	// quality is 50 - 0 = 50, exactly at the minimum, so only comp fails
	assert.Equal(t, 0, failed.Quality)
}

func TestPassQCMultipleCategories(t *testing.T) {
	rec := cleanRecord()
	rec.CheckMCompleteness = 40
	rec.CheckMContamination = 12
	rec.ContigCount = 2000
	rec.N50Contigs = 1000
	rec.AmbiguousBases = 500000

	var failed FailureCounts
	ok := PassQC(rec, 10, testThresholds(), &failed)

	assert.False(t, ok)
	assert.Equal(t, 1, failed.Completeness)
	assert.Equal(t, 1, failed.Contamination)
	assert.Equal(t, 1, failed.Quality)
	assert.Equal(t, 1, failed.MarkerPerc)
	assert.Equal(t, 1, failed.ContigCount)
	assert.Equal(t, 1, failed.N50)
	assert.Equal(t, 1, failed.AmbiguousBases)
	assert.Equal(t, 7, failed.Total())
}

func TestPassQCStrainHeterogeneityBoundary(t *testing.T) {
	// Contamination of 8 fails the strict path (max 5) but is tolerated on
	// the lenient path (limit 20, quality discounted by heterogeneity).
	rec := cleanRecord()
	rec.CheckMContamination = 8

	// Exactly at the exception threshold: lenient path.
	rec.CheckMStrainHeterogeneity100 = 80
	var failed FailureCounts
	ok := PassQC(rec, 100, testThresholds(), &failed)
	assert.True(t, ok)
	assert.Equal(t, 0, failed.Total())

	// Just below the threshold: strict path.
	rec.CheckMStrainHeterogeneity100 = 79.9
	failed = FailureCounts{}
	ok = PassQC(rec, 100, testThresholds(), &failed)
	assert.False(t, ok)
	assert.Equal(t, 1, failed.Contamination)
}

func TestPassQCLenientPathContaminationCap(t *testing.T) {
	rec := cleanRecord()
	rec.CheckMStrainHeterogeneity100 = 95
	rec.CheckMContamination = 25

	var failed FailureCounts
	ok := PassQC(rec, 100, testThresholds(), &failed)

	assert.False(t, ok)
	assert.Equal(t, 1, failed.Contamination)
}

func TestPassQCLenientQualityDiscount(t *testing.T) {
	// quality = 60 - 5*10*(1 - 90/100) = 55, above the minimum. On the
	// strict path the same genome would score 60 - 50 = 10 and fail.
	rec := cleanRecord()
	rec.CheckMCompleteness = 60
	rec.CheckMContamination = 10
	rec.CheckMStrainHeterogeneity100 = 90

	thresholds := testThresholds()
	thresholds.MinCompleteness = 50
	thresholds.MaxContamination = 20

	var failed FailureCounts
	ok := PassQC(rec, 100, thresholds, &failed)

	assert.True(t, ok)
	assert.Equal(t, 0, failed.Total())
}

func TestFailureCountsMerge(t *testing.T) {
	a := FailureCounts{Completeness: 2, N50: 1}
	b := FailureCounts{Completeness: 1, MarkerPerc: 3}

	a.Merge(b)

	assert.Equal(t, 3, a.Completeness)
	assert.Equal(t, 3, a.MarkerPerc)
	assert.Equal(t, 1, a.N50)
	assert.Equal(t, 7, a.Total())
}

func TestRunBatchQCMatchesSequential(t *testing.T) {
	metadata := make(map[string]*genome.Record)
	markerPerc := make(map[string]float64)
	var gids []string

	for i := 0; i < 50; i++ {
		gid := string(rune('A'+i%26)) + string(rune('0'+i%10))
		rec := cleanRecord()
		if i%3 == 0 {
			rec.CheckMCompleteness = 40
		}
		if i%5 == 0 {
			rec.N50Contigs = 100
		}
		metadata[gid] = rec
		markerPerc[gid] = 100
		gids = append(gids, gid)
	}

	var seqFailed FailureCounts
	seqVerdicts := make(map[string]bool)
	for _, gid := range gids {
		seqVerdicts[gid] = PassQC(metadata[gid], markerPerc[gid], testThresholds(), &seqFailed)
	}

	for _, workers := range []int{1, 4, 16} {
		verdicts, failed, err := RunBatchQC(gids, metadata, markerPerc, testThresholds(), workers)
		require.NoError(t, err)
		assert.Equal(t, seqVerdicts, verdicts)
		assert.Equal(t, seqFailed, failed)
	}
}

func TestRunBatchQCMissingMarkerPercentage(t *testing.T) {
	metadata := map[string]*genome.Record{"GCF_1": cleanRecord()}

	_, _, err := RunBatchQC([]string{"GCF_1"}, metadata, map[string]float64{}, testThresholds(), 2)

	var missing *genome.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "GCF_1", missing.Gid)
}
