package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

func scoreRecord() *genome.Record {
	return &genome.Record{
		Taxonomy:           []string{"d__Bacteria", "p__", "c__", "o__", "f__", "g__", "s__"},
		CheckMCompleteness: 90,
		CheckMContamination: 2,
		ContigCount:        100,
		AmbiguousBases:     1000,
	}
}

func scoreOne(t *testing.T, rec *genome.Record) float64 {
	t.Helper()
	scores, err := Score([]string{"GCF_1"}, map[string]*genome.Record{"GCF_1": rec})
	require.NoError(t, err)
	return scores["GCF_1"]
}

func TestScoreBaseline(t *testing.T) {
	// 90 - 5*2 - 5*100/100 - 5*1000/1e5 = 74.95
	assert.InDelta(t, 74.95, scoreOne(t, scoreRecord()), 0.001)
}

func TestScoreMonotonicInCompleteness(t *testing.T) {
	rec := scoreRecord()
	low := scoreOne(t, rec)

	rec.CheckMCompleteness = 99
	high := scoreOne(t, rec)

	assert.Greater(t, high, low)
}

func TestScoreMonotonicDecreasingInContamination(t *testing.T) {
	rec := scoreRecord()
	base := scoreOne(t, rec)

	rec.CheckMContamination = 10
	worse := scoreOne(t, rec)

	assert.Less(t, worse, base)
}

func TestScoreCompleteAssemblyBonus(t *testing.T) {
	rec := scoreRecord()
	rec.NCBIAssemblyLevel = "Complete Genome"
	rec.NCBIGenomeRepresentation = "Full"
	rec.ScaffoldCount = 2
	rec.NCBIMoleculeCount = 2
	rec.NCBIUnspannedGaps = 0
	rec.NCBISpannedGaps = 3
	rec.AmbiguousBases = 1000
	rec.TotalGapLength = 500
	rec.SSUCount = 1

	withBonus := scoreOne(t, rec)

	rec.NCBIUnspannedGaps = 1
	withoutBonus := scoreOne(t, rec)

	assert.InDelta(t, 100, withBonus-withoutBonus, 0.001)
}

func TestScoreTypeMaterialBonuses(t *testing.T) {
	rec := scoreRecord()
	base := scoreOne(t, rec)

	// NCBI type species designation is matched case-insensitively.
	rec.NCBITypeMaterialDesignation = "Assembly from Type Material"
	assert.InDelta(t, base+200, scoreOne(t, rec), 0.001)

	// Proxytype and representative/reference RefSeq category share one
	// +10 bonus rather than stacking.
	rec.NCBITypeMaterialDesignation = "assembly from proxytype material"
	assert.InDelta(t, base+10, scoreOne(t, rec), 0.001)

	rec.NCBIRefseqCategory = "representative genome"
	assert.InDelta(t, base+10, scoreOne(t, rec), 0.001)

	rec.NCBITypeMaterialDesignation = ""
	assert.InDelta(t, base+10, scoreOne(t, rec), 0.001)
}

func TestScoreGenomeCategoryPenalties(t *testing.T) {
	rec := scoreRecord()
	base := scoreOne(t, rec)

	rec.NCBIGenomeCategory = "derived from metagenome"
	assert.InDelta(t, base-200, scoreOne(t, rec), 0.001)

	rec.NCBIGenomeCategory = "derived from single cell"
	assert.InDelta(t, base-100, scoreOne(t, rec), 0.001)

	// Both penalties apply together.
	rec.NCBIGenomeCategory = "metagenome; single cell"
	assert.InDelta(t, base-300, scoreOne(t, rec), 0.001)
}

func TestScoreSSULengthByDomain(t *testing.T) {
	rec := scoreRecord()
	base := scoreOne(t, rec)

	// 1000 nt is short of the bacterial cutoff (1200)...
	rec.SSULength = 1000
	assert.InDelta(t, base, scoreOne(t, rec), 0.001)

	rec.SSULength = 1250
	assert.InDelta(t, base+10, scoreOne(t, rec), 0.001)

	// ...but exceeds the archaeal cutoff (900).
	rec.Taxonomy[0] = "d__Archaea"
	rec.SSULength = 1000
	assert.InDelta(t, base+10, scoreOne(t, rec), 0.001)
}

func TestScoreMissingRecord(t *testing.T) {
	_, err := Score([]string{"GCF_9"}, map[string]*genome.Record{})

	var missing *genome.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "GCF_9", missing.Gid)
}
