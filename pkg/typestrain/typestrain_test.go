package typestrain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

func TestClassifiersUseDistinctVocabularies(t *testing.T) {
	metadata := map[string]*genome.Record{
		// NCBI type material only.
		"GCF_1": {
			NCBITypeMaterialDesignation: "assembly from type material",
			GTDBTypeDesignation:         "not type material",
		},
		// GTDB type strain only.
		"GCF_2": {
			GTDBTypeDesignation: "type strain of species",
		},
		// Both vocabularies agree.
		"GCF_3": {
			NCBITypeMaterialDesignation: "assembly designated as neotype",
			GTDBTypeDesignation:         "type strain of neotype",
		},
		// Neither: subspecies type material does not count.
		"GCF_4": {
			NCBITypeMaterialDesignation: "assembly from synonym type material",
			GTDBTypeDesignation:         "type strain of subspecies",
		},
	}

	ncbi := NCBITypeStrainOfSpecies(metadata)
	gtdb := GTDBTypeStrainOfSpecies(metadata)

	assert.Contains(t, ncbi, "GCF_1")
	assert.NotContains(t, gtdb, "GCF_1")

	assert.NotContains(t, ncbi, "GCF_2")
	assert.Contains(t, gtdb, "GCF_2")

	assert.Contains(t, ncbi, "GCF_3")
	assert.Contains(t, gtdb, "GCF_3")

	assert.NotContains(t, ncbi, "GCF_4")
	assert.NotContains(t, gtdb, "GCF_4")
}

func TestNCBIClassifierMatchesExactly(t *testing.T) {
	// Classification is an exact membership test; the quality scorer is
	// the only place designations are matched case-insensitively.
	metadata := map[string]*genome.Record{
		"GCF_1": {NCBITypeMaterialDesignation: "Assembly From Type Material"},
	}

	assert.Empty(t, NCBITypeStrainOfSpecies(metadata))
}

func TestProxytypeIsNotTypeSpecies(t *testing.T) {
	metadata := map[string]*genome.Record{
		"GCF_1": {NCBITypeMaterialDesignation: "assembly from proxytype material"},
	}

	assert.Empty(t, NCBITypeStrainOfSpecies(metadata))
}
