// Package typestrain classifies genomes as type material under the NCBI
// and GTDB vocabularies. The two vocabularies are independent and sometimes
// disagree; callers combine the classifications as needed.
package typestrain

import "github.com/gtdbtools/speciestk/pkg/genome"

// NCBI type material designations.
var (
	NCBITypeSpecies = map[string]struct{}{
		"assembly from type material":    {},
		"assembly from neotype material": {},
		"assembly designated as neotype": {},
	}

	NCBIProxyType = map[string]struct{}{
		"assembly from proxytype material": {},
	}

	NCBITypeSubspecies = map[string]struct{}{
		"assembly from synonym type material": {},
	}
)

// GTDB type designations.
var (
	GTDBTypeSpecies = map[string]struct{}{
		"type strain of species": {},
		"type strain of neotype": {},
	}

	GTDBTypeSubspecies = map[string]struct{}{
		"type strain of subspecies":         {},
		"type strain of heterotypic synonym": {},
	}

	GTDBNotTypeMaterial = map[string]struct{}{
		"not type material": {},
	}
)

// NCBITypeStrainOfSpecies returns the genomes whose NCBI type material
// designation marks them as assembled from the type strain of a species.
func NCBITypeStrainOfSpecies(metadata map[string]*genome.Record) map[string]struct{} {
	typeGids := make(map[string]struct{})
	for gid, rec := range metadata {
		if _, ok := NCBITypeSpecies[rec.NCBITypeMaterialDesignation]; ok {
			typeGids[gid] = struct{}{}
		}
	}

	return typeGids
}

// GTDBTypeStrainOfSpecies returns the genomes the GTDB considers type
// strains of a species.
func GTDBTypeStrainOfSpecies(metadata map[string]*genome.Record) map[string]struct{} {
	typeGids := make(map[string]struct{})
	for gid, rec := range metadata {
		if _, ok := GTDBTypeSpecies[rec.GTDBTypeDesignation]; ok {
			typeGids[gid] = struct{}{}
		}
	}

	return typeGids
}
