// Package ani reconciles pairwise average nucleotide identity and
// alignment fraction measurements produced by an external alignment tool.
package ani

// Pair is one directional ANI/AF measurement from a query genome to a
// reference genome.
type Pair struct {
	ANI float64
	AF  float64
}

// Matrix holds directional measurements keyed by (query, reference).
// Either direction of an unordered genome pair may be absent.
type Matrix map[string]map[string]Pair

// Set records a directional measurement.
func (m Matrix) Set(qid, rid string, p Pair) {
	row, ok := m[qid]
	if !ok {
		row = make(map[string]Pair)
		m[qid] = row
	}
	row[rid] = p
}

// Get returns the directional measurement from qid to rid.
func (m Matrix) Get(qid, rid string) (Pair, bool) {
	p, ok := m[qid][rid]
	return p, ok
}

// Genomes returns the set of genome ids appearing in the matrix as either
// query or reference.
func (m Matrix) Genomes() map[string]struct{} {
	gids := make(map[string]struct{}, len(m))
	for qid, row := range m {
		gids[qid] = struct{}{}
		for rid := range row {
			gids[rid] = struct{}{}
		}
	}
	return gids
}

// Symmetric reconciles the two directional measurements between a genome
// pair into one conservative value. If either direction is missing the
// pair is reported as unrelated (0, 0). Otherwise ANI is the larger of the
// two directions, which reduces the chance of splitting a true species
// cluster on one poor alignment, and AF is independently the larger of the
// two directions to accommodate incomplete and contaminated genomes.
func Symmetric(m Matrix, gid1, gid2 string) (float64, float64) {
	cur, okCur := m.Get(gid1, gid2)
	rev, okRev := m.Get(gid2, gid1)
	if !okCur || !okRev {
		return 0.0, 0.0
	}

	ani := cur.ANI
	if rev.ANI > ani {
		ani = rev.ANI
	}

	af := cur.AF
	if rev.AF > af {
		af = rev.AF
	}

	return ani, af
}
