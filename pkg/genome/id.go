package genome

import "strings"

// Origin identifies the database a genome assembly was sourced from, as
// encoded by the id prefix (RS_, GB_ or U_).
type Origin int

const (
	OriginUnknown Origin = iota
	OriginRefSeq
	OriginGenBank
	OriginUser
)

func (o Origin) String() string {
	switch o {
	case OriginRefSeq:
		return "RefSeq"
	case OriginGenBank:
		return "GenBank"
	case OriginUser:
		return "User"
	}
	return "Unknown"
}

// Normalize strips the database prefix from a genome id and reports where
// the genome came from. It is applied once at ingestion boundaries; all
// internal maps are keyed by normalized ids.
func Normalize(gid string) (string, Origin) {
	switch {
	case strings.HasPrefix(gid, "RS_"):
		return gid[len("RS_"):], OriginRefSeq
	case strings.HasPrefix(gid, "GB_"):
		return gid[len("GB_"):], OriginGenBank
	case strings.HasPrefix(gid, "U_"):
		// User ids keep their prefix; it is their only identifier.
		return gid, OriginUser
	}
	return gid, OriginUnknown
}

// CanonicalID strips the database prefix without reporting the origin.
func CanonicalID(gid string) string {
	id, _ := Normalize(gid)
	return id
}

// CheckConsistentIDs verifies that two sets of genome ids use the same
// prefix convention. An id present in both sets only after normalization
// indicates one input was stripped and the other was not.
func CheckConsistentIDs(a, b []string) error {
	inA := make(map[string]bool, len(a))
	normA := make(map[string]string, len(a))
	for _, gid := range a {
		inA[gid] = true
		normA[CanonicalID(gid)] = gid
	}

	for _, gid := range b {
		if inA[gid] {
			continue
		}
		if _, clash := normA[CanonicalID(gid)]; clash {
			return &InconsistentIDError{Gid: gid}
		}
	}

	return nil
}
