package genome

import "strings"

// CanonicalSpecies reduces a species name to its canonical binomial form:
// the Candidatus qualifier is dropped and only the first two words are kept.
func CanonicalSpecies(sp string) string {
	sp = strings.ReplaceAll(sp, "Candidatus ", "")

	fields := strings.Fields(sp)
	if len(fields) > 2 {
		fields = fields[:2]
	}

	return strings.TrimSpace(strings.Join(fields, " "))
}
