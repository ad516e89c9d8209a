package genome

import "fmt"

// MissingFieldError reports a required metadata field that is absent or
// unparseable for a genome. Scoring and QC abort on the first such error
// rather than silently zeroing the field.
type MissingFieldError struct {
	Gid   string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("genome %s: missing required metadata field %q", e.Gid, e.Field)
}

// MalformedReportError reports a tabular input file that lacks an expected
// header column.
type MalformedReportError struct {
	Path   string
	Column string
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("%s: missing expected column %q", e.Path, e.Column)
}

// InconsistentIDError reports a genome id that appears with its database
// prefix in one input and without it in another. Treating the two spellings
// as different genomes silently corrupts downstream clustering, so this is
// surfaced as an error.
type InconsistentIDError struct {
	Gid string
}

func (e *InconsistentIDError) Error() string {
	return fmt.Sprintf("genome %s: id appears with inconsistent database prefix across inputs", e.Gid)
}
