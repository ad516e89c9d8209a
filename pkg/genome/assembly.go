package genome

import (
	"bufio"
	"fmt"
	"strings"
)

// ReadExcludedFromRefSeq parses the excluded_from_refseq annotation from the
// NCBI RefSeq and GenBank assembly summary files. Accessions are rewritten
// to their prefixed GTDB form (GCF_ -> RS_GCF_, GCA_ -> GB_GCA_) so the
// result can be joined against prefixed metadata ids.
func ReadExcludedFromRefSeq(refseqFile, genbankFile string) (map[string]string, error) {
	excluded := make(map[string]string)

	for _, path := range []string{refseqFile, genbankFile} {
		if err := parseAssemblySummary(path, excluded); err != nil {
			return nil, err
		}
	}

	return excluded, nil
}

func parseAssemblySummary(path string, excluded map[string]string) error {
	f, err := Open(path)
	if err != nil {
		return fmt.Errorf("failed to open assembly summary: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	excludeIndex := -1
	for scanner.Scan() {
		line := scanner.Text()

		// The header is a comment line starting with the accession column.
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "# assembly_accession") {
				header := strings.Split(strings.TrimPrefix(line, "# "), "\t")
				for i, name := range header {
					if name == "excluded_from_refseq" {
						excludeIndex = i
					}
				}
			}
			continue
		}

		if excludeIndex < 0 {
			return &MalformedReportError{Path: path, Column: "excluded_from_refseq"}
		}

		fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		if excludeIndex >= len(fields) {
			continue
		}

		gid := fields[0]
		gid = strings.Replace(gid, "GCA_", "GB_GCA_", 1)
		gid = strings.Replace(gid, "GCF_", "RS_GCF_", 1)
		excluded[gid] = fields[excludeIndex]
	}

	return scanner.Err()
}
