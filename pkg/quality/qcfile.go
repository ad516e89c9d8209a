package quality

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// ReadPassedQC reads the set of genome ids that passed QC from a previously
// written QC file. Only the first column is consulted; the header row is
// skipped.
func ReadPassedQC(path string) (map[string]struct{}, error) {
	f, err := genome.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open QC file: %w", err)
	}
	defer f.Close()

	passed := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		gid := strings.SplitN(line, "\t", 2)[0]
		passed[gid] = struct{}{}
	}

	return passed, scanner.Err()
}
