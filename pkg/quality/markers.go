package quality

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// ReadMarkerPercentages parses the per-genome marker gene percentages from
// a GTDB domain report. The genome's predicted domain selects whether the
// bacterial or archaeal marker percentage applies. Columns are located by
// header name so the report tolerates reordering.
func ReadMarkerPercentages(path string) (map[string]float64, error) {
	f, err := genome.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open domain report: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("domain report %s is empty", path)
	}

	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	domainIndex := -1
	bacIndex := -1
	arIndex := -1
	for i, name := range header {
		switch name {
		case "Predicted domain":
			domainIndex = i
		case "Bacterial Marker Percentage":
			bacIndex = i
		case "Archaeal Marker Percentage":
			arIndex = i
		}
	}
	if domainIndex < 0 {
		return nil, &genome.MalformedReportError{Path: path, Column: "Predicted domain"}
	}
	if bacIndex < 0 {
		return nil, &genome.MalformedReportError{Path: path, Column: "Bacterial Marker Percentage"}
	}
	if arIndex < 0 {
		return nil, &genome.MalformedReportError{Path: path, Column: "Archaeal Marker Percentage"}
	}

	markerPerc := make(map[string]float64)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= domainIndex || len(fields) <= bacIndex || len(fields) <= arIndex {
			return nil, fmt.Errorf("domain report %s: truncated row %q", path, fields[0])
		}

		gid := fields[0]
		percIndex := arIndex
		if fields[domainIndex] == "d__Bacteria" {
			percIndex = bacIndex
		}

		perc, err := strconv.ParseFloat(fields[percIndex], 64)
		if err != nil {
			return nil, fmt.Errorf("domain report %s: bad marker percentage for %s: %w", path, gid, err)
		}
		markerPerc[gid] = perc
	}

	return markerPerc, scanner.Err()
}
