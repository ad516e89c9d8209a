package cluster

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// Radius describes the ANI boundary of a representative genome: the
// distance to the nearest representative of another species. NeighborGid
// is empty when no neighbor was found.
type Radius struct {
	ANI         float64
	AF          float64
	NeighborGid string
}

const radiusHeader = "NCBI species\tType genome\tANI\tAF\tClosest species\tClosest type genome"

// WriteTypeRadius writes the ANI radius file for a set of representative
// genomes. An absent neighbor is recorded as N/A in both neighbor columns.
func WriteTypeRadius(path string, radius map[string]Radius, species map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create type radius file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, radiusHeader)

	gids := make([]string, 0, len(radius))
	for gid := range radius {
		gids = append(gids, gid)
	}
	sort.Strings(gids)

	for _, gid := range gids {
		r := radius[gid]

		neighborGid := r.NeighborGid
		neighborSp := "N/A"
		if neighborGid == "" {
			neighborGid = "N/A"
		} else if sp, ok := species[neighborGid]; ok {
			neighborSp = sp
		}

		sp, ok := species[gid]
		if !ok {
			sp = "unclassified"
		}

		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
			sp, gid, r.ANI, r.AF, neighborSp, neighborGid)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write type radius file: %w", err)
	}

	return nil
}

// ReadTypeRadius reads an ANI radius file back into the per-representative
// radius and species mappings.
func ReadTypeRadius(path string) (map[string]Radius, map[string]string, error) {
	f, err := genome.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open type radius file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("type radius file %s is empty", path)
	}

	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"NCBI species", "Type genome", "ANI", "AF", "Closest type genome"} {
		if _, ok := col[name]; !ok {
			return nil, nil, &genome.MalformedReportError{Path: path, Column: name}
		}
	}

	radius := make(map[string]Radius)
	species := make(map[string]string)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < len(header) {
			return nil, nil, fmt.Errorf("type radius file %s: truncated row %q", path, fields[0])
		}

		gid := fields[col["Type genome"]]
		species[gid] = fields[col["NCBI species"]]

		aniVal, err := strconv.ParseFloat(fields[col["ANI"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("type radius file %s: bad ANI for %s: %w", path, gid, err)
		}
		afVal, err := strconv.ParseFloat(fields[col["AF"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("type radius file %s: bad AF for %s: %w", path, gid, err)
		}

		neighborGid := fields[col["Closest type genome"]]
		if neighborGid == "N/A" {
			neighborGid = ""
		}

		radius[gid] = Radius{ANI: aniVal, AF: afVal, NeighborGid: neighborGid}
	}

	return radius, species, scanner.Err()
}
