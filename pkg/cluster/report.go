// Package cluster reads and writes the canonical species cluster report
// files exchanged with downstream reporting and visualization steps.
package cluster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// Member is one genome assigned to a cluster representative, together with
// its reconciled ANI/AF to that representative.
type Member struct {
	Gid string
	ANI float64
	AF  float64
}

const clusterHeader = "NCBI species\tType genome\tNo. clustered genomes\tMean ANI\tMin ANI\tMean AF\tMin AF\tClustered genomes"

// WriteClusters writes the species cluster file. Representatives are
// ordered by descending cluster size (id as tie break so output is
// reproducible); the four ANI/AF statistics of an empty cluster are
// written as N/A.
func WriteClusters(path string, clusters map[string][]Member, species map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cluster file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, clusterHeader)

	rids := make([]string, 0, len(clusters))
	for rid := range clusters {
		rids = append(rids, rid)
	}
	sort.Slice(rids, func(i, j int) bool {
		if len(clusters[rids[i]]) != len(clusters[rids[j]]) {
			return len(clusters[rids[i]]) > len(clusters[rids[j]])
		}
		return rids[i] < rids[j]
	})

	for _, rid := range rids {
		members := clusters[rid]

		meanANI, minANI, meanAF, minAF := "N/A", "N/A", "N/A", "N/A"
		if len(members) > 0 {
			var sumANI, sumAF float64
			lowANI, lowAF := members[0].ANI, members[0].AF
			for _, m := range members {
				sumANI += m.ANI
				sumAF += m.AF
				if m.ANI < lowANI {
					lowANI = m.ANI
				}
				if m.AF < lowAF {
					lowAF = m.AF
				}
			}
			meanANI = fmt.Sprintf("%.2f", sumANI/float64(len(members)))
			minANI = fmt.Sprintf("%.2f", lowANI)
			meanAF = fmt.Sprintf("%.2f", sumAF/float64(len(members)))
			minAF = fmt.Sprintf("%.2f", lowAF)
		}

		gids := make([]string, len(members))
		for i, m := range members {
			gids[i] = m.Gid
		}

		sp, ok := species[rid]
		if !ok {
			sp = "unclassified"
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			sp, rid, len(members),
			meanANI, minANI, meanAF, minAF,
			strings.Join(gids, ","))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write cluster file: %w", err)
	}

	return nil
}

// ReadClusters reads a species cluster file back into the representative
// to member-id mapping and the representative to species mapping. Columns
// are located from the header row by name, so the reader tolerates
// reordered columns.
func ReadClusters(path string) (map[string][]string, map[string]string, error) {
	f, err := genome.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cluster file: %w", err)
	}
	defer f.Close()

	return readClusters(f, path)
}

func readClusters(r io.Reader, path string) (map[string][]string, map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("cluster file %s is empty", path)
	}

	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"NCBI species", "Type genome", "No. clustered genomes", "Clustered genomes"} {
		if _, ok := col[name]; !ok {
			return nil, nil, &genome.MalformedReportError{Path: path, Column: name}
		}
	}

	clusters := make(map[string][]string)
	species := make(map[string]string)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < len(header) {
			return nil, nil, fmt.Errorf("cluster file %s: truncated row %q", path, fields[0])
		}

		rid := fields[col["Type genome"]]
		species[rid] = fields[col["NCBI species"]]

		numClustered, err := strconv.Atoi(fields[col["No. clustered genomes"]])
		if err != nil {
			return nil, nil, fmt.Errorf("cluster file %s: bad cluster size for %s: %w", path, rid, err)
		}

		if numClustered > 0 {
			gids := strings.Split(fields[col["Clustered genomes"]], ",")
			for i := range gids {
				gids[i] = strings.TrimSpace(gids[i])
			}
			clusters[rid] = gids
		} else {
			clusters[rid] = []string{}
		}
	}

	return clusters, species, scanner.Err()
}
