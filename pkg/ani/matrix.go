package ani

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// ReadMatrix parses a precomputed ANI/AF matrix from a tab-separated file
// with columns query, reference, ani and af. Columns are located from the
// header row by name.
func ReadMatrix(path string) (Matrix, error) {
	f, err := genome.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ANI matrix: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("ANI matrix %s is empty", path)
	}

	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"query", "reference", "ani", "af"} {
		if _, ok := col[name]; !ok {
			return nil, &genome.MalformedReportError{Path: path, Column: name}
		}
	}

	m := make(Matrix)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < len(header) {
			return nil, fmt.Errorf("ANI matrix %s: truncated row %q", path, fields[0])
		}

		qid := fields[col["query"]]
		rid := fields[col["reference"]]

		aniVal, err := strconv.ParseFloat(fields[col["ani"]], 64)
		if err != nil {
			return nil, fmt.Errorf("ANI matrix %s: bad ani for %s vs %s: %w", path, qid, rid, err)
		}
		afVal, err := strconv.ParseFloat(fields[col["af"]], 64)
		if err != nil {
			return nil, fmt.Errorf("ANI matrix %s: bad af for %s vs %s: %w", path, qid, rid, err)
		}

		m.Set(qid, rid, Pair{ANI: aniVal, AF: afVal})
	}

	return m, scanner.Err()
}

// WriteMatrix persists a matrix as a tab-separated file with one row per
// directional measurement, ordered for reproducible output.
func WriteMatrix(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ANI matrix: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "query\treference\tani\taf")

	qids := make([]string, 0, len(m))
	for qid := range m {
		qids = append(qids, qid)
	}
	sort.Strings(qids)

	for _, qid := range qids {
		rids := make([]string, 0, len(m[qid]))
		for rid := range m[qid] {
			rids = append(rids, rid)
		}
		sort.Strings(rids)

		for _, rid := range rids {
			p := m[qid][rid]
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.4f\n", qid, rid, p.ANI, p.AF)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write ANI matrix: %w", err)
	}

	return nil
}
