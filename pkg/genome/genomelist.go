package genome

import (
	"bufio"
	"fmt"
	"strings"
)

// ReadGenomeIDFile reads a genome id list, one id per line. Lines starting
// with '#' are comments; only the first whitespace- or tab-separated token
// of each line is used. Ids prefixed U_ are returned as user genomes,
// everything else as NCBI genomes.
func ReadGenomeIDFile(path string) (ncbi, user map[string]struct{}, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open genome id file: %w", err)
	}
	defer f.Close()

	ncbi = make(map[string]struct{})
	user = make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		var gid string
		if strings.Contains(line, "\t") {
			gid = strings.TrimSpace(strings.SplitN(line, "\t", 2)[0])
		} else {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			gid = fields[0]
		}
		if gid == "" {
			continue
		}

		if strings.HasPrefix(gid, "U_") {
			user[gid] = struct{}{}
		} else {
			ncbi[gid] = struct{}{}
		}
	}

	return ncbi, user, scanner.Err()
}
