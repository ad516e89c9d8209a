package quality

import (
	"runtime"
	"sync"

	"github.com/gtdbtools/speciestk/pkg/genome"
)

// qcResult carries one genome's QC verdict back from a worker.
type qcResult struct {
	gid    string
	passed bool
	err    error
}

// RunBatchQC applies PassQC to every genome using a pool of workers. Each
// worker owns a private FailureCounts; the partial tallies are merged once
// the pool drains, which yields the same totals as a sequential run for
// any worker count.
func RunBatchQC(gids []string, metadata map[string]*genome.Record, markerPerc map[string]float64,
	t Thresholds, workers int) (map[string]bool, FailureCounts, error) {

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(gids) && len(gids) > 0 {
		workers = len(gids)
	}

	jobs := make(chan string, workers*2)
	results := make(chan qcResult, workers*2)

	partials := make([]FailureCounts, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for gid := range jobs {
				rec, ok := metadata[gid]
				if !ok {
					results <- qcResult{gid: gid, err: &genome.MissingFieldError{Gid: gid, Field: "metadata record"}}
					continue
				}
				perc, ok := markerPerc[gid]
				if !ok {
					results <- qcResult{gid: gid, err: &genome.MissingFieldError{Gid: gid, Field: "marker percentage"}}
					continue
				}

				passed := PassQC(rec, perc, t, &partials[w])
				results <- qcResult{gid: gid, passed: passed}
			}
		}(i)
	}

	go func() {
		for _, gid := range gids {
			jobs <- gid
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	verdicts := make(map[string]bool, len(gids))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		verdicts[res.gid] = res.passed
	}

	var failed FailureCounts
	for _, partial := range partials {
		failed.Merge(partial)
	}

	if firstErr != nil {
		return nil, FailureCounts{}, firstErr
	}

	return verdicts, failed, nil
}
