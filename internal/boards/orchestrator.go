package boards

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// drainInterval is the cadence of the orchestrator's drain loop. Results are
// pulled off the worker queues this often while workers are alive, then once
// more after the last worker finishes.
const drainInterval = 30 * time.Millisecond

// Generator drives the board database build: parallel fragment scanning,
// maintainer merge and artifact output.
type Generator struct {
	// ConfigDir is the directory containing configuration fragments.
	ConfigDir string

	// SrcDir is the source root containing evaluator definitions and
	// MAINTAINERS files.
	SrcDir string

	// Jobs is the number of scan workers to run concurrently.
	// Values below 1 are treated as 1.
	Jobs int

	// WarnTargets enables the exactly-one-TARGET check during scanning.
	WarnTargets bool

	// NewEvaluator constructs a fragment evaluator. One evaluator is created
	// per worker; implementations need not be safe for concurrent use.
	NewEvaluator func() (Evaluator, error)
}

// discoverFragments lists every fragment file under the config directory,
// excluding hidden files.
func (g *Generator) discoverFragments() ([]string, error) {
	var fragments []string
	err := filepath.WalkDir(g.ConfigDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ConfigSuffix) {
			return nil
		}
		fragments = append(fragments, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover fragments: %w", err)
	}
	return fragments, nil
}

// ScanAll collects board parameters for every fragment under the config
// directory, running Jobs scanner workers concurrently.
//
// The fragment list is split into contiguous near-equal shares, one worker
// per share. Each worker scans its share sequentially and pushes results onto
// its own unbounded queue; the orchestrator drains all queues on a fixed
// cadence while any worker is alive, and performs one final drain after the
// last worker finishes to collect late deliveries.
//
// Ordering across workers is not guaranteed; within one worker, result order
// matches share order. A worker that fails aborts the whole scan with its
// error; there is no partial-result recovery and no cancellation of the
// remaining workers' shares.
//
// Returns the parameter records and the sorted, de-duplicated scan warnings.
func (g *Generator) ScanAll() ([]Params, []string, error) {
	fragments, err := g.discoverFragments()
	if err != nil {
		return nil, nil, err
	}

	jobs := g.Jobs
	if jobs < 1 {
		jobs = 1
	}

	total := len(fragments)
	queues := make([]*resultQueue, jobs)
	var grp errgroup.Group
	for i := 0; i < jobs; i++ {
		// Proportional split: the last share absorbs any remainder.
		share := fragments[total*i/jobs : total*(i+1)/jobs]
		queue := newResultQueue()
		queues[i] = queue

		grp.Go(func() error {
			return g.scanShare(share, queue)
		})
	}

	var params []Params
	warnings := make(map[string]struct{})
	collect := func() {
		for _, queue := range queues {
			for _, res := range queue.drainAll() {
				params = append(params, res.params)
				for _, w := range res.warnings {
					warnings[w] = struct{}{}
				}
			}
		}
	}

	// Drain continuously while workers are alive, then once more after the
	// last one is confirmed finished.
	done := make(chan error, 1)
	go func() { done <- grp.Wait() }()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for waiting := true; waiting; {
		select {
		case err = <-done:
			waiting = false
		case <-ticker.C:
			collect()
		}
	}
	collect()

	if err != nil {
		return nil, nil, err
	}

	sorted := make([]string, 0, len(warnings))
	for w := range warnings {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)
	return params, sorted, nil
}

// scanShare runs one worker: a fresh evaluator scanning a contiguous share of
// the fragment list, pushing each result onto the worker's queue.
func (g *Generator) scanShare(share []string, queue *resultQueue) error {
	eval, err := g.NewEvaluator()
	if err != nil {
		return fmt.Errorf("create evaluator: %w", err)
	}
	scanner := NewScanner(eval, g.WarnTargets)
	for _, fragment := range share {
		params, warns, err := scanner.Scan(fragment)
		if err != nil {
			return err
		}
		queue.push(scanResult{params: params, warnings: warns})
	}
	return nil
}
