// Package batch counts many files concurrently on a fixed pool of workers.
package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/metrics"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

// FileResult is the outcome for one path. Err is nil on success.
type FileResult struct {
	Path   string
	Result wordcount.Result
	Err    error
}

// Summary aggregates a run. Totals cover successful files only.
type Summary struct {
	Files        []FileResult
	TotalWords   int
	TotalMatches int
	Failed       int
}

// Runner dispatches CountWords calls to its workers.
type Runner struct {
	counter wordcount.WordCounter
	workers int
	logger  *slog.Logger
}

// NewRunner returns a Runner with at least one worker.
func NewRunner(counter wordcount.WordCounter, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{counter: counter, workers: workers, logger: logger}
}

type job struct {
	index int
	path  string
}

// Run counts every path against target. Files keeps the order of paths.
// A failing file is recorded and does not stop the others. Once ctx is done
// no further paths are dispatched; those left are recorded with ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string, target string) Summary {
	log := logging.OrDefault(r.logger)
	results := make([]FileResult, len(paths))
	jobs := make(chan job)

	var wg sync.WaitGroup
	workers := min(r.workers, len(paths))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := r.counter.CountWords(j.path, target)
				metrics.RecordCount(res, err)
				if err != nil {
					log.Warn("Failed to count file", "path", j.path, "error", err)
				}
				results[j.index] = FileResult{Path: j.path, Result: res, Err: err}
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(paths); next++ {
		select {
		case jobs <- job{index: next, path: paths[next]}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		results[i] = FileResult{Path: paths[i], Err: ctx.Err()}
	}

	return summarize(results)
}

func summarize(results []FileResult) Summary {
	s := Summary{Files: results}
	for _, fr := range results {
		if fr.Err != nil {
			s.Failed++
			continue
		}
		s.TotalWords += fr.Result.TotalWords
		s.TotalMatches += fr.Result.MatchCount
	}
	return s
}
