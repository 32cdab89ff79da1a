// Package processor is the batch conversion engine: directory discovery,
// whole-vs-split routing, batch assembly, and bounded-concurrency dispatch
// of gm batch processes with cancellation and failure aggregation.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DawnLiExplorer/Me2Comic/internal/magick"
)

// GraphicsTool is the slice of the gm wrapper the engine needs.
// *magick.Tool implements it; tests substitute a stub.
type GraphicsTool interface {
	Dimensions(ctx context.Context, paths []string) (map[string]magick.Geometry, error)
	ExecuteBatch(ctx context.Context, script string, reg magick.ProcessRegistry) error
}

// Runner executes one conversion run. Create with NewRunner, start with
// Run, stop early with Cancel. A Runner is single-use; state is run-scoped,
// never package-global, so sequential runs cannot interfere.
type Runner struct {
	tool   GraphicsTool
	params Params
	state  *runState

	mu   sync.Mutex
	stop context.CancelFunc
}

func NewRunner(tool GraphicsTool, params Params) *Runner {
	return &Runner{tool: tool, params: params, state: newRunState()}
}

// Cancel requests a stop. Workers that have not started a batch skip it
// without spawning a process; every gm process alive at this moment is
// signalled and waited for before Cancel returns. Best effort: a process
// midway through a page is terminated, not finished, and partial output
// files are left behind.
func (r *Runner) Cancel() {
	r.state.cancel()

	r.mu.Lock()
	stop := r.stop
	r.mu.Unlock()
	if stop != nil {
		stop()
	}

	r.state.killAll()
}

// Run converts every subdirectory of inputDir into a mirror subdirectory
// of outputDir and blocks until all batches have drained. Progress deltas
// are sent on updates when it is non-nil; the caller owns the channel and
// closes it after Run returns. The returned report is complete whether the
// run finished or was cancelled.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string, updates chan<- ProgressUpdate) (RunReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.mu.Lock()
	r.stop = cancel
	r.mu.Unlock()

	start := time.Now()

	subdirs, unreadable, err := Discover(inputDir)
	if err != nil {
		return RunReport{}, err
	}
	for _, name := range unreadable {
		emit(updates, ProgressUpdate{Note: fmt.Sprintf("%s: unreadable, skipped", name)})
	}

	// Enqueue everything eagerly: all batches across all subdirectories,
	// in discovery order. A subdirectory whose output cannot be created
	// is skipped, not fatal.
	var batches []Batch
	total := 0
	for _, sub := range subdirs {
		if len(sub.Pages) == 0 {
			continue
		}
		outDir := filepath.Join(outputDir, sub.Name)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			emit(updates, ProgressUpdate{Note: fmt.Sprintf("%s: cannot create output directory, skipped", sub.Name)})
			continue
		}
		total += len(sub.Pages)
		batches = append(batches, Assemble(sub, outDir, r.params.BatchSize)...)
	}
	emit(updates, ProgressUpdate{TotalDelta: total})

	jobs := make(chan Batch)
	results := make(chan batchResult)

	// Worker count is the concurrency bound: each worker runs at most one
	// gm process at a time.
	var wg sync.WaitGroup
	wg.Add(r.params.Concurrency)
	for i := 0; i < r.params.Concurrency; i++ {
		go func() {
			defer wg.Done()
			r.worker(ctx, jobs, results, updates)
		}()
	}

	// The collector exclusively owns the aggregate counts, so completion
	// interleaving cannot tear them.
	report := RunReport{}
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			report.Processed += res.processed
			report.Failed = append(report.Failed, res.failed...)
			emit(updates, ProgressUpdate{
				ProcessedDelta: res.processed,
				FailedDelta:    len(res.failed),
			})
		}
	}()

	go func() {
		defer close(jobs)
		for _, b := range batches {
			select {
			case jobs <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	report.Elapsed = time.Since(start)
	report.Cancelled = r.state.isCancelled()
	return report, nil
}

func (r *Runner) worker(ctx context.Context, jobs <-chan Batch, results chan<- batchResult, updates chan<- ProgressUpdate) {
	for b := range jobs {
		if r.state.isCancelled() || ctx.Err() != nil {
			continue
		}
		results <- r.runBatch(ctx, b, updates)
	}
}

// runBatch executes one batch end to end: probe dimensions in a single
// call, route each page, serialize the commands, and feed them to one gm
// batch process. Failures stay inside the batch; the run continues.
func (r *Runner) runBatch(ctx context.Context, b Batch, updates chan<- ProgressUpdate) batchResult {
	emit(updates, ProgressUpdate{Note: fmt.Sprintf("%s: converting %d pages", b.Subdir, len(b.Paths))})

	var res batchResult

	dims, err := r.tool.Dimensions(ctx, b.Paths)
	if err != nil {
		if ctx.Err() != nil {
			// The run is being torn down; nothing here was attempted, so
			// nothing is recorded as failed.
			return res
		}
		// identify could not be spawned; no page in this batch has known
		// dimensions, so all of them fail.
		for _, p := range b.Paths {
			res.failed = append(res.failed, filepath.Base(p))
		}
		return res
	}

	var specs []magick.ConvertSpec
	var routed []string
	for i, path := range b.Paths {
		if r.state.isCancelled() || ctx.Err() != nil {
			return res
		}

		g, ok := dims[path]
		if !ok {
			// Missing from the batched output; retry the page on its own
			// before declaring it failed.
			single, serr := r.tool.Dimensions(ctx, []string{path})
			if serr == nil {
				g, ok = single[path]
			}
			if ctx.Err() != nil {
				return res
			}
		}
		if !ok {
			res.failed = append(res.failed, filepath.Base(path))
			continue
		}

		var stem string
		if i < len(b.Stems) {
			stem = b.Stems[i]
		}
		task := ImageTask{Path: path, OutDir: b.OutDir, Stem: stem, Width: g.Width, Height: g.Height}
		specs = append(specs, Route(task, r.params)...)
		routed = append(routed, path)
	}

	if len(specs) == 0 || r.state.isCancelled() || ctx.Err() != nil {
		return res
	}

	script := magick.BuildScript(specs)
	if err := r.tool.ExecuteBatch(ctx, script, r.state); err != nil {
		// gm's batch mode reports no per-line status, so a failed batch
		// fails every page in it.
		for _, p := range routed {
			res.failed = append(res.failed, filepath.Base(p))
		}
		return res
	}

	res.processed = len(routed)
	return res
}

func emit(updates chan<- ProgressUpdate, u ProgressUpdate) {
	if updates != nil {
		updates <- u
	}
}
