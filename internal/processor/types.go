package processor

import (
	"time"

	"github.com/DawnLiExplorer/Me2Comic/internal/magick"
)

// Params holds the validated settings for one conversion run. Built once
// from user input and read-only for the run's duration.
type Params struct {
	// WidthThreshold is the split trigger in pixels: pages at least this
	// wide are cut into right/left halves.
	WidthThreshold int
	// ResizeHeight is the output height in pixels; width follows the
	// aspect ratio.
	ResizeHeight int
	// Quality is the JPEG quality, 1-100.
	Quality int
	// Concurrency bounds simultaneous gm processes, 1-6.
	Concurrency int
	// BatchSize is the number of pages per gm batch process, 1-1000.
	BatchSize int
	Grayscale bool
	Sharpen   magick.Sharpen
}

// ImageTask is one input page awaiting routing: its path, the output
// subdirectory it belongs to, and its probed dimensions. Stem is the
// output name without extension or split suffix; when empty, Route
// derives it from the path.
type ImageTask struct {
	Path   string
	OutDir string
	Stem   string
	Width  int
	Height int
}

// Batch is one unit of work for a worker: the pages of a single output
// subdirectory destined for one gm batch process, with one output stem
// per page (parallel slices). Owned exclusively by the worker that
// executes it.
type Batch struct {
	Subdir string
	OutDir string
	Paths  []string
	Stems  []string
}

// batchResult is one executed batch's outcome, sent to the collector.
type batchResult struct {
	processed int
	failed    []string
}

// ProgressUpdate is one delta event on a run's progress stream.
type ProgressUpdate struct {
	TotalDelta     int
	ProcessedDelta int
	FailedDelta    int
	Note           string
}

// RunReport is the final snapshot of a run.
type RunReport struct {
	Processed int
	Failed    []string
	Elapsed   time.Duration
	Cancelled bool
}

// maxFailedShown caps how many failed filenames are displayed.
const maxFailedShown = 10

// FailedDisplay returns the failure list capped for rendering: at most
// the first maxFailedShown names, plus the count of names left out.
func (r RunReport) FailedDisplay() ([]string, int) {
	if len(r.Failed) <= maxFailedShown {
		return r.Failed, 0
	}
	return r.Failed[:maxFailedShown], len(r.Failed) - maxFailedShown
}
