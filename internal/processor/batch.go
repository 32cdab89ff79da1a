package processor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Assemble splits a subdirectory's pages into consecutive batches of at
// most size pages. Ordering is preserved within and across batches; the
// last batch may be smaller. A non-positive size falls back to
// DefaultBatchSize rather than looping forever.
func Assemble(sub Subdir, outDir string, size int) []Batch {
	if size < 1 {
		size = DefaultBatchSize
	}

	stems := outputStems(sub.Pages)

	var batches []Batch
	for start := 0; start < len(sub.Pages); start += size {
		end := min(start+size, len(sub.Pages))
		batches = append(batches, Batch{
			Subdir: sub.Name,
			OutDir: outDir,
			Paths:  sub.Pages[start:end],
			Stems:  stems[start:end],
		})
	}
	return batches
}

// outputStems derives one output stem per page. Trimming the extension
// can collide (cover.jpg and cover.png would both become cover.jpg), so
// a page whose trimmed stem is already taken keeps its full filename as
// the stem instead, with a numeric suffix as the final fallback. Output
// paths stay unique across the whole subdirectory.
func outputStems(pages []string) []string {
	used := make(map[string]bool, len(pages))
	stems := make([]string, len(pages))

	for i, p := range pages {
		name := filepath.Base(p)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if used[stem] {
			stem = name
		}
		for n := 2; used[stem]; n++ {
			stem = fmt.Sprintf("%s-%d", name, n)
		}
		used[stem] = true
		stems[i] = stem
	}
	return stems
}
