package processor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DawnLiExplorer/Me2Comic/pkg/imgutil"
)

// Subdir is one independent unit of work: an immediate subdirectory of
// the input root and the comic pages inside it, in name order.
type Subdir struct {
	Name  string
	Pages []string
}

// Discover lists the immediate subdirectories of root and the jpg/jpeg/png
// files inside each, one level deep. Non-directory entries at the top
// level are ignored. A subdirectory that cannot be read lands in skipped
// instead of failing the run; only an unreadable root is fatal.
func Discover(root string) (subdirs []Subdir, skipped []string, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("read input directory: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}

		var pages []string
		for _, f := range files {
			if f.IsDir() || !imgutil.IsPage(f.Name()) {
				continue
			}
			pages = append(pages, filepath.Join(dir, f.Name()))
		}
		subdirs = append(subdirs, Subdir{Name: e.Name(), Pages: pages})
	}
	return subdirs, skipped, nil
}
