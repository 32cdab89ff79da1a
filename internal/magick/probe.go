package magick

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Geometry is an image's pixel dimensions.
type Geometry struct {
	Width  int
	Height int
}

// identifyFormat produces one tab-delimited line per input file:
// basename, width, height. gm only knows the basename (%f), so output
// lines are matched back to full paths by ParseIdentify.
const identifyFormat = "%f\t%w\t%h\n"

// Dimensions queries width and height for all paths in one gm identify
// call and returns a map keyed by full input path. Paths missing from the
// output, or with unparseable fields, are simply absent from the result;
// the caller treats absence as "dimensions unknown". The call as a whole
// fails only when gm cannot be spawned at all.
func (t *Tool) Dimensions(ctx context.Context, paths []string) (map[string]Geometry, error) {
	if len(paths) == 0 {
		return map[string]Geometry{}, nil
	}

	args := append([]string{"identify", "-format", identifyFormat}, paths...)
	out, err := exec.CommandContext(ctx, t.path, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("gm identify: %w", err)
		}
		// Non-zero exit still carries lines for every file gm could read;
		// the unreadable ones are reported by their absence.
	}
	return ParseIdentify(out, paths), nil
}

// ParseIdentify matches identify output lines back to the full input
// paths. A basename occurring once matches directly; when inputs share a
// basename, each line is assigned to the first still-unmatched path with
// that basename, in input order. That tie-break is best effort, not a
// guarantee. Malformed lines are skipped.
//
// Exported so the matching policy is testable without a gm binary.
func ParseIdentify(output []byte, paths []string) map[string]Geometry {
	dims := make(map[string]Geometry, len(paths))
	matched := make(map[string]bool, len(paths))

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		w, werr := strconv.Atoi(strings.TrimSpace(fields[1]))
		h, herr := strconv.Atoi(strings.TrimSpace(fields[2]))
		if werr != nil || herr != nil || w <= 0 || h <= 0 {
			continue
		}

		name := fields[0]
		for _, p := range paths {
			if matched[p] || filepath.Base(p) != name {
				continue
			}
			dims[p] = Geometry{Width: w, Height: h}
			matched[p] = true
			break
		}
	}
	return dims
}
