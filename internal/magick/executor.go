package magick

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ProcessRegistry tracks live gm processes for one run so they can be
// terminated on cancellation. Track is called right after a process
// starts; the returned release func is called once it has exited.
type ProcessRegistry interface {
	Track(cmd *exec.Cmd) (release func())
}

// ExecuteBatch runs one gm batch process, feeding script over stdin. The
// -stop-on-error off mode keeps executing past per-line failures, so a
// non-zero exit reports only that something in the batch went wrong, not
// which line. reg may be nil when no lifecycle tracking is needed.
func (t *Tool) ExecuteBatch(ctx context.Context, script string, reg ProcessRegistry) error {
	cmd := exec.CommandContext(ctx, t.path, "batch", "-stop-on-error", "off", "-")
	cmd.Stdin = strings.NewReader(script)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start gm batch: %w", err)
	}
	if reg != nil {
		release := reg.Track(cmd)
		defer release()
	}

	if err := cmd.Wait(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return fmt.Errorf("gm batch: %w: %s", err, msg)
		}
		return fmt.Errorf("gm batch: %w", err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
