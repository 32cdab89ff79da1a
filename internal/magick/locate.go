// Package magick drives the GraphicsMagick "gm" binary: locating and
// verifying it, probing image dimensions, building convert command lines,
// and executing batch scripts. No pixel work happens in-process; gm owns
// all decoding, cropping, resizing, and encoding.
package magick

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sentinel errors for a missing or broken GraphicsMagick installation.
// Both are fatal to a run before any work starts.
var (
	ErrToolNotFound = errors.New("gm binary not found")
	ErrToolUnusable = errors.New("gm binary is not usable")
)

// Known install locations checked before falling back to PATH lookup.
var candidatePaths = []string{
	"/usr/local/bin/gm",
	"/opt/homebrew/bin/gm",
	"/usr/bin/gm",
	"/opt/local/bin/gm",
}

// Package-manager bin directories that are commonly missing from the
// PATH of a non-login shell.
var extraPathDirs = []string{
	"/usr/local/bin",
	"/opt/homebrew/bin",
	"/opt/local/bin",
}

// Locate returns the path of the gm binary. Fixed candidate paths are
// checked first, then the process PATH, then the package-manager bin
// directories. The lookup is read-only.
func Locate() (string, error) {
	for _, p := range candidatePaths {
		if isExecutable(p) {
			return p, nil
		}
	}
	if p, err := exec.LookPath("gm"); err == nil {
		return p, nil
	}
	for _, dir := range extraPathDirs {
		p := filepath.Join(dir, "gm")
		if isExecutable(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("checked known install locations and PATH: %w", ErrToolNotFound)
}

// Verify runs a version query against the binary at path and returns the
// first line of its output for display. A spawn failure or non-zero exit
// means the binary exists but cannot do work.
func Verify(path string) (string, error) {
	out, err := exec.Command(path, "version").Output()
	if err != nil {
		return "", fmt.Errorf("%s version: %v: %w", path, err, ErrToolUnusable)
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(version, '\n'); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	return fi.Mode()&0o111 != 0
}

// Tool is a located gm binary. The zero value is unusable; construct with
// NewTool after Locate/Verify succeed.
type Tool struct {
	path string
}

func NewTool(path string) *Tool {
	return &Tool{path: path}
}

// Path returns the binary location the Tool was built with.
func (t *Tool) Path() string {
	return t.path
}
