package processor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidParameter marks a numeric parameter that fails validation.
// Fatal before any work starts; nothing is converted with bad settings.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	// DefaultBatchSize is substituted when the batch-size input is out of
	// range or unparseable.
	DefaultBatchSize = 40

	maxBatchSize   = 1000
	maxConcurrency = 6
)

// Validate checks every field of p. The first violation is reported;
// all errors wrap ErrInvalidParameter.
func (p Params) Validate() error {
	switch {
	case p.WidthThreshold <= 0:
		return fmt.Errorf("%w: width threshold must be positive, got %d", ErrInvalidParameter, p.WidthThreshold)
	case p.ResizeHeight <= 0:
		return fmt.Errorf("%w: resize height must be positive, got %d", ErrInvalidParameter, p.ResizeHeight)
	case p.Quality < 1 || p.Quality > 100:
		return fmt.Errorf("%w: quality must be in [1,100], got %d", ErrInvalidParameter, p.Quality)
	case p.Concurrency < 1 || p.Concurrency > maxConcurrency:
		return fmt.Errorf("%w: concurrency must be in [1,%d], got %d", ErrInvalidParameter, maxConcurrency, p.Concurrency)
	case p.BatchSize < 1 || p.BatchSize > maxBatchSize:
		return fmt.Errorf("%w: batch size must be in [1,%d], got %d", ErrInvalidParameter, maxBatchSize, p.BatchSize)
	}

	s := p.Sharpen
	if s.Radius < 0 || s.Sigma < 0 || s.Amount < 0 || s.Threshold < 0 {
		return fmt.Errorf("%w: sharpen values must not be negative", ErrInvalidParameter)
	}
	return nil
}

// ValidateBatchSize parses a raw batch-size input. Out-of-range and
// non-numeric values are not fatal: the default is substituted and a
// warning returned for the caller to surface. An empty warning means the
// value was accepted unchanged.
func ValidateBatchSize(raw string) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > maxBatchSize {
		warn := fmt.Sprintf("batch size %q is not in [1,%d]; using default %d", raw, maxBatchSize, DefaultBatchSize)
		return DefaultBatchSize, warn
	}
	return n, ""
}
