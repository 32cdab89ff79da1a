package processor

import (
	"errors"
	"testing"

	"github.com/DawnLiExplorer/Me2Comic/internal/magick"
)

func TestValidateBatchSize(t *testing.T) {
	cases := []struct {
		raw      string
		want     int
		wantWarn bool
	}{
		{"0", DefaultBatchSize, true},
		{"1001", DefaultBatchSize, true},
		{"forty", DefaultBatchSize, true},
		{"", DefaultBatchSize, true},
		{"-5", DefaultBatchSize, true},
		{"1", 1, false},
		{"1000", 1000, false},
		{"40", 40, false},
		{" 25 ", 25, false},
	}

	for _, tc := range cases {
		got, warn := ValidateBatchSize(tc.raw)
		if got != tc.want {
			t.Errorf("ValidateBatchSize(%q) = %d, want %d", tc.raw, got, tc.want)
		}
		if (warn != "") != tc.wantWarn {
			t.Errorf("ValidateBatchSize(%q) warning = %q, wantWarn=%v", tc.raw, warn, tc.wantWarn)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	good := testParams()
	if err := good.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero threshold", func(p *Params) { p.WidthThreshold = 0 }},
		{"zero height", func(p *Params) { p.ResizeHeight = 0 }},
		{"quality low", func(p *Params) { p.Quality = 0 }},
		{"quality high", func(p *Params) { p.Quality = 101 }},
		{"concurrency low", func(p *Params) { p.Concurrency = 0 }},
		{"concurrency high", func(p *Params) { p.Concurrency = 7 }},
		{"batch low", func(p *Params) { p.BatchSize = 0 }},
		{"batch high", func(p *Params) { p.BatchSize = 1001 }},
		{"negative sharpen", func(p *Params) { p.Sharpen = magick.Sharpen{Amount: -1} }},
	}

	for _, m := range mutations {
		p := good
		m.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected error", m.name)
			continue
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error %v does not wrap ErrInvalidParameter", m.name, err)
		}
	}
}
