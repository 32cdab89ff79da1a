package magick

import (
	"strings"
	"testing"
)

func TestBuildConvertWholePage(t *testing.T) {
	spec := ConvertSpec{
		Input:        "/in/vol1/page001.jpg",
		Output:       "/out/vol1/page001.jpg",
		ResizeHeight: 1920,
		Quality:      85,
	}

	got := BuildConvert(spec)
	want := `convert "/in/vol1/page001.jpg" -resize x1920 -quality 85 "/out/vol1/page001.jpg"`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBuildConvertAllClauses(t *testing.T) {
	spec := ConvertSpec{
		Input:        "/in/spread.png",
		Output:       "/out/spread-1.jpg",
		Crop:         &Crop{Width: 1500, Height: 2133, XOffset: 1500, YOffset: 0},
		ResizeHeight: 1920,
		Quality:      90,
		Grayscale:    true,
		Sharpen:      Sharpen{Radius: 0, Sigma: 1, Amount: 0.8, Threshold: 0.05},
	}

	got := BuildConvert(spec)
	want := `convert "/in/spread.png" -crop 1500x2133+1500+0 -resize x1920` +
		` -colorspace GRAY -unsharp 0x1+0.8+0.05 -quality 90 "/out/spread-1.jpg"`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBuildConvertSharpenDisabledAtZeroAmount(t *testing.T) {
	spec := ConvertSpec{
		Input:        "a.jpg",
		Output:       "b.jpg",
		ResizeHeight: 1000,
		Quality:      80,
		Sharpen:      Sharpen{Radius: 2, Sigma: 1, Amount: 0, Threshold: 0.1},
	}
	if strings.Contains(BuildConvert(spec), "-unsharp") {
		t.Error("unsharp clause must be omitted when amount is zero")
	}
}

func TestBuildConvertEscapesPaths(t *testing.T) {
	spec := ConvertSpec{
		Input:        `/in/he said "hi"\page.jpg`,
		Output:       `/out/he said "hi"\page.jpg`,
		ResizeHeight: 1200,
		Quality:      85,
	}

	got := BuildConvert(spec)
	wantToken := `"/in/he said \"hi\"\\page.jpg"`
	if !strings.Contains(got, wantToken) {
		t.Errorf("escaped input token %s not found in %s", wantToken, got)
	}
}

func TestBuildScript(t *testing.T) {
	specs := []ConvertSpec{
		{Input: "a.jpg", Output: "x.jpg", ResizeHeight: 100, Quality: 80},
		{Input: "b.jpg", Output: "y.jpg", ResizeHeight: 100, Quality: 80},
	}

	script := BuildScript(specs)
	lines := strings.Split(strings.TrimRight(script, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 script lines, got %d: %q", len(lines), script)
	}
	if !strings.HasSuffix(script, "\n") {
		t.Error("script must end with a newline for gm batch")
	}
	if !strings.HasPrefix(lines[0], `convert "a.jpg"`) || !strings.HasPrefix(lines[1], `convert "b.jpg"`) {
		t.Errorf("script lines out of order: %q", lines)
	}
}
