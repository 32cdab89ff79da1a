package magick

import (
	"fmt"
	"strconv"
	"strings"
)

// Crop is a gm crop rectangle in WIDTHxHEIGHT+XOFF+YOFF form.
type Crop struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
}

// Sharpen holds gm -unsharp parameters. A zero Amount disables the clause.
type Sharpen struct {
	Radius    float64
	Sigma     float64
	Amount    float64
	Threshold float64
}

// ConvertSpec describes one gm convert invocation: one input region to one
// output file. Immutable once created.
type ConvertSpec struct {
	Input        string
	Output       string
	Crop         *Crop
	ResizeHeight int
	Quality      int
	Grayscale    bool
	Sharpen      Sharpen
}

// BuildConvert assembles the command line for one conversion. Token order
// is fixed: input, optional crop, resize-to-height, optional colorspace,
// optional unsharp, quality, output. Pure string assembly.
func BuildConvert(spec ConvertSpec) string {
	parts := make([]string, 0, 14)
	parts = append(parts, "convert", escape(spec.Input))

	if c := spec.Crop; c != nil {
		parts = append(parts, "-crop",
			fmt.Sprintf("%dx%d+%d+%d", c.Width, c.Height, c.XOffset, c.YOffset))
	}

	parts = append(parts, "-resize", "x"+strconv.Itoa(spec.ResizeHeight))

	if spec.Grayscale {
		parts = append(parts, "-colorspace", "GRAY")
	}
	if s := spec.Sharpen; s.Amount > 0 {
		parts = append(parts, "-unsharp",
			fmt.Sprintf("%gx%g+%g+%g", s.Radius, s.Sigma, s.Amount, s.Threshold))
	}

	parts = append(parts, "-quality", strconv.Itoa(spec.Quality), escape(spec.Output))
	return strings.Join(parts, " ")
}

// BuildScript serializes a batch of conversions into the newline-separated
// script consumed by one gm batch process.
func BuildScript(specs []ConvertSpec) string {
	var b strings.Builder
	for _, spec := range specs {
		b.WriteString(BuildConvert(spec))
		b.WriteByte('\n')
	}
	return b.String()
}

// escape quotes a path token for a batch script line. Backslashes are
// doubled and embedded double quotes escaped before the token is wrapped
// in double quotes, since the script is parsed line-oriented by gm.
func escape(token string) string {
	s := strings.ReplaceAll(token, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
