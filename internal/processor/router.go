package processor

import (
	"path/filepath"
	"strings"

	"github.com/DawnLiExplorer/Me2Comic/internal/magick"
)

// Route decides how one page becomes output files. Pages narrower than
// the width threshold convert whole into <stem>.jpg. Pages at or above it
// are split down the middle into two crops, right half first (-1 suffix)
// then left (-2), matching right-to-left reading order. Output uniqueness
// within a run rests on the stems being unique per subdirectory, which
// Assemble guarantees; a task without a stem falls back to its trimmed
// filename. Pure; no I/O.
func Route(task ImageTask, p Params) []magick.ConvertSpec {
	base := task.Stem
	if base == "" {
		name := filepath.Base(task.Path)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}

	spec := magick.ConvertSpec{
		Input:        task.Path,
		ResizeHeight: p.ResizeHeight,
		Quality:      p.Quality,
		Grayscale:    p.Grayscale,
		Sharpen:      p.Sharpen,
	}

	if task.Width < p.WidthThreshold {
		spec.Output = filepath.Join(task.OutDir, base+".jpg")
		return []magick.ConvertSpec{spec}
	}

	cropWidth := task.Width / 2

	right := spec
	right.Crop = &magick.Crop{Width: cropWidth, Height: task.Height, XOffset: cropWidth}
	right.Output = filepath.Join(task.OutDir, base+"-1.jpg")

	left := spec
	left.Crop = &magick.Crop{Width: cropWidth, Height: task.Height}
	left.Output = filepath.Join(task.OutDir, base+"-2.jpg")

	return []magick.ConvertSpec{right, left}
}
