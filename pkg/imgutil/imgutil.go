package imgutil

import (
	"path/filepath"
	"strings"
)

// Kind identifies a supported comic page image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	default:
		return "unknown"
	}
}

// FromPath classifies a file by its extension, case-insensitively.
// Only the extensions handed to GraphicsMagick are recognized; everything
// else is KindUnknown. File contents are never inspected.
func FromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return KindJPEG
	case ".png":
		return KindPNG
	default:
		return KindUnknown
	}
}

// IsPage reports whether path looks like a convertible comic page.
func IsPage(path string) bool {
	return FromPath(path) != KindUnknown
}
