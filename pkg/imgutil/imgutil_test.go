package imgutil

import "testing"

func TestFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"page001.jpg", KindJPEG},
		{"page001.JPG", KindJPEG},
		{"spread.jpeg", KindJPEG},
		{"cover.png", KindPNG},
		{"cover.PNG", KindPNG},
		{"notes.txt", KindUnknown},
		{"archive.cbz", KindUnknown},
		{"noext", KindUnknown},
		{"dir/page-2.Jpeg", KindJPEG},
	}

	for _, tc := range cases {
		if got := FromPath(tc.path); got != tc.want {
			t.Errorf("FromPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsPage(t *testing.T) {
	if !IsPage("a.jpg") || !IsPage("b.png") {
		t.Error("expected jpg and png to be pages")
	}
	if IsPage("a.gif") || IsPage("b.webp") {
		t.Error("unsupported extensions must not be pages")
	}
}
