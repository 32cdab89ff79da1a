package processor

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()

	v1 := filepath.Join(root, "vol1")
	v2 := filepath.Join(root, "vol2")
	for _, d := range []string{v1, v2, filepath.Join(v1, "nested")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	touch(t, filepath.Join(v1, "p1.jpg"))
	touch(t, filepath.Join(v1, "p2.PNG"))
	touch(t, filepath.Join(v1, "notes.txt"))
	touch(t, filepath.Join(v2, "a.jpeg"))
	// Top-level non-directory entries are ignored.
	touch(t, filepath.Join(root, "stray.jpg"))

	subdirs, skipped, err := Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skipped dirs: %v", skipped)
	}
	if len(subdirs) != 2 {
		t.Fatalf("expected 2 subdirs, got %d", len(subdirs))
	}

	if subdirs[0].Name != "vol1" || len(subdirs[0].Pages) != 2 {
		t.Errorf("vol1 = %+v", subdirs[0])
	}
	if subdirs[1].Name != "vol2" || len(subdirs[1].Pages) != 1 {
		t.Errorf("vol2 = %+v", subdirs[1])
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for unreadable root")
	}
}
