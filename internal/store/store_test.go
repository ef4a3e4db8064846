package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "none.json"))

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores", "best.json")
	f := NewFile(path)

	for _, score := range []int{120, 4500} {
		if err := f.Save(score); err != nil {
			t.Fatalf("Save(%d) error = %v", score, err)
		}
		got, err := f.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != score {
			t.Errorf("Load() = %d, want %d", got, score)
		}
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path).Load(); err == nil {
		t.Errorf("Load() on a corrupt file returned no error")
	}
}

func TestDefaultPath(t *testing.T) {
	if got := NewFile("").Path(); got != DefaultFile {
		t.Errorf("Path() = %q, want %q", got, DefaultFile)
	}
}
