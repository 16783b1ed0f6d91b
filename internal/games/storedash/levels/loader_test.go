package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbedded(t *testing.T) {
	levels, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() failed: %v", err)
	}
	if len(levels) < 3 {
		t.Fatalf("len(Embedded()) = %d, expected at least 3", len(levels))
	}

	for i := 1; i < len(levels); i++ {
		if levels[i-1].ID >= levels[i].ID {
			t.Errorf("levels not sorted: %q before %q", levels[i-1].ID, levels[i].ID)
		}
	}

	stores := 0
	for _, lvl := range levels {
		if lvl.FilePath != "" {
			t.Errorf("%s: embedded level should have no file path", lvl.ID)
		}
		if lvl.HasStore() {
			stores++
		}
	}
	if stores == 0 {
		t.Error("at least one embedded level should be completable")
	}
}

func TestEmbeddedByID(t *testing.T) {
	lvl, err := EmbeddedByID("main-street")
	if err != nil {
		t.Fatalf("EmbeddedByID() failed: %v", err)
	}
	if lvl.Name != "Main Street" {
		t.Errorf("Name = %q, expected %q", lvl.Name, "Main Street")
	}

	if _, err := EmbeddedByID("nowhere"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("EmbeddedByID(nowhere) error = %v, expected ErrLevelNotFound", err)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.yaml"), "id: bravo\nwidth: 100\n")
	writeFile(t, filepath.Join(root, "nested", "a.yml"), "id: alpha\nwidth: 100\n")
	writeFile(t, filepath.Join(root, "broken.yaml"), "id: broken\nwidth: -1\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a level")

	loader := NewLoader(root)
	levels, skipped, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	if len(levels) != 2 {
		t.Fatalf("len(levels) = %d, expected 2", len(levels))
	}
	if levels[0].ID != "alpha" || levels[1].ID != "bravo" {
		t.Errorf("IDs = %q, %q, expected alpha, bravo", levels[0].ID, levels[1].ID)
	}
	if levels[0].FilePath != filepath.Join(root, "nested", "a.yml") {
		t.Errorf("FilePath = %q", levels[0].FilePath)
	}
	if len(skipped) != 1 || !errors.Is(skipped[0], ErrInvalidLevel) {
		t.Errorf("skipped = %v, expected one invalid level", skipped)
	}

	lvl, err := loader.LoadByID("bravo")
	if err != nil || lvl.ID != "bravo" {
		t.Errorf("LoadByID(bravo) = %v, %v", lvl.ID, err)
	}
	if _, err := loader.LoadByID("charlie"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadByID(charlie) error = %v, expected ErrLevelNotFound", err)
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing"))
	if _, _, err := loader.LoadAll(); err == nil {
		t.Error("LoadAll() on a missing directory should fail")
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadFile() on a missing file should fail")
	}
}

func TestIsLevelFile(t *testing.T) {
	tests := map[string]bool{
		"a.yaml":     true,
		"a.YML":      true,
		"a.yaml.swp": false,
		"a.json":     false,
		"yaml":       false,
	}
	for name, want := range tests {
		if got := IsLevelFile(name); got != want {
			t.Errorf("IsLevelFile(%q) = %v, expected %v", name, got, want)
		}
	}
}
