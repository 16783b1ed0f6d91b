package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name := <-w.Events:
		return name
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a change")
	}
	return ""
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "level.yaml")
	writeFile(t, target, "id: a\nwidth: 100\n")

	w, err := WatchFile(target)
	if err != nil {
		t.Fatalf("WatchFile() failed: %v", err)
	}
	defer w.Close()

	// Changes to other files in the directory are ignored.
	writeFile(t, filepath.Join(dir, "other.yaml"), "id: b\nwidth: 100\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	if err := os.WriteFile(target, []byte("id: a\nwidth: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	name := waitEvent(t, w)
	abs, _ := filepath.Abs(target)
	if got, _ := filepath.Abs(name); got != abs {
		t.Errorf("event for %q, expected %q", name, target)
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v, expected nil", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
}
