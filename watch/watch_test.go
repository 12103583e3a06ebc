package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(time.Millisecond, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestDeliversProjectFileWrites(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)
	defer w.Close()

	path := filepath.Join(dir, "show.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for project file write")
	}
}

func TestIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseEndsEventStream(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatal("event delivered after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Events never closed after Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCloseWithUndrainedEvents(t *testing.T) {
	// More writes than the Events buffer holds, never drained; Close
	// must still shut the watcher down cleanly.
	dir := t.TempDir()
	w := newWatcher(t, dir)

	for i := 0; i < 32; i++ {
		name := filepath.Join(dir, fmt.Sprintf("clip-%d.json", i))
		if err := os.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	time.Sleep(100 * time.Millisecond)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events never closed after Close")
		}
	}
}
