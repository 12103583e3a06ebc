package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reelpad.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, "project:\n  file: demo.json\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project.File != "demo.json" {
		t.Fatalf("project file = %q", cfg.Project.File)
	}
	if cfg.Window.Width != 1600 || cfg.Window.Height != 900 {
		t.Fatalf("window defaults missing: %+v", cfg.Window)
	}
	if !cfg.Watch.Enabled || cfg.Watch.DebounceMS != 100 {
		t.Fatalf("watch defaults missing: %+v", cfg.Watch)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1280
  height: 720
  title: small
watch:
  enabled: false
  debounce_ms: 250
scripts:
  dir: ./scripts
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Title != "small" {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Watch.Enabled {
		t.Fatal("watch.enabled not overridden")
	}
	if cfg.Watch.DebounceMS != 250 {
		t.Fatalf("debounce = %d", cfg.Watch.DebounceMS)
	}
	if cfg.Scripts.Dir != "./scripts" {
		t.Fatalf("scripts dir = %q", cfg.Scripts.Dir)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	path := writeConfig(t, "window:\n  width: -1\n  height: 720\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative window size")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
