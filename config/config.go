// Package config loads the editor's YAML settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Project ProjectConfig `yaml:"project"`
	Scripts ScriptsConfig `yaml:"scripts"`
	Watch   WatchConfig   `yaml:"watch"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ProjectConfig struct {
	// File is the project document to open and save. Empty means start
	// from the built-in default project.
	File string `yaml:"file"`
	// AutosaveSeconds writes the project back to File on an interval.
	// Zero disables autosave.
	AutosaveSeconds int `yaml:"autosave_seconds"`
}

type ScriptsConfig struct {
	// Dir holds user automation scripts, run on demand alongside the
	// embedded ones.
	Dir string `yaml:"dir"`
}

type WatchConfig struct {
	// Enabled reloads the project file when something else writes it.
	Enabled bool `yaml:"enabled"`
	// DebounceMS collapses bursts of file events into one reload.
	DebounceMS int `yaml:"debounce_ms"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "reelpad",
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 100,
		},
	}
}

// Load reads a YAML config file and fills unset fields from Default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return nil, fmt.Errorf("config: %s: bad window size %dx%d", filename, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = Default().Watch.DebounceMS
	}
	return cfg, nil
}
