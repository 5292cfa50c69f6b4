// Package config loads the shell configuration from a YAML file. A missing
// file yields the defaults; a malformed one is an error rather than a silent
// fallback.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"edshell/internal/coordinator"
)

// Config is the on-disk shell configuration.
type Config struct {
	// DropMode is what finishing a tab drag does: "duplicate" keeps the
	// editor in its origin pane, "move" removes it there.
	DropMode string `yaml:"drop_mode"`
	// LayoutPath is where the layout is autosaved on quit and restored from
	// on startup. Empty disables autosave.
	LayoutPath string `yaml:"layout_path"`
	// PreviewLines caps how many content lines a pane renders per editor.
	PreviewLines int `yaml:"preview_lines"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DropMode:     string(coordinator.DropDuplicate),
		LayoutPath:   DefaultLayoutPath(),
		PreviewLines: 200,
	}
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/edshell/config.yaml or its home-directory fallback.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "edshell", "config.yaml")
}

// DefaultLayoutPath returns the standard autosave location for the layout,
// next to the config file.
func DefaultLayoutPath() string {
	p := DefaultPath()
	if p == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(p), "layout.json")
}

// Load reads the config at path, or the defaults when the file does not
// exist. Values the file leaves unset keep their defaults; invalid values are
// errors.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := coordinator.ParseDropMode(c.DropMode); err != nil {
		return err
	}
	if c.PreviewLines < 1 {
		return fmt.Errorf("preview_lines must be at least 1, got %d", c.PreviewLines)
	}
	return nil
}
