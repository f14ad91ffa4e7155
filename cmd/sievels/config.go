package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sievels/internal/settings"
)

// projectConfig mirrors sievels.toml. Only the [settings] table is defined
// today; unknown tables are ignored so the file can grow.
type projectConfig struct {
	Settings settings.Settings `toml:"settings"`
}

// findSievelsToml walks from startDir to the filesystem root looking for a
// sievels.toml.
func findSievelsToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sievels.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadSettings resolves the effective settings for a directory: defaults,
// overridden by the nearest sievels.toml when one exists.
func loadSettings(startDir string) (settings.Settings, error) {
	cfg := projectConfig{Settings: settings.Default()}
	path, ok, err := findSievelsToml(startDir)
	if err != nil {
		return settings.Settings{}, err
	}
	if !ok {
		return cfg.Settings, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return settings.Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Settings.MaxErrors <= 0 {
		cfg.Settings.MaxErrors = settings.Default().MaxErrors
	}
	return cfg.Settings, nil
}
