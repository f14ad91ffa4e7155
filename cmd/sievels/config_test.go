package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSievelsTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "mail", "filters")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := filepath.Join(root, "sievels.toml")
	if err := os.WriteFile(manifest, []byte("[settings]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, ok, err := findSievelsToml(nested)
	if err != nil {
		t.Fatalf("findSievelsToml: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if path != manifest {
		t.Fatalf("path = %q, want %q", path, manifest)
	}
}

func TestLoadSettingsDefaultsWithoutManifest(t *testing.T) {
	cfg, err := loadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if !cfg.ProtonExtensions || cfg.MaxErrors != 100 || !cfg.SemanticAnalysis {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadSettingsManifestOverrides(t *testing.T) {
	dir := t.TempDir()
	manifest := "[settings]\nproton_extensions = false\nmax_errors = 7\n"
	if err := os.WriteFile(filepath.Join(dir, "sievels.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadSettings(dir)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.ProtonExtensions {
		t.Errorf("proton_extensions not overridden")
	}
	if cfg.MaxErrors != 7 {
		t.Errorf("max_errors = %d, want 7", cfg.MaxErrors)
	}
	// Keys the manifest omits keep their defaults.
	if !cfg.SemanticAnalysis {
		t.Errorf("semantic_analysis should keep its default")
	}
}

func TestLoadSettingsRejectsBadToml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sievels.toml"), []byte("[settings\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadSettings(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
