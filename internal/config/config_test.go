package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `workspace:
  root: "/tmp/workspace"

log:
  path: "/tmp/apply.log"
  development: true

apply:
  confirm: true
  dry_run: true
  diff_context: 5
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workspace.Root != "/tmp/workspace" {
		t.Errorf("Workspace.Root = %q, want %q", cfg.Workspace.Root, "/tmp/workspace")
	}
	if cfg.Log.Path != "/tmp/apply.log" {
		t.Errorf("Log.Path = %q, want %q", cfg.Log.Path, "/tmp/apply.log")
	}
	if !cfg.Log.Development {
		t.Error("Log.Development = false, want true")
	}
	if !cfg.Apply.Confirm {
		t.Error("Apply.Confirm = false, want true")
	}
	if !cfg.Apply.DryRun {
		t.Error("Apply.DryRun = false, want true")
	}
	if cfg.Apply.DiffContext != 5 {
		t.Errorf("Apply.DiffContext = %d, want 5", cfg.Apply.DiffContext)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on a missing file should fall back to defaults, got %v", err)
	}
	if cfg.Workspace.Root != "." {
		t.Errorf("Workspace.Root = %q, want %q", cfg.Workspace.Root, ".")
	}
	if cfg.Apply.DiffContext != 3 {
		t.Errorf("Apply.DiffContext = %d, want 3", cfg.Apply.DiffContext)
	}
	if cfg.Apply.Confirm || cfg.Apply.DryRun {
		t.Errorf("apply flags should default off, got %+v", cfg.Apply)
	}
}

func TestLoadDefaultsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	if err := os.WriteFile(configPath, []byte("apply:\n  confirm: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !filepath.IsAbs(cfg.Workspace.Root) {
		t.Errorf("Workspace.Root = %q, want absolute", cfg.Workspace.Root)
	}
	if cfg.Apply.DiffContext != 3 {
		t.Errorf("Apply.DiffContext = %d, want 3", cfg.Apply.DiffContext)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidContent := `workspace:
  root: "/tmp/workspace"
  invalid yaml content [[[
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create invalid config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}
