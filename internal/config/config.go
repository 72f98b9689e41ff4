package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Workspace struct {
		Root string `yaml:"root"`
	} `yaml:"workspace"`

	Log struct {
		Path        string `yaml:"path"`        // empty disables file logging
		Development bool   `yaml:"development"` // readable encoder instead of production JSON
	} `yaml:"log"`

	Apply ApplyConfig `yaml:"apply"`
}

// ApplyConfig controls how commits are previewed and written.
type ApplyConfig struct {
	Confirm     bool `yaml:"confirm"`      // ask before writing anything
	DryRun      bool `yaml:"dry_run"`      // never write, preview only
	DiffContext int  `yaml:"diff_context"` // unified diff context lines in previews
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Workspace.Root = "."
	cfg.Apply.DiffContext = 3
	return cfg
}

// Load reads a YAML config file and applies defaults. A missing file is
// not an error; defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = "."
	}
	absRoot, err := filepath.Abs(cfg.Workspace.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	cfg.Workspace.Root = absRoot

	if cfg.Apply.DiffContext == 0 {
		cfg.Apply.DiffContext = 3
	}

	return &cfg, nil
}
