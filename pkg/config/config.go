// Package config loads and saves the persisted tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the persisted settings. Every field can be overridden
// per-invocation by a flag; --save-config writes the effective values back.
type Config struct {
	CatalogPath     string `toml:"catalog_path"`
	DownloadDir     string `toml:"download_dir"`
	DefaultProvider string `toml:"default_provider"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		CatalogPath:     filepath.Join(home, ".config", "animes", "catalog.db"),
		DownloadDir:     filepath.Join(home, "Downloads"),
		DefaultProvider: "animevost",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "animes", "config.toml")
}

// Load reads the config at path. A missing file is not an error: the
// defaults are returned and will be materialized by the next Save.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path atomically (temp file, then rename).
func (c Config) Save(path string) error {
	raw, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		os.Remove(temp)
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
