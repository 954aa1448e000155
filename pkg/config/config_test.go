package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animes", "config.toml")

	cfg := Config{
		CatalogPath:     "/tmp/catalog.db",
		DownloadDir:     "/tmp/downloads",
		DefaultProvider: "animevost",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Config{DownloadDir: "/somewhere", CatalogPath: Default().CatalogPath, DefaultProvider: Default().DefaultProvider}.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/somewhere", loaded.DownloadDir)
	assert.Equal(t, Default().DefaultProvider, loaded.DefaultProvider)
}
