package data

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadBeforeFirstSave(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	catalog := Catalog{
		{Title: "Naruto", SourceURL: "u1", Provider: "animevost", Episodes: []int{1, 2, 3}, PlaylistID: "11"},
		{Title: "Bleach", SourceURL: "u2", Provider: "animevost", Episodes: []int{1}, PlaylistID: "22"},
		{Title: "One Piece", SourceURL: "u3", Provider: "animevost", PlaylistID: "33"},
	}
	require.NoError(t, repo.Save(catalog))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, catalog, loaded, "round-trip must preserve order and attributes")
}

func TestSaveEmptyCatalog(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(nil))

	loaded, err := repo.Load()
	require.NoError(t, err, "an explicitly saved empty catalog is not 'not found'")
	assert.Empty(t, loaded)
}

func TestSaveReplacesPreviousCatalog(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(Catalog{
		{Title: "Naruto", SourceURL: "u1", Provider: "animevost", Episodes: []int{1, 2, 3}, PlaylistID: "11"},
		{Title: "Bleach", SourceURL: "u2", Provider: "animevost", Episodes: []int{4}, PlaylistID: "22"},
	}))

	next := Catalog{
		{Title: "Bleach", SourceURL: "u2", Provider: "animevost", Episodes: []int{4, 5}, PlaylistID: "22"},
	}
	require.NoError(t, repo.Save(next))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, next, loaded)
}

func TestReopenKeepsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	repo, err := Open(path)
	require.NoError(t, err)
	catalog := Catalog{{Title: "Naruto", SourceURL: "u1", Provider: "animevost", Episodes: []int{1, 2}, PlaylistID: "11"}}
	require.NoError(t, repo.Save(catalog))
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, catalog, loaded)
}
