package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kerbaras/animes/pkg/data"
)

type mockFetcher struct {
	episodeURLFunc func(ctx context.Context, playlistID string, episode int) (string, error)
}

func (m *mockFetcher) EpisodeURL(ctx context.Context, playlistID string, episode int) (string, error) {
	return m.episodeURLFunc(ctx, playlistID, episode)
}

func newTestServer(t *testing.T, failEpisode int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var episode int
		fmt.Sscanf(r.URL.Path, "/media/%d.mp4", &episode)
		if episode == failEpisode {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "video-data-%d", episode)
	}))
	t.Cleanup(server.Close)
	return server
}

func serverFetcher(server *httptest.Server) *mockFetcher {
	return &mockFetcher{
		episodeURLFunc: func(ctx context.Context, playlistID string, episode int) (string, error) {
			return fmt.Sprintf("%s/media/%d.mp4", server.URL, episode), nil
		},
	}
}

func TestDownloadOne(t *testing.T) {
	server := newTestServer(t, 0)
	dir := t.TempDir()
	d := NewDownloader(serverFetcher(server), dir, zap.NewNop())

	entry := data.Entry{Title: "Naruto", PlaylistID: "11", Episodes: []int{1, 2, 3}}
	result := d.DownloadOne(context.Background(), entry, 2)

	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Episode)
	assert.Equal(t, filepath.Join(dir, "Naruto", "2.mp4"), result.Path)

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "video-data-2", string(content))

	_, err = os.Stat(result.Path + ".part")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away on success")
}

func TestDownloadOneFreshEpisode(t *testing.T) {
	// Downloading an episode the catalog has not recorded yet must work;
	// new releases are valid targets before a sync.
	server := newTestServer(t, 0)
	d := NewDownloader(serverFetcher(server), t.TempDir(), zap.NewNop())

	entry := data.Entry{Title: "Naruto", PlaylistID: "11", Episodes: []int{1, 2}}
	result := d.DownloadOne(context.Background(), entry, 7)

	require.NoError(t, result.Err)
	assert.Equal(t, 7, result.Episode)
}

func TestDownloadOneServerError(t *testing.T) {
	server := newTestServer(t, 3)
	dir := t.TempDir()
	d := NewDownloader(serverFetcher(server), dir, zap.NewNop())

	entry := data.Entry{Title: "Naruto", PlaylistID: "11"}
	result := d.DownloadOne(context.Background(), entry, 3)

	require.Error(t, result.Err)
	assert.Empty(t, result.Path)

	_, err := os.Stat(filepath.Join(dir, "Naruto", "3.mp4.part"))
	assert.True(t, os.IsNotExist(err), "failed downloads leave no temp file behind")
}

func TestDownloadRangeBatchResilience(t *testing.T) {
	server := newTestServer(t, 3)
	d := NewDownloader(serverFetcher(server), t.TempDir(), zap.NewNop())

	entry := data.Entry{Title: "Naruto", PlaylistID: "11", Episodes: []int{1, 2, 3, 4, 5}}
	spec, err := ParseEpisodeSpec("")
	require.NoError(t, err)

	results := d.DownloadRange(context.Background(), entry, spec)

	require.Len(t, results, 5)
	for i, want := range []int{1, 2, 3, 4, 5} {
		assert.Equal(t, want, results[i].Episode, "results keep the resolved order")
	}
	for _, r := range results {
		if r.Episode == 3 {
			assert.Error(t, r.Err, "episode 3 fails")
			continue
		}
		assert.NoError(t, r.Err, "episode %d succeeds despite the failure of episode 3", r.Episode)
		assert.FileExists(t, r.Path)
	}
}

func TestDownloadRangeSubset(t *testing.T) {
	server := newTestServer(t, 0)
	d := NewDownloader(serverFetcher(server), t.TempDir(), zap.NewNop())

	entry := data.Entry{Title: "Naruto", PlaylistID: "11", Episodes: []int{1, 2, 3, 4, 5}}
	spec, err := ParseEpisodeSpec("2:4")
	require.NoError(t, err)

	results := d.DownloadRange(context.Background(), entry, spec)

	require.Len(t, results, 3)
	for i, want := range []int{2, 3, 4} {
		assert.Equal(t, want, results[i].Episode)
		assert.NoError(t, results[i].Err)
	}
}

func TestDownloadOneResolveFailure(t *testing.T) {
	fetcher := &mockFetcher{
		episodeURLFunc: func(ctx context.Context, playlistID string, episode int) (string, error) {
			return "", fmt.Errorf("playlist gone")
		},
	}
	d := NewDownloader(fetcher, t.TempDir(), zap.NewNop())

	result := d.DownloadOne(context.Background(), data.Entry{Title: "Naruto"}, 1)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "playlist gone")
}
