package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/kerbaras/animes/pkg/data"
)

const maxConcurrentDownloads = 3

// EpisodeFetcher resolves the direct media link for one episode of a
// playlist. Providers that support downloading implement it.
type EpisodeFetcher interface {
	EpisodeURL(ctx context.Context, playlistID string, episode int) (string, error)
}

// DownloadResult is the outcome of one episode download. Err is nil on
// success, in which case Path points at the saved file.
type DownloadResult struct {
	Episode int
	Path    string
	Err     error
}

// Downloader fetches episodes to local storage. It never mutates the
// catalog; episode bookkeeping belongs to the reconciler.
type Downloader struct {
	fetcher EpisodeFetcher
	client  *http.Client
	dir     string
	logger  *zap.Logger

	// ShowProgress renders a per-episode progress bar on stderr.
	ShowProgress bool
}

func NewDownloader(fetcher EpisodeFetcher, dir string, logger *zap.Logger) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		client:  &http.Client{Timeout: 30 * time.Minute},
		dir:     dir,
		logger:  logger,
	}
}

// DownloadRange resolves spec against the entry's known episodes and
// downloads each one. Episodes are attempted independently; one failure
// never aborts its siblings. Results come back in resolved order.
func (d *Downloader) DownloadRange(ctx context.Context, entry data.Entry, spec EpisodeSpec) []DownloadResult {
	return d.DownloadEpisodes(ctx, entry, spec.Resolve(entry.Episodes))
}

// DownloadEpisodes downloads the given episodes of entry concurrently,
// bounded by a small worker pool. Results keep the order of episodes.
func (d *Downloader) DownloadEpisodes(ctx context.Context, entry data.Entry, episodes []int) []DownloadResult {
	results := make([]DownloadResult, len(episodes))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentDownloads)
	for i, episode := range episodes {
		wg.Add(1)
		go func(i, episode int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[i] = d.DownloadOne(ctx, entry, episode)
		}(i, episode)
	}
	wg.Wait()

	return results
}

// DownloadOne fetches a single episode. The file is written next to its
// final name with a ".part" suffix and renamed only once the body has been
// copied completely, so an interrupted download never leaves a file that
// looks finished.
func (d *Downloader) DownloadOne(ctx context.Context, entry data.Entry, episode int) DownloadResult {
	result := DownloadResult{Episode: episode}

	link, err := d.fetcher.EpisodeURL(ctx, entry.PlaylistID, episode)
	if err != nil {
		result.Err = fmt.Errorf("resolve episode %d: %w", episode, err)
		return result
	}

	destDir := filepath.Join(d.dir, sanitizeTitle(entry.Title))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		result.Err = fmt.Errorf("create download dir: %w", err)
		return result
	}
	dest := filepath.Join(destDir, fmt.Sprintf("%d%s", episode, fileExt(link)))
	temp := dest + ".part"

	if err := d.fetchToFile(ctx, link, temp, episode); err != nil {
		os.Remove(temp)
		result.Err = fmt.Errorf("episode %d: %w", episode, err)
		return result
	}
	if err := os.Rename(temp, dest); err != nil {
		os.Remove(temp)
		result.Err = fmt.Errorf("episode %d: %w", episode, err)
		return result
	}

	d.logger.Debug("episode downloaded",
		zap.String("title", entry.Title),
		zap.Int("episode", episode),
		zap.String("path", dest))
	result.Path = dest
	return result
}

func (d *Downloader) fetchToFile(ctx context.Context, link, temp string, episode int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	f, err := os.Create(temp)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if d.ShowProgress {
		bar := progressbar.DefaultBytes(resp.ContentLength, fmt.Sprintf("episode %d", episode))
		defer bar.Close()
		w = io.MultiWriter(f, bar)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return err
	}
	return f.Sync()
}

// fileExt guesses the file extension from the media URL, defaulting to .mp4.
func fileExt(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ".mp4"
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".mp4"
}

// sanitizeTitle makes an entry title safe to use as a directory name.
func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, string(os.PathSeparator), "_")
	if title == "" {
		return "unknown"
	}
	return title
}
