package sources

import (
	"context"
	"errors"

	"github.com/kerbaras/animes/pkg/data"
)

var (
	// ErrUnsupported is returned when a provider lacks an optional capability.
	ErrUnsupported = errors.New("operation not supported by provider")
	// ErrUnknownProvider is returned by the registry for unregistered names.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Provider supplies search results and episode lists for one remote site.
// Search results carry the provider name, source URL and playlist handle;
// episode lists are fetched separately via the handle.
type Provider interface {
	Search(ctx context.Context, query string) ([]data.Entry, error)
	Episodes(ctx context.Context, playlistID string) ([]int, error)
}

// RecentLister is an optional capability for providers that expose a
// recent-releases feed.
type RecentLister interface {
	Recent(ctx context.Context) ([]data.Entry, error)
}

// Recent lists recent releases from p, or ErrUnsupported if p has no feed.
func Recent(ctx context.Context, p Provider) ([]data.Entry, error) {
	rl, ok := p.(RecentLister)
	if !ok {
		return nil, ErrUnsupported
	}
	return rl.Recent(ctx)
}
