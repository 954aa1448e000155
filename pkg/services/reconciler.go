package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kerbaras/animes/pkg/data"
)

var (
	// ErrIndexOutOfRange is returned for catalog positions that do not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoUpdates signals that no tracked entry gained episodes. It is a
	// normal "nothing to do" outcome, not a defect.
	ErrNoUpdates = errors.New("no updates available")
)

// CatalogStore is the persistence interface needed by the reconciler.
type CatalogStore interface {
	Save(c data.Catalog) error
}

// FetchFunc re-fetches the current episode list for an entry from its
// provider.
type FetchFunc func(ctx context.Context, e data.Entry) ([]int, error)

// Update pairs an entry (with its episode list already refreshed) with the
// episodes that appeared since the last sync.
type Update struct {
	Entry       data.Entry
	NewEpisodes []int
}

// AddOrReplace inserts e into the catalog. If an entry with the same identity
// key exists it is replaced at the position it already occupies, otherwise e
// is appended. The result is not persisted here.
func AddOrReplace(c data.Catalog, e data.Entry) data.Catalog {
	if i := c.IndexOf(e); i >= 0 {
		c[i] = e
		return c
	}
	return append(c, e)
}

// Remove deletes the entry at index, shifting later entries down.
func Remove(c data.Catalog, index int) (data.Catalog, error) {
	if index < 0 || index >= len(c) {
		return nil, fmt.Errorf("position %d: %w", index, ErrIndexOutOfRange)
	}
	return append(c[:index], c[index+1:]...), nil
}

// Reconciler keeps catalog entries in sync with their providers.
type Reconciler struct {
	store  CatalogStore
	logger *zap.Logger
}

func NewReconciler(store CatalogStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// DetectUpdates re-fetches the episode list of every entry and reports the
// entries that gained episodes, refreshing their known episodes in place.
// Entries whose fetch fails are skipped with a warning. The updated catalog
// is persisted before results are returned; if nothing changed anywhere,
// DetectUpdates fails with ErrNoUpdates and persists nothing.
func (r *Reconciler) DetectUpdates(ctx context.Context, c data.Catalog, fetch FetchFunc) ([]Update, error) {
	var updates []Update
	for i := range c {
		current, err := fetch(ctx, c[i])
		if err != nil {
			r.logger.Warn("episode list fetch failed, skipping entry",
				zap.String("title", c[i].Title),
				zap.String("provider", c[i].Provider),
				zap.Error(err))
			continue
		}
		added := diffEpisodes(current, c[i].Episodes)
		if len(added) == 0 {
			continue
		}
		c[i].Episodes = current
		updates = append(updates, Update{Entry: c[i], NewEpisodes: added})
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	if err := r.store.Save(c); err != nil {
		return nil, fmt.Errorf("persist updated catalog: %w", err)
	}
	return updates, nil
}

// diffEpisodes returns the episodes in current that are missing from known,
// in the order current lists them.
func diffEpisodes(current, known []int) []int {
	seen := make(map[int]struct{}, len(known))
	for _, n := range known {
		seen[n] = struct{}{}
	}
	var added []int
	for _, n := range current {
		if _, ok := seen[n]; !ok {
			added = append(added, n)
		}
	}
	return added
}
