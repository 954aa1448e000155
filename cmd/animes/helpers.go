package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/data"
	"github.com/kerbaras/animes/pkg/lock"
	"github.com/kerbaras/animes/pkg/services"
	"github.com/kerbaras/animes/pkg/sources"
)

// acquireGuard takes the single-instance lock for this session. Callers must
// defer the returned release.
func acquireGuard() lock.Guard {
	guard, err := lock.Acquire(lock.DefaultPath(), logger)
	if errors.Is(err, lock.ErrAlreadyRunning) {
		cobra.CheckErr(fmt.Errorf("another animes session is already running"))
	}
	cobra.CheckErr(err)
	return guard
}

func openRepo() *data.Repository {
	repo, err := data.Open(cfg.CatalogPath)
	cobra.CheckErr(err)
	return repo
}

// loadCatalog reads the persisted catalog, treating a never-saved catalog as
// empty.
func loadCatalog(repo *data.Repository) data.Catalog {
	catalog, err := repo.Load()
	if errors.Is(err, data.ErrNotFound) {
		return nil
	}
	cobra.CheckErr(err)
	return catalog
}

// entryFetcher resolves the entry's provider and its download capability.
func entryFetcher(entry data.Entry) (services.EpisodeFetcher, error) {
	provider, err := registry.Get(entry.Provider)
	if err != nil {
		return nil, err
	}
	fetcher, ok := provider.(services.EpisodeFetcher)
	if !ok {
		return nil, fmt.Errorf("provider %q cannot resolve episode links: %w", entry.Provider, sources.ErrUnsupported)
	}
	return fetcher, nil
}

func truncateString(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}
