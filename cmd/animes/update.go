package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/data"
	"github.com/kerbaras/animes/pkg/services"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check every tracked anime for new episodes and download them",
	Run: func(cmd *cobra.Command, args []string) {
		guard := acquireGuard()
		defer guard.Release()

		repo := openRepo()
		defer repo.Close()

		catalog := loadCatalog(repo)
		if len(catalog) == 0 {
			fmt.Println("📚 Nothing tracked yet. Use 'animes add' to track a release.")
			return
		}

		fetch := func(ctx context.Context, e data.Entry) ([]int, error) {
			provider, err := registry.Get(e.Provider)
			if err != nil {
				return nil, err
			}
			return provider.Episodes(ctx, e.PlaylistID)
		}

		reconciler := services.NewReconciler(repo, logger)
		updates, err := reconciler.DetectUpdates(cmd.Context(), catalog, fetch)
		if errors.Is(err, services.ErrNoUpdates) {
			fmt.Println("✅ Everything is up to date.")
			return
		}
		cobra.CheckErr(err)

		for _, update := range updates {
			fetcher, err := entryFetcher(update.Entry)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", update.Entry.Title, err)
				continue
			}

			downloader := services.NewDownloader(fetcher, cfg.DownloadDir, logger)
			downloader.ShowProgress = true

			fmt.Printf("📥 %s: %d new episode(s)\n", update.Entry.Title, len(update.NewEpisodes))
			results := downloader.DownloadEpisodes(cmd.Context(), update.Entry, update.NewEpisodes)
			printResults(results)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
