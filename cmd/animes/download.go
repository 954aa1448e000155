package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/services"
)

var downloadCmd = &cobra.Command{
	Use:   "download [index] [episodes]",
	Short: "Download episodes of a tracked anime",
	Long: "Download episodes of the catalog entry at the given position.\n" +
		"Episodes may be a single number (5), a range (3:10), an open range (3: or :10),\n" +
		"or omitted to download every known episode.",
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid index %q", args[0]))
		}
		rawSpec := ""
		if len(args) == 2 {
			rawSpec = args[1]
		}
		spec, err := services.ParseEpisodeSpec(rawSpec)
		cobra.CheckErr(err)

		guard := acquireGuard()
		defer guard.Release()

		repo := openRepo()
		defer repo.Close()

		catalog := loadCatalog(repo)
		if index < 1 || index > len(catalog) {
			cobra.CheckErr(fmt.Errorf("position %d: %w", index, services.ErrIndexOutOfRange))
		}
		entry := catalog[index-1]

		fetcher, err := entryFetcher(entry)
		cobra.CheckErr(err)

		downloader := services.NewDownloader(fetcher, cfg.DownloadDir, logger)
		downloader.ShowProgress = true

		fmt.Printf("📥 Downloading '%s'...\n", entry.Title)
		results := downloader.DownloadRange(cmd.Context(), entry, spec)
		if len(results) == 0 {
			fmt.Println("Nothing to download.")
			return
		}

		failed := printResults(results)
		if failed == len(results) {
			cobra.CheckErr(fmt.Errorf("all %d downloads failed", failed))
		}
	},
}

func printResults(results []services.DownloadResult) (failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("❌ episode %d: %v\n", r.Episode, r.Err)
			continue
		}
		fmt.Printf("✅ episode %d → %s\n", r.Episode, r.Path)
	}
	return failed
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
