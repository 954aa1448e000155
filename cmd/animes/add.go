package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/services"
)

var addCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Add an anime to your catalog",
	Long:  "Search the provider and add a release to your catalog; re-adding a tracked release refreshes it in place",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		index, _ := cmd.Flags().GetInt("index")

		guard := acquireGuard()
		defer guard.Release()

		provider, err := registry.Get(cfg.DefaultProvider)
		cobra.CheckErr(err)

		fmt.Printf("🔍 Searching for '%s'...\n", query)
		results, err := provider.Search(cmd.Context(), query)
		cobra.CheckErr(err)
		if len(results) == 0 {
			fmt.Println("❌ No results found.")
			return
		}
		if index < 1 || index > len(results) {
			cobra.CheckErr(fmt.Errorf("result index %d out of range (1-%d)", index, len(results)))
		}

		entry := results[index-1]
		fmt.Printf("✅ Found: %s (%s)\n", entry.Title, entry.SourceURL)

		episodes, err := provider.Episodes(cmd.Context(), entry.PlaylistID)
		cobra.CheckErr(err)
		entry.Episodes = episodes

		repo := openRepo()
		defer repo.Close()

		catalog := loadCatalog(repo)
		catalog = services.AddOrReplace(catalog, entry)
		cobra.CheckErr(repo.Save(catalog))

		fmt.Printf("✅ Added '%s' with %d known episodes\n", entry.Title, len(episodes))
	},
}

func init() {
	addCmd.Flags().IntP("index", "i", 1, "Which search result to add (1-based)")

	rootCmd.AddCommand(addCmd)
}
