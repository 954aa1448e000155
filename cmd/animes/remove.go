package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/services"
)

var removeCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove an anime from your catalog",
	Long:  "Remove the catalog entry at the given position (as shown by 'animes list')",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid index %q", args[0]))
		}

		guard := acquireGuard()
		defer guard.Release()

		repo := openRepo()
		defer repo.Close()

		catalog := loadCatalog(repo)
		removed := ""
		if index >= 1 && index <= len(catalog) {
			removed = catalog[index-1].Title
		}
		catalog, err = services.Remove(catalog, index-1)
		cobra.CheckErr(err)
		cobra.CheckErr(repo.Save(catalog))

		fmt.Printf("🗑  Removed '%s' from the catalog\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
