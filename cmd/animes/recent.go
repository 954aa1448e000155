package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/animes/pkg/sources"
)

var recentCmd = &cobra.Command{
	Use:   "recent [provider]",
	Short: "List recent releases from a provider",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := cfg.DefaultProvider
		if len(args) == 1 {
			name = args[0]
		}
		provider, err := registry.Get(name)
		cobra.CheckErr(err)

		releases, err := sources.Recent(cmd.Context(), provider)
		if errors.Is(err, sources.ErrUnsupported) {
			fmt.Printf("Provider %q does not list recent releases.\n", name)
			return
		}
		cobra.CheckErr(err)
		if len(releases) == 0 {
			fmt.Println("No recent releases.")
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Title", "URL")

		for i, release := range releases {
			t.Row(fmt.Sprintf("%d", i+1), truncateString(release.Title, 48), release.SourceURL)
		}

		fmt.Println(t)
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
