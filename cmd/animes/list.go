package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your catalog",
	Long:  "Display the tracked anime in catalog order",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepo()
		defer repo.Close()

		catalog := loadCatalog(repo)
		if len(catalog) == 0 {
			fmt.Println("📚 Nothing tracked yet. Use 'animes add' to track a release.")
			return
		}

		columns := []table.Column{
			{Title: "#", Width: 4},
			{Title: "Title", Width: 40},
			{Title: "Provider", Width: 10},
			{Title: "Episodes", Width: 10},
			{Title: "Latest", Width: 8},
		}

		rows := []table.Row{}
		for i, entry := range catalog {
			latest := "-"
			if n := len(entry.Episodes); n > 0 {
				latest = fmt.Sprintf("%d", entry.Episodes[n-1])
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				truncateString(entry.Title, 38),
				entry.Provider,
				fmt.Sprintf("%d", len(entry.Episodes)),
				latest,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Catalog (%d tracked)\n\n", len(catalog))
		fmt.Println(t.View())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
