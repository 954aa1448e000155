package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the available source providers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range registry.Names() {
			if name == cfg.DefaultProvider {
				fmt.Printf("%s (default)\n", name)
				continue
			}
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
