package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider configuration and cache state",
	Run: func(_ *cobra.Command, _ []string) {
		svc, _, err := newService()
		cobra.CheckErr(err)

		printJSON(svc.Status())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
