package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trendsCmd = &cobra.Command{
	Use:   "trends <skill> [skill...]",
	Short: "Show job-market analytics for one or more skills",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		svc, zlog, err := newService()
		cobra.CheckErr(err)

		trends, err := svc.MarketTrends(context.Background(), args)
		if err != nil {
			zlog.Fatal("computing market trends", zap.Error(err))
		}

		printJSON(trends)
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}
