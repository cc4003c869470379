package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <skill> [skill...]",
	Short: "Recommend courses for one or more skills",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, zlog, err := newService()
		cobra.CheckErr(err)

		level, _ := cmd.Flags().GetString("level")

		recommendations, err := svc.Recommendations(context.Background(), args, level)
		if err != nil {
			zlog.Fatal("building recommendations", zap.Error(err))
		}

		printJSON(recommendations)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().String("level", "", "target skill level (e.g. beginner)")
}
