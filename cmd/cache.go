package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Administer the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [all|course|job|trends]",
	Short: "Drop cached entries immediately, bypassing TTL",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scope := "all"
		if len(args) == 1 {
			scope = args[0]
		}

		svc, zlog, err := newService()
		cobra.CheckErr(err)

		auto, _ := cmd.Flags().GetBool("auto-approve")
		if !auto {
			prompt := promptui.Select{
				Label: fmt.Sprintf("Clear %q cache entries?", scope),
				Items: []string{PromptYes, PromptNo},
			}
			_, answer, err := prompt.Run()
			cobra.CheckErr(err)
			if answer != PromptYes {
				zlog.Info("cache clear aborted")
				return
			}
		}

		dropped := svc.ClearCache(context.Background(), scope)
		zlog.Info("done", zap.Int("entries_dropped", dropped))
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation")
}
