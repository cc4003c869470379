package cmd

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkorolev/skill-scout/internal/aggregator"
)

var searchCmd = &cobra.Command{
	Use:       "search [courses|jobs] <query>",
	Short:     "Search the configured providers and print the ranked result",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"courses", "jobs"},
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 0, "maximum records to return")
	searchCmd.Flags().StringSliceP("providers", "p", nil, "restrict to these providers")
	searchCmd.Flags().String("level", "", "skill level filter (courses)")
	searchCmd.Flags().String("language", "", "language filter (courses)")
	searchCmd.Flags().String("location", "", "location filter (jobs)")
	searchCmd.Flags().Bool("remote", false, "remote-only filter (jobs)")
}

func runSearch(cmd *cobra.Command, kind, query string) {
	svc, zlog, err := newService()
	cobra.CheckErr(err)

	limit, _ := cmd.Flags().GetInt("limit")
	providers, _ := cmd.Flags().GetStringSlice("providers")

	opts := aggregator.SearchOptions{
		Providers: providers,
		Limit:     limit,
	}

	ctx := context.Background()
	switch kind {
	case "courses":
		opts.Level, _ = cmd.Flags().GetString("level")
		opts.Language, _ = cmd.Flags().GetString("language")

		records, err := svc.SearchCourses(ctx, query, opts)
		if err != nil {
			zlog.Fatal("searching courses", zap.Error(err))
		}
		printJSON(records)
	case "jobs":
		opts.Location, _ = cmd.Flags().GetString("location")
		if cmd.Flags().Changed("remote") {
			remote, _ := cmd.Flags().GetBool("remote")
			opts.Remote = &remote
		}

		records, err := svc.SearchJobs(ctx, query, opts)
		if err != nil {
			zlog.Fatal("searching jobs", zap.Error(err))
		}
		printJSON(records)
	default:
		zlog.Fatal("unknown search kind, want courses or jobs", zap.String("kind", kind))
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	cobra.CheckErr(err)
	fmt.Println(string(out))
}
