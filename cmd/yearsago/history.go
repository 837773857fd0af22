package main

import (
	"errors"
	"fmt"

	"github.com/abdulachik/yearsago/internal/db"
	"github.com/spf13/cobra"
)

var historyLimit int64

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded reblogs",
	Long: `Display reblogs recorded in the history database.

The database is set with --history or YEARSAGO_HISTORY.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int64VarP(&historyLimit, "limit", "n", 20, "Number of reblogs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := loadEnv()
	if err != nil {
		return err
	}
	if env.HistoryPath == "" {
		return errors.New("no history database configured, set --history or YEARSAGO_HISTORY")
	}

	store, err := db.Open(ctx, env.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	total, err := store.CountReblogs(ctx)
	if err != nil {
		return fmt.Errorf("count reblogs: %w", err)
	}

	reblogs, err := store.ListReblogs(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list reblogs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Reblog History ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", env.HistoryPath)
	fmt.Fprintf(out, "Total: %d\n", total)
	fmt.Fprintln(out)

	for _, r := range reblogs {
		fmt.Fprintf(out, "%s  %s/%s -> %s  publish_on=%s  state=%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.SourceBlog, r.SourcePostID, r.DestinationBlog,
			r.PublishOn, r.State,
		)
	}

	return nil
}
