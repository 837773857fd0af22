package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize again with Tumblr",
	Long: `Discard the stored access token and run the Tumblr authorization flow
again. Consumer keys, blog and years are kept.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	store := newConfigStore(env, newConsole())

	cfg, err := store.Reauthorize(cmd.Context())
	if err != nil {
		return fmt.Errorf("reauthorize: %w", err)
	}

	slog.Info("access token updated", "path", store.Path(), "blog", cfg.Blog)
	return nil
}
