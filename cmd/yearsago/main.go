package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	historyPath string
)

var rootCmd = &cobra.Command{
	Use:   "yearsago",
	Short: "Queue a reblog of a Tumblr post years after it was posted",
	Long: `yearsago asks for a Tumblr post URL, some text and tags, and queues a
reblog of that post on your blog dated a fixed number of years after the
original.

On first run it creates config.json next to the executable and walks you
through authorizing the app with Tumblr.

Examples:
  yearsago                 # Queue a reblog
  yearsago --dry-run       # Show what would be queued without queueing
  yearsago history         # List reblogs recorded with --history`,
	SilenceUsage: true,
	RunE:         runQueue,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "Record queued reblogs in this sqlite database")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
