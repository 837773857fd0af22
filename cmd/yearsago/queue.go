package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abdulachik/yearsago/internal/app"
	"github.com/abdulachik/yearsago/internal/input"
	"github.com/abdulachik/yearsago/internal/notify"
	"github.com/abdulachik/yearsago/internal/scheduler"
	"github.com/spf13/cobra"
)

var queueDryRun bool

func init() {
	rootCmd.Flags().BoolVar(&queueDryRun, "dry-run", false, "Show the reblog that would be queued without sending it")
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := loadEnv()
	if err != nil {
		return err
	}

	console := newConsole()

	cfg, err := newConfigStore(env, console).Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg, env, app.Options{
		DryRun: queueDryRun,
		Out:    console.Writer(),
	})
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	console.Printf("Queueing a post %d years later to %s.tumblr.com\n", cfg.YearsAgo, cfg.Blog)

	collector := input.NewCollector(console)

	postURL, err := collector.PostURL()
	if err != nil {
		return err
	}
	content, err := collector.Content()
	if err != nil {
		return err
	}
	tags, err := collector.Tags()
	if err != nil {
		return err
	}

	result, err := a.Rescheduler.Run(ctx, scheduler.Request{
		PostURL: postURL,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		return err
	}

	if !result.Queued {
		preview, err := json.MarshalIndent(result.Reblog, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal preview: %w", err)
		}
		console.Println("[DRY RUN] Would queue:")
		console.Println(string(preview))
		return nil
	}

	slog.Debug("reblog queued", "publish_on", result.Reblog.PublishOn)
	if result.PreviousReblogs > 0 {
		console.Printf("Note: this post was already queued %d time(s) before.\n", result.PreviousReblogs)
	}

	return a.Notifier.Send(ctx, notify.Notification{
		Subject: fmt.Sprintf("reblog of %s/%d queued", result.Source.Blog, result.Source.ID),
		Body:    result.DisplayText,
	})
}
