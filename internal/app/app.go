package app

import (
	"context"
	"io"
	"os"

	"github.com/abdulachik/yearsago/internal/config"
	"github.com/abdulachik/yearsago/internal/db"
	"github.com/abdulachik/yearsago/internal/notify"
	"github.com/abdulachik/yearsago/internal/poster"
	"github.com/abdulachik/yearsago/internal/scheduler"
)

// App is the main application container holding all dependencies.
type App struct {
	Config      *config.Config
	Env         *config.Env
	Client      poster.Client
	History     *db.Store // nil when history is disabled
	Rescheduler *scheduler.Rescheduler
	Notifier    notify.Notifier
}

// Options holds per-run switches.
type Options struct {
	DryRun bool
	Out    io.Writer
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config, env *config.Env, opts Options) (*App, error) {
	client := poster.NewTumblrClient(poster.TumblrConfig{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		Token:          cfg.OAuthToken,
		TokenSecret:    cfg.OAuthTokenSecret,
		BaseURL:        env.APIBaseURL,
		Timeout:        env.HTTPTimeout,
	})

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	a := &App{
		Config:   cfg,
		Env:      env,
		Client:   client,
		Notifier: notify.NewConsoleNotifier(out),
	}

	schedCfg := scheduler.Config{
		Client:   client,
		Blog:     cfg.Blog,
		YearsAgo: cfg.YearsAgo,
		DryRun:   opts.DryRun,
	}

	if env.HistoryPath != "" {
		store, err := db.Open(ctx, env.HistoryPath)
		if err != nil {
			return nil, err
		}
		a.History = store
		schedCfg.Recorder = store
	}

	a.Rescheduler = scheduler.New(schedCfg)

	return a, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}
