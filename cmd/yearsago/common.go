package main

import (
	"fmt"
	"os"

	"github.com/abdulachik/yearsago/internal/auth"
	"github.com/abdulachik/yearsago/internal/config"
	"github.com/abdulachik/yearsago/internal/prompt"
)

// loadEnv reads process settings and applies command line overrides.
func loadEnv() (*config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if configPath != "" {
		env.ConfigPath = configPath
	}
	if historyPath != "" {
		env.HistoryPath = historyPath
	}

	return env, nil
}

// newConsole returns the prompter used for all interactive input.
func newConsole() *prompt.Prompter {
	return prompt.New(os.Stdin, os.Stdout)
}

func newConfigStore(env *config.Env, p *prompt.Prompter) *config.Store {
	return config.NewStore(config.StoreConfig{
		Path:     env.ConfigPath,
		Prompter: p,
		Tokens: auth.New(auth.Config{
			CallbackURL: env.CallbackURL,
			Prompter:    p,
		}),
	})
}
