package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stored configuration",
	Long:  `Print the config file location and its contents with secrets masked.`,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	store := newConfigStore(env, newConsole())

	cfg, err := store.Read()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	data, err := json.MarshalIndent(cfg.Redacted(), "", "    ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config: %s\n\n", store.Path())
	fmt.Fprintln(out, string(data))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "\nIncomplete: %v\n", err)
	}

	return nil
}
