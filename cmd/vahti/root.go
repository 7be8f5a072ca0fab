package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vahti-io/vahti/internal/config"
	"github.com/vahti-io/vahti/telemetry"
)

var (
	version    = "0.1.0"
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "vahti",
		Short: "SQS alarm reconciler",
		Long: `Vahti - SQS alarm reconciler

Vahti keeps CloudWatch alarms in lockstep with SQS queues: every queue
gets a message-backlog alarm with a dead-letter-aware threshold, and
alarms for queues that no longer exist are cleaned up.

Run the full cycle with 'reconcile', or split it into 'plan' and
'apply' to review changes before they happen.`,
		Version: version,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`Vahti {{.Version}} - SQS alarm reconciler
`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig loads configuration and honors the --verbose flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the service logger writing to the diagnostic stream.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return telemetry.NewLogger("vahti", zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
