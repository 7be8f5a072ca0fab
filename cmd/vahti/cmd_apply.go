package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vahti-io/vahti/planfile"
	"github.com/vahti-io/vahti/providers/aws"
)

var applyCmd = &cobra.Command{
	Use:   "apply <plan-file>",
	Short: "Apply a previously computed plan",
	Long: `Apply the create/delete actions recorded in a plan file.

The plan's own region takes precedence over the configured one, so a
plan built elsewhere applies where it was computed. Actions run one at
a time; a failed action is recorded and the rest still run.

Examples:
  vahti apply alarm-plan.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	shutdown := initTelemetry(ctx, cfg, logger)
	defer shutdown()

	plan, err := planfile.Load(args[0])
	if err != nil {
		return err
	}
	logger.Info().
		Str("path", args[0]).
		Str("region", plan.Region).
		Int("creates", len(plan.Creates)).
		Int("deletes", len(plan.Deletes)).
		Msg("plan loaded")

	cfg.Region = plan.Region

	provider, err := aws.New(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to create aws provider: %w", err)
	}

	summary := applyPlan(ctx, cfg, provider, plan, logger)
	finishRun(ctx, cfg, provider, summary, logger)
	reportSummary(summary)

	return nil
}
