package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/planfile"
	"github.com/vahti-io/vahti/providers/aws"
)

var reconcileDryRun bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Create missing alarms and delete orphaned ones",
	Long: `Run the full reconciliation cycle in one pass.

This command will:
1. List SQS queues and managed CloudWatch alarms
2. Create a backlog alarm for every queue lacking one
3. Delete every alarm whose queue no longer exists
4. Publish the outcome to the configured SNS topic

Alarms use the prefix convention (SQS-HighMessageCount-<queue>).
Dead-letter queues alert on any backlog; normal queues use the
configured threshold.

Examples:
  # Run the full cycle
  vahti reconcile

  # Preview without touching anything
  vahti reconcile --dry-run

  # Use a specific config file
  vahti reconcile --config ./vahti.toml`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "Compute and print the plan without applying it")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	shutdown := initTelemetry(ctx, cfg, logger)
	defer shutdown()

	provider, err := aws.New(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to create aws provider: %w", err)
	}

	convention := cfg.Convention(naming.ConventionPrefix)
	plan := buildPlan(ctx, cfg, provider, convention, logger)

	if reconcileDryRun {
		logger.Info().Msg("dry-run, nothing will be applied")
		fmt.Fprint(os.Stdout, planfile.Format(plan))
		return nil
	}

	summary := applyPlan(ctx, cfg, provider, plan, logger)
	finishRun(ctx, cfg, provider, summary, logger)
	reportSummary(summary)

	return nil
}
