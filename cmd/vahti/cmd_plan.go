package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vahti-io/vahti/naming"
	"github.com/vahti-io/vahti/planfile"
	"github.com/vahti-io/vahti/providers/aws"
)

var planOutPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a reconciliation plan without applying it",
	Long: `Build a reconciliation plan and write it to a plan file.

No remote mutation happens in this mode. The plan records every alarm
to create (queue, alarm name, threshold) and every orphaned alarm to
delete, and is consumed later by 'vahti apply'. The previous plan file
is overwritten.

Alarms use the suffix convention (<queue>-cloudwatch-alarm).

Examples:
  # Write the plan and show it
  vahti plan

  # Choose the plan file location
  vahti plan --out /var/lib/vahti/alarm-plan.txt`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planOutPath, "out", "alarm-plan.txt", "Plan file path")
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	convention := cfg.Convention(naming.ConventionSuffix)
	plan := buildPlan(ctx, cfg, provider, convention, logger)

	if err := planfile.Write(planOutPath, plan); err != nil {
		return err
	}
	logger.Info().Str("path", planOutPath).Msg("plan written")

	// The plan contents go to stdout for visibility
	fmt.Fprint(os.Stdout, planfile.Format(plan))

	return nil
}
