package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yanqian/moodsip/internal/domain/risk"
)

// Exit codes of risk-check. 75 is EX_TEMPFAIL so cron wrappers can retry.
const (
	exitOK      = 0
	exitFailure = 1
	exitRetry   = 75
)

var rootCmd = &cobra.Command{
	Use:   "moodsip",
	Short: "MoodSip hydration and meal-mood API",
	// Running without a subcommand serves the API.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the risk scheduler when enabled)",
	RunE:  runServe,
}

var (
	riskTemperature float64
	riskUserID      int64
)

var riskCheckCmd = &cobra.Command{
	Use:   "risk-check",
	Short: "Run the hydration risk job once and exit",
	Long: `risk-check scores every user's hydration risk once and sends reminders.
Exit status is 0 on success, 75 when a transient predictor failure should be retried
and 1 on any other failure.`,
	RunE: runRiskCheck,
}

func init() {
	riskCheckCmd.Flags().Float64Var(&riskTemperature, "temperature", 0, "Temperature in °C to use instead of the weather lookup")
	riskCheckCmd.Flags().Int64Var(&riskUserID, "user", 0, "Only check this user ID")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(riskCheckCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}

func runRiskCheck(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler, cleanup, err := initializeScheduler()
	if err != nil {
		return fmt.Errorf("failed to wire risk job: %w", err)
	}
	code := runRiskJob(ctx, scheduler, jobInput(cmd), riskUserID, cmd.OutOrStdout())
	cleanup()
	os.Exit(code)
	return nil
}

type riskJob interface {
	RunAll(ctx context.Context, input risk.JobInput) (risk.Report, error)
	RunUser(ctx context.Context, userID int64, input risk.JobInput) risk.Result
}

// runRiskJob prints the report as JSON and returns the process exit code.
func runRiskJob(ctx context.Context, job riskJob, input risk.JobInput, userID int64, out io.Writer) int {
	var report risk.Report
	if userID > 0 {
		report.Results = []risk.Result{job.RunUser(ctx, userID, input)}
	} else {
		var err error
		report, err = job.RunAll(ctx, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitRetry
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
	return exitCode(report.Outcome())
}

func exitCode(outcome risk.Outcome) int {
	switch outcome {
	case risk.OutcomeRetry:
		return exitRetry
	case risk.OutcomeFailure:
		return exitFailure
	default:
		return exitOK
	}
}

func jobInput(cmd *cobra.Command) risk.JobInput {
	if !cmd.Flags().Changed("temperature") {
		return risk.JobInput{}
	}
	t := riskTemperature
	return risk.JobInput{Temperature: &t}
}
