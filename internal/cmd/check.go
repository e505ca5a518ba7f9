package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/bugreport"
	"github.com/harrison/buildgate/internal/config"
	"github.com/harrison/buildgate/internal/display"
	"github.com/harrison/buildgate/internal/filelock"
	"github.com/harrison/buildgate/internal/history"
	"github.com/harrison/buildgate/internal/logger"
	"github.com/harrison/buildgate/internal/manifest"
	"github.com/harrison/buildgate/internal/models"
	"github.com/harrison/buildgate/internal/step"
)

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <build-command>...",
		Short: "Run a build command with all verification gates",
		Long: `Run the full verification lifecycle around a build command:
  1. Validate the plugin-discovery manifest against the source tree
  2. Run the build command, escalating compiler warnings to failures
  3. Parse, render, and gate the static-analysis report
  4. Append a run record to the verification history

Exit code: 0 if all gates pass, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyCheckFlags(cmd, cfg)
			return runCheck(cmd.Context(), cfg, strings.Join(args, " "), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("report", "", "path to the static-analysis report (overrides config)")
	cmd.Flags().String("manifest", "", "path to the plugin-discovery manifest (overrides config)")
	cmd.Flags().String("source-root", "", "project source root (overrides config)")
	cmd.Flags().String("suppressions", "", "path to the markdown suppressions file (overrides config)")
	cmd.Flags().Bool("ignore-failures", false, "render analysis findings without failing the build")

	return cmd
}

// applyCheckFlags overlays explicit command-line flags onto the loaded
// config.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("report"); v != "" {
		cfg.ReportPath = v
	}
	if v, _ := cmd.Flags().GetString("manifest"); v != "" {
		cfg.ManifestPath = v
	}
	if v, _ := cmd.Flags().GetString("source-root"); v != "" {
		cfg.SourceRoot = v
	}
	if v, _ := cmd.Flags().GetString("suppressions"); v != "" {
		cfg.SuppressionsPath = v
	}
	if v, _ := cmd.Flags().GetBool("ignore-failures"); v {
		cfg.IgnoreFailures = true
	}
}

// runCheck executes the verification lifecycle. Concurrent invocations
// against the same project are serialized on the history database lock.
func runCheck(ctx context.Context, cfg *config.Config, command string, output io.Writer) error {
	log := logger.NewConsoleLogger(output, cfg.LogLevel)
	ignoreFailures := config.ResolveIgnoreFailures(cfg)

	lock, err := filelock.Acquire(cfg.History.DBPath, func() {
		log.LogInfo("another verification run holds the project lock, waiting")
	})
	if err != nil {
		return err
	}
	defer lock.Unlock()

	// Pre-step: manifest validation, fatal on the first missing class.
	if err := manifest.Validate(cfg.ManifestPath, cfg.SourceRoot); err != nil {
		log.LogError(err.Error())
		return err
	}
	log.LogDebug(fmt.Sprintf("manifest %s validated", cfg.ManifestPath))

	// Monitored step: run the build with warning escalation.
	runner := step.NewRunner(cfg.SourceRoot)
	echo := &step.EchoListener{W: output}
	runner.Attach(echo)
	defer runner.Detach(echo)

	log.LogStepStart(command)
	result, stepErr := runner.Run(ctx, "check", command)

	if len(result.Warnings) > 0 {
		banner := display.WarnEscalatedLines(
			fmt.Sprintf("%d compiler warning(s) escalated to failures", len(result.Warnings)),
			result.Warnings,
		)
		banner.Display(output)
	}

	// Post-step: render and gate the analysis report even when the
	// build step failed, so the full diagnostic picture is visible.
	report, parseErr := bugreport.Parse(cfg.ReportPath)
	if parseErr != nil {
		log.LogError(parseErr.Error())
		return parseErr
	}

	suppressions, supErr := bugreport.LoadSuppressions(cfg.SuppressionsPath)
	if supErr != nil {
		log.LogError(supErr.Error())
		return supErr
	}
	report = bugreport.ApplySuppressions(report, suppressions)
	result.Bugs = report.Count()

	gateErr := bugreport.RenderAndGate(output, report, ignoreFailures)

	result.Passed = stepErr == nil && gateErr == nil
	log.LogStepResult(result)

	appendHistory(cfg, log, command, result)
	writeLastRun(cfg, log, result)

	if stepErr != nil {
		return stepErr
	}
	return gateErr
}

// appendHistory records the run outcome; history failures are logged but
// never mask the verification verdict.
func appendHistory(cfg *config.Config, log logger.Logger, command string, result models.StepResult) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history unavailable: %v", err))
		return
	}
	defer store.Close()

	_, err = store.Append(models.RunRecord{
		Command:   command,
		Warnings:  len(result.Warnings),
		Bugs:      result.Bugs,
		Passed:    result.Passed,
		Duration:  result.Duration,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.LogWarn(fmt.Sprintf("failed to record run: %v", err))
		return
	}

	if deleted, err := store.Prune(cfg.History.KeepDays); err != nil {
		log.LogWarn(fmt.Sprintf("failed to prune history: %v", err))
	} else if deleted > 0 {
		log.LogDebug(fmt.Sprintf("pruned %d old run record(s)", deleted))
	}
}

// writeLastRun snapshots the latest verdict next to the history database
// so outer tooling can read it without opening SQLite. Written atomically
// so a concurrent reader never sees a partial line; failures are logged
// but never mask the verification verdict.
func writeLastRun(cfg *config.Config, log logger.Logger, result models.StepResult) {
	verdict := "FAILED"
	if result.Passed {
		verdict = "PASSED"
	}
	line := fmt.Sprintf("%s warnings=%d bugs=%d %s\n",
		verdict, len(result.Warnings), result.Bugs, result.Command)

	path := filepath.Join(filepath.Dir(cfg.History.DBPath), "last-run")
	if err := filelock.AtomicWrite(path, []byte(line)); err != nil {
		log.LogWarn(fmt.Sprintf("failed to write last-run snapshot: %v", err))
	}
}
