package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/history"
	"github.com/harrison/buildgate/internal/models"
)

// NewHistoryCommand creates and returns the history subcommand
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent verification runs",
		Long: `List recent verification runs from the history database, newest
first, with their warning and bug counts and pass/fail verdicts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(cfg.History.DBPath, limit, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show")

	return cmd
}

// runHistory prints recent run records, newest first.
func runHistory(dbPath string, limit int, output io.Writer) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(output, "No verification runs recorded")
		return nil
	}

	for _, r := range records {
		fmt.Fprintln(output, formatRun(r))
	}
	return nil
}

// formatRun renders one history line.
// Format: "2026-08-23 14:03:11  PASSED  warnings=0 bugs=0 (4s)  ./gradlew build"
func formatRun(r models.RunRecord) string {
	verdict := "FAILED"
	if r.Passed {
		verdict = "PASSED"
	}
	return fmt.Sprintf("%s  %s  warnings=%d bugs=%d (%s)  %s",
		r.Timestamp.Format("2006-01-02 15:04:05"), verdict,
		r.Warnings, r.Bugs, r.Duration.Round(time.Second), r.Command)
}
