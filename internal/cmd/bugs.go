package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/bugreport"
	"github.com/harrison/buildgate/internal/config"
)

// NewBugsCommand creates and returns the bugs subcommand
func NewBugsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bugs <report.xml>",
		Short: "Render and gate a static-analysis report",
		Long: `Parse a static-analysis XML report, print a human-readable detail
block per finding, and fail when any findings remain after suppressions.

A missing report file means the analysis step did not run and is treated
as a pass. Set ` + config.IgnoreFailuresEnv + `=1 or pass --ignore-failures
to render findings without failing.

Exit code: 0 if the gate passes, 1 otherwise`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetBool("ignore-failures"); v {
				cfg.IgnoreFailures = true
			}
			if v, _ := cmd.Flags().GetString("suppressions"); v != "" {
				cfg.SuppressionsPath = v
			}
			return runBugs(cfg, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("ignore-failures", false, "render findings without failing")
	cmd.Flags().String("suppressions", "", "path to the markdown suppressions file (overrides config)")

	return cmd
}

// runBugs parses, suppresses, renders, and gates one report file.
func runBugs(cfg *config.Config, reportPath string, output io.Writer) error {
	report, err := bugreport.Parse(reportPath)
	if err != nil {
		return err
	}

	suppressions, err := bugreport.LoadSuppressions(cfg.SuppressionsPath)
	if err != nil {
		return err
	}

	suppressed := report.Count()
	report = bugreport.ApplySuppressions(report, suppressions)
	suppressed -= report.Count()
	if suppressed > 0 {
		fmt.Fprintf(output, "suppressed %d finding(s) via %s\n", suppressed, cfg.SuppressionsPath)
	}

	return bugreport.RenderAndGate(output, report, config.ResolveIgnoreFailures(cfg))
}
