package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for buildgate
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildgate",
		Short: "Build-time verification and reporting gates",
		Long: `Buildgate sits between a build orchestrator and its compilation and
static-analysis tools. It escalates compiler warnings into failures,
renders and gates static-analysis reports, validates plugin-discovery
manifests against the source tree, and builds runtime classpath strings
from resolved dependency artifacts.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", ".buildgate/config.yaml", "path to buildgate config file")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewBugsCommand())
	cmd.AddCommand(NewManifestCommand())
	cmd.AddCommand(NewClasspathCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfig reads the config file named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}
