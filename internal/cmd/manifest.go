package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/manifest"
)

// NewManifestCommand creates and returns the manifest subcommand
func NewManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest <manifest-file>",
		Short: "Validate a plugin-discovery manifest against the source tree",
		Long: `Check that every class declared under the recognized extension-point
keys (` + manifest.KeyExtensions + `, ` + manifest.KeyListeners + `) has a
source file at the conventional location under src/main/java.

A missing manifest file is optional and passes. Validation stops at the
first missing class within a key's list.

Exit code: 0 if valid, 1 if a declared class is missing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceRoot, err := cmd.Flags().GetString("source-root")
			if err != nil {
				return err
			}
			return runManifest(args[0], sourceRoot, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("source-root", ".", "project root containing src/main/java")

	return cmd
}

// runManifest validates one manifest and reports the outcome.
func runManifest(manifestPath, sourceRoot string, output io.Writer) error {
	if err := manifest.Validate(manifestPath, sourceRoot); err != nil {
		fmt.Fprintf(output, "✗ %v\n", err)
		return err
	}

	fmt.Fprintf(output, "✓ Manifest %s is valid\n", manifestPath)
	return nil
}
