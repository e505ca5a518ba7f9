package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/buildgate/internal/classpath"
	"github.com/harrison/buildgate/internal/fileutil"
)

// NewClasspathCommand creates and returns the classpath subcommand
func NewClasspathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classpath <artifact-or-directory>...",
		Short: "Build a runtime classpath string from resolved artifacts",
		Long: `Convert resolved dependency artifact locations into the single
space-joined classpath string embedded as a manifest attribute value.

Arguments may be artifact files or directories; directories are scanned
for .jar artifacts in stable sorted order. File-URL stringification
artifacts (file:/// prefixes) are normalized to plain absolute paths.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recursive, _ := cmd.Flags().GetBool("recursive")
			return runClasspath(args, recursive, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("recursive", false, "scan directories recursively")

	return cmd
}

// runClasspath expands directory arguments into their .jar artifacts,
// preserving argument order, then prints the built classpath string.
func runClasspath(args []string, recursive bool, output io.Writer) error {
	var artifacts []string
	for _, arg := range args {
		info, err := os.Stat(classpath.Normalize(arg))
		if err == nil && info.IsDir() {
			found, err := fileutil.ScanArtifacts(classpath.Normalize(arg), fileutil.ScanOptions{
				Extensions: []string{".jar"},
				Recursive:  recursive,
			})
			if err != nil {
				return err
			}
			artifacts = append(artifacts, found...)
			continue
		}
		// Not a directory (or not resolvable locally): treat as an
		// artifact location from the resolver.
		artifacts = append(artifacts, arg)
	}

	joined, err := classpath.Build(artifacts)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, joined)
	return nil
}
