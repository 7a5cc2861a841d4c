// Package version implements the version command.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/version"
)

var (
	versionShort bool
	versionJSON  bool
)

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, build date, Go version " +
		"and platform of the current icns-extractor binary.",
	Example: `  # Display version information
  icns-extractor version

  # One-line version
  icns-extractor version --short`,
	Args:    cobra.NoArgs,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func init() {
	VersionCmd.Flags().BoolVar(&versionShort, "short", false, "Print a single line")
	VersionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}

func validateVersion(cmd *cobra.Command, args []string) error {
	if versionShort && versionJSON {
		return fmt.Errorf("--short and --json are mutually exclusive")
	}
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := version.Get()

	switch {
	case versionShort:
		fmt.Fprintln(out, info.Short())
	case versionJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("failed to encode version; %w", err)
		}
	default:
		fmt.Fprintln(out, info.String())
	}
	return nil
}
