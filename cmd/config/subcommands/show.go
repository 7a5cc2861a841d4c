package subcommands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/config"
)

var (
	showRaw    bool
	showFormat string
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the effective configuration with defaults and environment overrides " +
		"applied. Use --raw to print the config file exactly as written, and " +
		"--format to choose YAML or TOML output.",
	Example: `  # Show effective configuration
  icns-extractor config show

  # Show effective configuration as TOML
  icns-extractor config show --format toml

  # Show the config file as written
  icns-extractor config show --raw`,
	Args:    cobra.NoArgs,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Show the config file contents without defaults")
	ShowCmd.Flags().StringVarP(&showFormat, "format", "f", config.FormatYAML, "Output format: yaml or toml")
}

func validateShow(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(showFormat)
	if format != config.FormatYAML && format != config.FormatTOML {
		return fmt.Errorf("invalid --format %q; must be %s or %s", showFormat, config.FormatYAML, config.FormatTOML)
	}
	if showRaw && format != config.FormatYAML {
		return fmt.Errorf("--raw prints the file as written and cannot be combined with --format %s", format)
	}

	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if showRaw {
		return showRawConfig(out)
	}
	return showEffectiveConfig(out)
}

func showRawConfig(out io.Writer) error {
	configPath := config.ActiveConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(out io.Writer) error {
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg, strings.ToLower(showFormat))
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	source := config.ConfigFilePath()
	if source == "" {
		source = "none (defaults)"
	}

	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	fmt.Fprintf(out, "# Config file: %s\n", source)
	fmt.Fprintln(out, string(data))
	return nil
}
