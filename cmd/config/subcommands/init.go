package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/config"
)

var (
	initForce bool
)

// InitCmd writes a configuration file populated with the defaults.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with default values",
	Long: "Create a configuration file with default values.\n\n" +
		"Writes every setting with its default value to the config file so it can be " +
		"edited. An existing file is left untouched unless --force is given.",
	Example: `  # Create ~/.config/icns-extractor/config.yaml
  icns-extractor config init

  # Overwrite an existing configuration
  icns-extractor config init --force`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := config.ActiveConfigPath()

	if config.ConfigExistsAt(configPath) && !initForce {
		return fmt.Errorf("config file already exists at %s; use --force to overwrite", configPath)
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration written to %s\n", configPath)
	return nil
}
