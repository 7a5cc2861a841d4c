// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage icns-extractor configuration",
	Long: "Manage icns-extractor configuration.\n\n" +
		"The config command allows you to view, create, validate, edit and reset the " +
		"configuration. Configuration is stored in a YAML file located at " +
		"~/.config/icns-extractor/config.yaml by default, and every key can be " +
		"overridden with an ICNS_EXTRACTOR_ environment variable.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.EditCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
}
