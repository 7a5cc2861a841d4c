package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/cmd/browse"
	"github.com/leefowlercu/icns-extractor/cmd/catalog"
	"github.com/leefowlercu/icns-extractor/cmd/config"
	"github.com/leefowlercu/icns-extractor/cmd/export"
	"github.com/leefowlercu/icns-extractor/cmd/version"
	internalconfig "github.com/leefowlercu/icns-extractor/internal/config"
	"github.com/leefowlercu/icns-extractor/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var rootCmd = &cobra.Command{
	Use:   "icns-extractor",
	Short: "Export macOS icons as .icns files",
	Long: "icns-extractor turns system icons and image files into Apple .icns icon files.\n\n" +
		"Icons come from a built-in catalog of system types and codes, or from any image file. " +
		"Each export resamples the source to every standard size from 16 to 1024 pixels and " +
		"writes a single .icns container, optionally re-exporting whenever the source changes.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	rootCmd.AddCommand(export.ExportCmd)
	rootCmd.AddCommand(catalog.CatalogCmd)
	rootCmd.AddCommand(browse.BrowseCmd)
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if err := internalconfig.Init(); err != nil {
		return err
	}

	levelStr := internalconfig.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		if levelStr != "" {
			logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
		}
	}

	opts := logging.FileOptions{
		Path:       internalconfig.GetPath("log_file"),
		MaxSizeMB:  internalconfig.GetInt("log_max_size_mb"),
		MaxBackups: internalconfig.GetInt("log_max_backups"),
	}
	if err := logManager.UpgradeWithOptions(opts, level); err != nil {
		// Keep going with stderr only.
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	return nil
}

// Execute runs the root command and prints any error once.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := rootCmd.Execute()

	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintf(os.Stderr, "\n")
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
