// Package export implements the export command that writes .icns files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/cmdutil"
	"github.com/leefowlercu/icns-extractor/internal/config"
	"github.com/leefowlercu/icns-extractor/internal/export"
	"github.com/leefowlercu/icns-extractor/internal/icns"
	"github.com/leefowlercu/icns-extractor/internal/iconlookup"
	"github.com/leefowlercu/icns-extractor/internal/resample"
	"github.com/leefowlercu/icns-extractor/internal/watcher"
)

// Flag variables for the export command.
var (
	exportItem        string
	exportOutput      string
	exportOutputDir   string
	exportFilter      string
	exportCompression string
	exportTOC         bool
	exportWatch       bool
	exportJSON        bool
)

// ExportCmd writes an .icns file from an image file or a catalog item.
var ExportCmd = &cobra.Command{
	Use:   "export [image-file]",
	Short: "Export an icon as an .icns file",
	Long: "Export an icon as an .icns file.\n\n" +
		"The source is either an image file (PNG, JPEG, GIF, WebP, BMP, TIFF or an existing " +
		".icns) or a catalog item selected with --item. The icon is resampled to every " +
		"standard size from 16 to 1024 pixels and written to <output-dir>/<title>.icns " +
		"unless --output names the destination explicitly.\n\n" +
		"With --watch, the image file is exported again each time it changes until " +
		"interrupted.",
	Example: `  # Export a PNG into the configured output directory
  icns-extractor export logo.png

  # Export a catalog item to an explicit path
  icns-extractor export --item "Generic Folder" -o ~/Desktop/folder.icns

  # Re-export whenever the source changes
  icns-extractor export logo.png --watch --filter bicubic`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateExport,
	RunE:    runExport,
}

func init() {
	ExportCmd.Flags().StringVar(&exportItem, "item", "", "Catalog item title to export")
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Destination .icns path")
	ExportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Directory for <title>.icns (default from config)")
	ExportCmd.Flags().StringVar(&exportFilter, "filter", "",
		fmt.Sprintf("Resampling filter: %s (default from config)", strings.Join(resample.FilterNames(), ", ")))
	ExportCmd.Flags().StringVar(&exportCompression, "compression", "",
		"PNG compression: default, none, best-speed, best-compression (default from config)")
	ExportCmd.Flags().BoolVar(&exportTOC, "toc", false, "Write a table of contents element")
	ExportCmd.Flags().BoolVar(&exportWatch, "watch", false, "Re-export when the image file changes")
	ExportCmd.Flags().BoolVar(&exportJSON, "json", false, "Print export statistics as JSON")
}

func validateExport(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 && exportItem == "":
		return errors.New("an image file argument or --item is required")
	case len(args) == 1 && exportItem != "":
		return errors.New("an image file argument and --item are mutually exclusive")
	case exportWatch && len(args) == 0:
		return errors.New("--watch requires an image file argument")
	case exportOutput != "" && exportOutputDir != "":
		return errors.New("--output and --output-dir are mutually exclusive")
	}

	if exportFilter != "" && !resample.IsValidFilter(exportFilter) {
		return fmt.Errorf("invalid --filter %q; must be one of: %s",
			exportFilter, strings.Join(resample.FilterNames(), ", "))
	}
	if exportCompression != "" {
		if _, err := icns.ParseCompression(exportCompression); err != nil {
			return fmt.Errorf("invalid --compression; %w", err)
		}
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := slog.Default().With("command", "export")

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	opts, err := cmdutil.ExportOptions(cfg, cmdutil.ExportOverrides{
		OutputDir:   exportOutputDir,
		Filter:      exportFilter,
		Compression: exportCompression,
		TOC:         exportTOC,
	})
	if err != nil {
		return err
	}

	item, err := resolveItem(args)
	if err != nil {
		return err
	}

	exporter, err := export.NewExporter(iconlookup.Default(), opts, logger)
	if err != nil {
		return err
	}

	destination, err := resolveDestination(exporter, item)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := exportOnce(ctx, out, exporter, item, destination); err != nil {
		return err
	}

	if !exportWatch {
		return nil
	}
	return watchAndExport(ctx, out, exporter, item, destination, cfg.Watch, logger)
}

// resolveItem builds the catalog item for a file argument or looks up --item.
func resolveItem(args []string) (catalog.Item, error) {
	if len(args) == 1 {
		path, err := cmdutil.ResolvePath(args[0])
		if err != nil {
			return catalog.Item{}, fmt.Errorf("failed to resolve image path; %w", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("failed to read image file; %w", err)
		}
		if info.IsDir() {
			return catalog.Item{}, fmt.Errorf("image path %q is a directory", path)
		}
		base := filepath.Base(path)
		title := strings.TrimSuffix(base, filepath.Ext(base))
		return catalog.NewItem(title, catalog.TypeCustom, catalog.Path(path)), nil
	}

	cat := catalog.New()
	if item, ok := cat.FindByTitle(exportItem); ok {
		return item, nil
	}

	if matches := cat.Search(exportItem); len(matches) > 0 {
		titles := make([]string, 0, 5)
		for i, m := range matches {
			if i == 5 {
				break
			}
			titles = append(titles, m.Title)
		}
		return catalog.Item{}, fmt.Errorf("no catalog item titled %q; did you mean: %s",
			exportItem, strings.Join(titles, ", "))
	}
	return catalog.Item{}, fmt.Errorf("no catalog item titled %q; run 'icns-extractor catalog list' to see available items", exportItem)
}

func resolveDestination(exporter *export.Exporter, item catalog.Item) (string, error) {
	if exportOutput == "" {
		dir := exporter.Options().OutputDir
		if err := cmdutil.EnsureDir(dir); err != nil {
			return "", err
		}
		return exporter.OutputPath(item.Title), nil
	}

	path, err := cmdutil.ResolvePath(exportOutput)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path; %w", err)
	}
	if filepath.Ext(path) == "" {
		path += export.Extension
	}
	return path, nil
}

func exportOnce(ctx context.Context, out io.Writer, exporter *export.Exporter, item catalog.Item, destination string) error {
	stats, err := exporter.ExportTo(ctx, item, destination)
	if err != nil {
		return err
	}
	return cmdutil.WriteExportStats(out, stats, exportJSON)
}

func watchAndExport(
	ctx context.Context,
	out io.Writer,
	exporter *export.Exporter,
	item catalog.Item,
	destination string,
	watchCfg config.WatchConfig,
	logger *slog.Logger,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(item.Ref.Value, func(ctx context.Context, _ string) error {
		return exportOnce(ctx, out, exporter, item, destination)
	},
		watcher.WithMinInterval(watchCfg.MinInterval()),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if !exportJSON {
		fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", w.Path())
	}

	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("failed to watch %q; %w", w.Path(), err)
	}

	stats := w.Stats()
	logger.Info("watch stopped",
		"path", w.Path(),
		"events", stats.EventsReceived,
		"exports", stats.ChangesHandled,
		"errors", stats.Errors)
	return nil
}
