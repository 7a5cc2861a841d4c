// Package browse implements the interactive catalog browser command.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/cmdutil"
	"github.com/leefowlercu/icns-extractor/internal/config"
	"github.com/leefowlercu/icns-extractor/internal/export"
	"github.com/leefowlercu/icns-extractor/internal/icns"
	"github.com/leefowlercu/icns-extractor/internal/iconlookup"
	"github.com/leefowlercu/icns-extractor/internal/resample"
	browsetui "github.com/leefowlercu/icns-extractor/internal/tui/browse"
)

// Flag variables for the browse command.
var (
	browseType        string
	browseOutputDir   string
	browseFilter      string
	browseCompression string
	browseTOC         bool
	browseJSON        bool
)

// runBrowser shows the picker; replaced in tests.
var runBrowser = browsetui.Run

// BrowseCmd lets the user pick a catalog item interactively and exports it.
var BrowseCmd = &cobra.Command{
	Use:   "browse [path...]",
	Short: "Pick an icon interactively and export it",
	Long: "Pick an icon interactively and export it.\n\n" +
		"Opens a full-screen list of catalog items grouped by type. Type '/' to filter, " +
		"enter to export the highlighted icon, d to remove it from the list and q or esc " +
		"to quit without exporting. " +
		"Files or folders given as arguments are added to the list as custom items.",
	Example: `  # Browse the built-in catalog
  icns-extractor browse

  # Browse only document icons, exporting into ~/Icons
  icns-extractor browse --type documents --output-dir ~/Icons

  # Include custom files alongside the catalog
  icns-extractor browse ~/Pictures/logo.png ~/Projects`,
	PreRunE: validateBrowse,
	RunE:    runBrowse,
}

func init() {
	BrowseCmd.Flags().StringVarP(&browseType, "type", "t", "", "Show only items of this type")
	BrowseCmd.Flags().StringVar(&browseOutputDir, "output-dir", "", "Directory for <title>.icns (default from config)")
	BrowseCmd.Flags().StringVar(&browseFilter, "filter", "", "Resampling filter (default from config)")
	BrowseCmd.Flags().StringVar(&browseCompression, "compression", "", "PNG compression (default from config)")
	BrowseCmd.Flags().BoolVar(&browseTOC, "toc", false, "Write a table of contents element")
	BrowseCmd.Flags().BoolVar(&browseJSON, "json", false, "Print export statistics as JSON")
}

func validateBrowse(cmd *cobra.Command, args []string) error {
	if browseType != "" {
		if _, err := catalog.ParseItemType(browseType); err != nil {
			return fmt.Errorf("invalid --type; %w", err)
		}
	}
	if browseFilter != "" && !resample.IsValidFilter(browseFilter) {
		return fmt.Errorf("invalid --filter %q; must be one of: %s",
			browseFilter, strings.Join(resample.FilterNames(), ", "))
	}
	if browseCompression != "" {
		if _, err := icns.ParseCompression(browseCompression); err != nil {
			return fmt.Errorf("invalid --compression; %w", err)
		}
	}
	for _, arg := range args {
		path, err := cmdutil.ResolvePath(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve %q; %w", arg, err)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot add %q; %w", arg, err)
		}
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := slog.Default().With("command", "browse")

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	opts, err := cmdutil.ExportOptions(cfg, cmdutil.ExportOverrides{
		OutputDir:   browseOutputDir,
		Filter:      browseFilter,
		Compression: browseCompression,
		TOC:         browseTOC,
	})
	if err != nil {
		return err
	}

	cat, err := browseCatalog(args)
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		fmt.Fprintln(out, "No catalog items to browse.")
		return nil
	}

	result, err := runBrowser(cat)
	if err != nil {
		return err
	}
	if !result.Selected {
		logger.Debug("nothing selected")
		return nil
	}

	exporter, err := export.NewExporter(iconlookup.Default(), opts, logger)
	if err != nil {
		return err
	}
	if err := cmdutil.EnsureDir(opts.OutputDir); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := <-exporter.ExportAsync(ctx, result.Item)
	if res.Err != nil {
		if errors.Is(res.Err, iconlookup.ErrUnsupported) {
			return fmt.Errorf("no icon available for %q on this platform; %w", result.Item.Title, res.Err)
		}
		return res.Err
	}
	return cmdutil.WriteExportStats(out, res.Stats, browseJSON)
}

// browseCatalog returns the catalog (plus any path arguments) filtered by --type.
func browseCatalog(args []string) (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, arg := range args {
		path, err := cmdutil.ResolvePath(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q; %w", arg, err)
		}
		if _, err := cat.AddPath(path); err != nil {
			return nil, err
		}
	}

	if browseType == "" {
		return cat, nil
	}
	typ, err := catalog.ParseItemType(browseType)
	if err != nil {
		return nil, err
	}

	filtered := catalog.NewEmpty()
	for _, item := range cat.OfType(typ) {
		filtered.Add(item)
	}
	return filtered, nil
}
