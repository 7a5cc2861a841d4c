package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leefowlercu/icns-extractor/internal/config"
	"github.com/leefowlercu/icns-extractor/internal/export"
	"github.com/leefowlercu/icns-extractor/internal/tui/styles"
)

// ExportOverrides are command-line values that take precedence over config.
// Empty strings and false leave the configured value in place.
type ExportOverrides struct {
	OutputDir   string
	Filter      string
	Compression string
	TOC         bool
}

// ExportOptions merges the export section of cfg with overrides and
// resolves the output directory to an absolute path.
func ExportOptions(cfg *config.Config, overrides ExportOverrides) (export.ExportOptions, error) {
	opts := export.ExportOptions{
		OutputDir:   cfg.Export.OutputDir,
		Filter:      cfg.Export.Filter,
		Compression: cfg.Export.Compression,
		TOC:         cfg.Export.TOC,
	}

	if overrides.OutputDir != "" {
		opts.OutputDir = overrides.OutputDir
	}
	if overrides.Filter != "" {
		opts.Filter = overrides.Filter
	}
	if overrides.Compression != "" {
		opts.Compression = overrides.Compression
	}
	if overrides.TOC {
		opts.TOC = true
	}

	dir, err := ResolvePath(opts.OutputDir)
	if err != nil {
		return opts, fmt.Errorf("failed to resolve output directory; %w", err)
	}
	opts.OutputDir = dir

	return opts, nil
}

// EnsureDir creates dir when it does not exist yet.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q; %w", dir, err)
	}
	return nil
}

// WriteExportStats prints stats as indented JSON or as a short styled summary.
func WriteExportStats(out io.Writer, stats *export.ExportStats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return fmt.Errorf("failed to encode export stats; %w", err)
		}
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", styles.SuccessText.Render("Exported"), stats.Path)
	fmt.Fprintf(out, "  Sizes:    %s\n", joinSizes(stats.SizesWritten))
	if len(stats.SizesSkipped) > 0 {
		fmt.Fprintf(out, "  Skipped:  %s\n", styles.WarningText.Render(joinSizes(stats.SizesSkipped)))
	}
	fmt.Fprintf(out, "  Size:     %s\n", FormatBytes(stats.OutputSize))
	fmt.Fprintf(out, "  Filter:   %s\n", stats.Filter)
	if stats.SHA256 != "" {
		fmt.Fprintf(out, "  SHA-256:  %s\n", stats.SHA256)
	}
	fmt.Fprintf(out, "  Duration: %s\n", stats.Duration.Round(time.Millisecond))
	return nil
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// FormatBytes renders n using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
