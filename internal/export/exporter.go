package export

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/fsutil"
	"github.com/leefowlercu/icns-extractor/internal/icns"
	"github.com/leefowlercu/icns-extractor/internal/iconlookup"
	"github.com/leefowlercu/icns-extractor/internal/resample"
)

// Extension is appended to every exported file name.
const Extension = ".icns"

// fallbackName is used when a title sanitizes to nothing.
const fallbackName = "icon"

// ExportStats contains statistics about an export operation.
type ExportStats struct {
	Title        string        `json:"title"`
	Path         string        `json:"path"`
	SizesWritten []int         `json:"sizes_written"`
	SizesSkipped []int         `json:"sizes_skipped,omitempty"`
	OutputSize   int64         `json:"output_size"`
	SHA256       string        `json:"sha256"`
	Filter       string        `json:"filter"`
	ExportedAt   time.Time     `json:"exported_at"`
	Duration     time.Duration `json:"duration"`
}

// ExportOptions configures an export operation.
type ExportOptions struct {
	// OutputDir is where exported files are written when no explicit path is given.
	OutputDir string

	// Filter names the resampling filter (see resample.FilterNames).
	Filter string

	// Compression names the PNG compression level (see icns.ParseCompression).
	Compression string

	// TOC writes a table-of-contents element ahead of the icon entries.
	TOC bool
}

// DefaultExportOptions returns sensible defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		OutputDir:   ".",
		Filter:      resample.DefaultFilter,
		Compression: icns.CompressionDefault,
		TOC:         false,
	}
}

// ExportResult is delivered by ExportAsync when an export finishes.
type ExportResult struct {
	Stats *ExportStats
	Err   error
}

// Exporter looks up catalog icons and writes them as icns files.
type Exporter struct {
	provider iconlookup.Provider
	encoder  *icns.Encoder
	opts     ExportOptions
	logger   *slog.Logger
}

// NewExporter creates a new exporter. Filter and compression names are
// validated up front so a bad configuration fails before any lookup.
func NewExporter(provider iconlookup.Provider, opts ExportOptions, logger *slog.Logger) (*Exporter, error) {
	if provider == nil {
		return nil, fmt.Errorf("icon provider must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		opts.OutputDir = "."
	}
	if opts.Filter == "" {
		opts.Filter = resample.DefaultFilter
	}

	resampler, err := resample.ParseFilter(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid export options; %w", err)
	}
	level, err := icns.ParseCompression(opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("invalid export options; %w", err)
	}

	logger = logger.With("component", "exporter")
	encoder := icns.NewEncoder(
		icns.WithResampler(resampler),
		icns.WithCompression(level),
		icns.WithTOC(opts.TOC),
		icns.WithLogger(logger),
	)

	return &Exporter{
		provider: provider,
		encoder:  encoder,
		opts:     opts,
		logger:   logger,
	}, nil
}

// Options returns the options the exporter was built with.
func (e *Exporter) Options() ExportOptions {
	return e.opts
}

// OutputPath returns the default destination for an item titled title.
func (e *Exporter) OutputPath(title string) string {
	return filepath.Join(e.opts.OutputDir, OutputName(title))
}

// Export writes the icon for item to OutputDir/<title>.icns.
func (e *Exporter) Export(ctx context.Context, item catalog.Item) (*ExportStats, error) {
	return e.ExportTo(ctx, item, e.OutputPath(item.Title))
}

// ExportTo writes the icon for item to path.
func (e *Exporter) ExportTo(ctx context.Context, item catalog.Item, path string) (*ExportStats, error) {
	startTime := time.Now()

	img, err := e.provider.Lookup(ctx, item.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to look up icon for %q; %w", item.Title, err)
	}

	return e.write(ctx, img, item.Title, path, startTime)
}

// ExportImage writes src to OutputDir/<title>.icns.
func (e *Exporter) ExportImage(ctx context.Context, src image.Image, title string) (*ExportStats, error) {
	return e.write(ctx, src, title, e.OutputPath(title), time.Now())
}

// ExportImageTo writes src to path.
func (e *Exporter) ExportImageTo(ctx context.Context, src image.Image, title, path string) (*ExportStats, error) {
	return e.write(ctx, src, title, path, time.Now())
}

// ExportAsync runs Export on its own goroutine. The returned channel
// receives exactly one result and is then closed.
func (e *Exporter) ExportAsync(ctx context.Context, item catalog.Item) <-chan ExportResult {
	results := make(chan ExportResult, 1)

	go func() {
		defer close(results)
		stats, err := e.Export(ctx, item)
		results <- ExportResult{Stats: stats, Err: err}
	}()

	return results
}

func (e *Exporter) write(ctx context.Context, src image.Image, title, path string, startTime time.Time) (*ExportStats, error) {
	result, err := e.encoder.EncodeWithResult(ctx, src, path)
	if err != nil {
		return nil, fmt.Errorf("failed to export %q; %w", title, err)
	}

	stats := &ExportStats{
		Title:        title,
		Path:         result.Path,
		SizesWritten: result.Written,
		OutputSize:   result.Bytes,
		Filter:       strings.ToLower(e.opts.Filter),
		ExportedAt:   time.Now(),
	}
	for _, s := range result.Skipped {
		stats.SizesSkipped = append(stats.SizesSkipped, s.Size)
	}

	digest, err := fsutil.HashFile(path)
	if err != nil {
		e.logger.Warn("failed to hash exported file", "path", path, "error", err)
	}
	stats.SHA256 = digest
	stats.Duration = time.Since(startTime)

	e.logger.Info("icon exported",
		"title", title,
		"path", path,
		"sizes", len(stats.SizesWritten),
		"skipped", len(stats.SizesSkipped),
		"bytes", stats.OutputSize,
		"duration", stats.Duration)

	return stats, nil
}

// OutputName converts an item title into a file name ending in .icns.
// Path separators, reserved characters and control characters become
// dashes; leading dots and surrounding whitespace are dropped.
func OutputName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '-'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		default:
			return r
		}
	}, title)

	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, ".")
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, Extension)

	if name == "" {
		name = fallbackName
	}

	return name + Extension
}
