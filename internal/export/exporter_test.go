package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/fsutil"
	"github.com/leefowlercu/icns-extractor/internal/icns"
)

type fakeProvider struct {
	img image.Image
	err error
}

func (f fakeProvider) Lookup(ctx context.Context, ref catalog.Ref) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.img, f.err
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 120, A: 255})
		}
	}
	return img
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExporter(t *testing.T, provider fakeProvider, opts ExportOptions) *Exporter {
	t.Helper()
	e, err := NewExporter(provider, opts, discardLogger())
	require.NoError(t, err)
	return e
}

func TestDefaultExportOptions(t *testing.T) {
	opts := DefaultExportOptions()

	assert.Equal(t, ".", opts.OutputDir)
	assert.Equal(t, "lanczos3", opts.Filter)
	assert.Equal(t, "default", opts.Compression)
	assert.False(t, opts.TOC)
}

func TestNewExporter_InvalidOptions(t *testing.T) {
	provider := fakeProvider{img: testImage(8, 8)}

	tests := []struct {
		name string
		opts ExportOptions
	}{
		{"unknown filter", ExportOptions{Filter: "nearest-ish"}},
		{"unknown compression", ExportOptions{Compression: "maximum"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExporter(provider, tt.opts, discardLogger())
			assert.Error(t, err)
		})
	}

	_, err := NewExporter(nil, DefaultExportOptions(), discardLogger())
	assert.Error(t, err)
}

func TestNewExporter_FillsEmptyOptions(t *testing.T) {
	e := newTestExporter(t, fakeProvider{img: testImage(8, 8)}, ExportOptions{})

	assert.Equal(t, ".", e.Options().OutputDir)
	assert.Equal(t, "lanczos3", e.Options().Filter)
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultExportOptions()
	opts.OutputDir = dir
	e := newTestExporter(t, fakeProvider{img: testImage(64, 64)}, opts)

	item := catalog.NewItem("Generic Folder", catalog.TypeFolders, catalog.HFSCode("fldr"))
	stats, err := e.Export(context.Background(), item)
	require.NoError(t, err)

	wantPath := filepath.Join(dir, "Generic Folder.icns")
	assert.Equal(t, wantPath, stats.Path)
	assert.Equal(t, "Generic Folder", stats.Title)
	assert.Equal(t, icns.Sizes, stats.SizesWritten)
	assert.Empty(t, stats.SizesSkipped)
	assert.Equal(t, "lanczos3", stats.Filter)
	assert.False(t, stats.ExportedAt.IsZero())
	assert.GreaterOrEqual(t, stats.Duration, time.Duration(0))

	info, err := os.Stat(wantPath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), stats.OutputSize)

	digest, err := fsutil.HashFile(wantPath)
	require.NoError(t, err)
	assert.Equal(t, digest, stats.SHA256)
}

func TestExporter_ExportTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.icns")
	e := newTestExporter(t, fakeProvider{img: testImage(32, 32)}, DefaultExportOptions())

	item := catalog.NewItem("Anything", catalog.TypeCore, catalog.ContentType("public.item"))
	stats, err := e.ExportTo(context.Background(), item, path)
	require.NoError(t, err)
	assert.Equal(t, path, stats.Path)
	assert.FileExists(t, path)
}

func TestExporter_ExportImage(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultExportOptions()
	opts.OutputDir = dir
	opts.Filter = "bilinear"
	opts.Compression = "best-speed"
	e := newTestExporter(t, fakeProvider{}, opts)

	stats, err := e.ExportImage(context.Background(), testImage(100, 50), "wide/source")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wide-source.icns"), stats.Path)
	assert.Equal(t, "bilinear", stats.Filter)
	assert.Len(t, stats.SizesWritten, len(icns.Sizes))
}

func TestExporter_LookupError(t *testing.T) {
	boom := errors.New("lookup failed")
	dir := t.TempDir()
	opts := DefaultExportOptions()
	opts.OutputDir = dir
	e := newTestExporter(t, fakeProvider{err: boom}, opts)

	_, err := e.Export(context.Background(), catalog.NewItem("Broken", catalog.TypeOther, catalog.HFSCode("????")))
	require.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporter_MissingOutputDir(t *testing.T) {
	opts := DefaultExportOptions()
	opts.OutputDir = filepath.Join(t.TempDir(), "does", "not", "exist")
	e := newTestExporter(t, fakeProvider{img: testImage(16, 16)}, opts)

	_, err := e.Export(context.Background(), catalog.NewItem("Folder", catalog.TypeFolders, catalog.HFSCode("fldr")))
	require.ErrorIs(t, err, icns.ErrDestinationUnavailable)

	kind, ok := icns.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, icns.DestinationUnavailable, kind)
}

func TestExporter_ExportAsync(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultExportOptions()
	opts.OutputDir = dir
	e := newTestExporter(t, fakeProvider{img: testImage(24, 24)}, opts)

	results := e.ExportAsync(context.Background(), catalog.NewItem("Async", catalog.TypeCore, catalog.ContentType("public.item")))

	select {
	case res, ok := <-results:
		require.True(t, ok)
		require.NoError(t, res.Err)
		assert.Equal(t, filepath.Join(dir, "Async.icns"), res.Stats.Path)
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for async export")
	}

	_, ok := <-results
	assert.False(t, ok, "channel should be closed after the result")
}

func TestExporter_ExportAsyncCanceled(t *testing.T) {
	opts := DefaultExportOptions()
	opts.OutputDir = t.TempDir()
	e := newTestExporter(t, fakeProvider{img: testImage(24, 24)}, opts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-e.ExportAsync(ctx, catalog.NewItem("Canceled", catalog.TypeCore, catalog.ContentType("public.item")))
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Nil(t, res.Stats)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Generic Folder", "Generic Folder.icns"},
		{"Burning Folder", "Burning Folder.icns"},
		{"AC/DC", "AC-DC.icns"},
		{`a\b:c*d?e"f<g>h|i`, "a-b-c-d-e-f-g-h-i.icns"},
		{"line\nbreak", "line-break.icns"},
		{"  padded  ", "padded.icns"},
		{"..hidden", "hidden.icns"},
		{"already.icns", "already.icns"},
		{"", "icon.icns"},
		{"...", "icon.icns"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.title); got != tt.expected {
			t.Errorf("OutputName(%q) = %q, want %q", tt.title, got, tt.expected)
		}
	}
}
