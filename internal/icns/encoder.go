// Package icns writes multi-resolution Apple icon containers.
//
// An Encoder resamples one source image to every size in Sizes, PNG-encodes
// each raster, and writes them as tagged elements of a single .icns file.
// The destination is replaced atomically: callers either get a complete
// container or an *EncodeError and the previous file (if any) untouched.
package icns

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/leefowlercu/icns-extractor/internal/resample"
)

// Sizes is the ordered set of square pixel sizes written to every container.
var Sizes = []int{16, 32, 64, 128, 256, 512, 1024}

// fileMode is applied to the finished container.
const fileMode = 0644

// rename moves the finished temp file over the destination.
var rename = os.Rename

// SkippedSize records a size that failed to render.
type SkippedSize struct {
	Size int
	Err  error
}

// Result describes a successful encode.
type Result struct {
	Path    string
	Written []int
	Skipped []SkippedSize
	Bytes   int64
}

// Encoder converts images into icns containers. It holds no per-call state
// and is safe for concurrent use.
type Encoder struct {
	resampler   resample.Resampler
	compression png.CompressionLevel
	toc         bool
	logger      *slog.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithResampler sets the resampler used to render each size.
func WithResampler(r resample.Resampler) Option {
	return func(e *Encoder) {
		if r != nil {
			e.resampler = r
		}
	}
}

// WithCompression sets the PNG compression level of each representation.
func WithCompression(level png.CompressionLevel) Option {
	return func(e *Encoder) {
		e.compression = level
	}
}

// WithTOC enables writing a table-of-contents element ahead of the images.
func WithTOC(enabled bool) Option {
	return func(e *Encoder) {
		e.toc = enabled
	}
}

// WithLogger sets the logger for the encoder.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		resampler:   resample.Default(),
		compression: png.DefaultCompression,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode writes src to path using a default Encoder.
func Encode(ctx context.Context, src image.Image, path string) error {
	return NewEncoder().Encode(ctx, src, path)
}

// Encode writes src to path as an icns container.
func (e *Encoder) Encode(ctx context.Context, src image.Image, path string) error {
	_, err := e.EncodeWithResult(ctx, src, path)
	return err
}

// EncodeWithResult writes src to path and reports which sizes were written.
//
// The destination is checked before the source, so an unusable path is
// reported as DestinationUnavailable even when src is also invalid. A size
// that fails to render is skipped. If every size fails, no file is
// produced and the error kind is NoRepresentationsProduced. When path is a
// symbolic link the link is kept and its target is replaced.
func (e *Encoder) EncodeWithResult(ctx context.Context, src image.Image, path string) (*Result, error) {
	target := resolveLink(path)
	tmp, err := createTemp(target)
	if err != nil {
		return nil, newError(DestinationUnavailable, path, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := validateSource(src); err != nil {
		return nil, newError(NoRepresentationsProduced, path, err)
	}

	c := &container{toc: e.toc}
	result := &Result{Path: path}

	for _, size := range Sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := e.render(src, size)
		if err != nil {
			e.logger.Warn("skipping icon size", "size", size, "path", path, "error", err)
			result.Skipped = append(result.Skipped, SkippedSize{Size: size, Err: err})
			continue
		}

		typ, _ := OSTypeForSize(size)
		c.add(typ, data)
		result.Written = append(result.Written, size)
	}

	if c.len() == 0 {
		errs := make([]error, 0, len(result.Skipped))
		for _, s := range result.Skipped {
			errs = append(errs, fmt.Errorf("size %d: %w", s.Size, s.Err))
		}
		return nil, newError(NoRepresentationsProduced, path, errors.Join(errs...))
	}

	n, err := c.WriteTo(tmp)
	if err != nil {
		return nil, newError(WriteFailed, path, fmt.Errorf("failed to write container; %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return nil, newError(WriteFailed, path, fmt.Errorf("failed to sync container; %w", err))
	}
	if err := tmp.Close(); err != nil {
		return nil, newError(WriteFailed, path, fmt.Errorf("failed to close container; %w", err))
	}
	if err := os.Chmod(tmp.Name(), fileMode); err != nil {
		return nil, newError(WriteFailed, path, fmt.Errorf("failed to set container permissions; %w", err))
	}
	if err := rename(tmp.Name(), target); err != nil {
		return nil, newError(WriteFailed, path, fmt.Errorf("failed to move container into place; %w", err))
	}
	committed = true

	result.Bytes = n
	e.logger.Debug("icns written",
		"path", path,
		"sizes", len(result.Written),
		"skipped", len(result.Skipped),
		"bytes", n)

	return result, nil
}

// render produces the PNG payload for one size. Panics from the resampler
// are reported as errors so that a single bad size is skippable.
func (e *Encoder) render(src image.Image, size int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("resampler panicked: %v", r)
		}
	}()

	img, err := e.resampler.Resample(src, size)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("resampler returned no image")
	}
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		return nil, fmt.Errorf("resampler returned %dx%d, want %dx%d", b.Dx(), b.Dy(), size, size)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: e.compression}
	if err := enc.Encode(&buf, toNRGBA(img)); err != nil {
		return nil, fmt.Errorf("failed to encode png; %w", err)
	}

	return buf.Bytes(), nil
}

// toNRGBA converts img to a non-premultiplied 8-bit RGBA raster anchored at
// the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func validateSource(src image.Image) error {
	if src == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidSource)
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSource, b.Dx(), b.Dy())
	}
	return nil
}

// resolveLink returns the file path refers to when path is a symbolic
// link, or path itself otherwise. A dangling link resolves to the target
// it names so the link is kept.
func resolveLink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dest, err := os.Readlink(path)
	if err != nil {
		return path
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return dest
}

// createTemp opens a temporary sibling of path. Writing to a sibling keeps
// the final rename on one filesystem.
func createTemp(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("empty destination path")
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("destination is a directory")
	}

	dir := filepath.Dir(path)
	base := strings.TrimPrefix(filepath.Base(path), ".")
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file in %s; %w", dir, err)
	}
	return tmp, nil
}
