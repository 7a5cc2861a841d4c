// Package resample renders square rasters from arbitrary source images.
package resample

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultFilter is the filter used when none is configured.
const DefaultFilter = "lanczos3"

// ErrEmptySource is returned when the source image has no pixels.
var ErrEmptySource = errors.New("source image is empty")

// Resampler renders src into a new size×size raster.
// Non-square sources are stretched to fill the square.
type Resampler interface {
	Resample(src image.Image, size int) (image.Image, error)
}

// Func adapts an ordinary function to the Resampler interface.
type Func func(src image.Image, size int) (image.Image, error)

// Resample calls f(src, size).
func (f Func) Resample(src image.Image, size int) (image.Image, error) {
	return f(src, size)
}

// nfntResampler scales with github.com/nfnt/resize kernels.
type nfntResampler struct {
	interp resize.InterpolationFunction
}

func (r nfntResampler) Resample(src image.Image, size int) (image.Image, error) {
	if err := checkInput(src, size); err != nil {
		return nil, err
	}
	out := resize.Resize(uint(size), uint(size), src, r.interp)
	return checkOutput(out, size)
}

// drawResampler scales with golang.org/x/image/draw interpolators.
type drawResampler struct {
	scaler draw.Scaler
}

func (r drawResampler) Resample(src image.Image, size int) (image.Image, error) {
	if err := checkInput(src, size); err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	r.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return checkOutput(dst, size)
}

var filters = map[string]Resampler{
	"lanczos3":   nfntResampler{interp: resize.Lanczos3},
	"bicubic":    nfntResampler{interp: resize.Bicubic},
	"mitchell":   nfntResampler{interp: resize.MitchellNetravali},
	"catmullrom": drawResampler{scaler: draw.CatmullRom},
	"bilinear":   drawResampler{scaler: draw.BiLinear},
}

// ParseFilter returns the Resampler registered under name (case-insensitive).
// An empty name selects DefaultFilter.
func ParseFilter(name string) (Resampler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultFilter
	}
	r, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampling filter %q; must be one of: %s",
			name, strings.Join(FilterNames(), ", "))
	}
	return r, nil
}

// Default returns the DefaultFilter resampler.
func Default() Resampler {
	return filters[DefaultFilter]
}

// FilterNames lists the registered filter names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidFilter reports whether name is a registered filter.
func IsValidFilter(name string) bool {
	_, err := ParseFilter(name)
	return err == nil
}

func checkInput(src image.Image, size int) error {
	if size < 1 {
		return fmt.Errorf("invalid target size %d", size)
	}
	if src == nil {
		return ErrEmptySource
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return fmt.Errorf("%w: %dx%d", ErrEmptySource, b.Dx(), b.Dy())
	}
	return nil
}

func checkOutput(out image.Image, size int) (image.Image, error) {
	if out == nil {
		return nil, fmt.Errorf("resampler produced no image for size %d", size)
	}
	b := out.Bounds()
	if b.Dx() != size || b.Dy() != size {
		return nil, fmt.Errorf("resampler produced %dx%d, want %dx%d", b.Dx(), b.Dy(), size, size)
	}
	return out, nil
}
