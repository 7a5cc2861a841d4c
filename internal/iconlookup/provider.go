// Package iconlookup resolves catalog references to raster icon images.
//
// Providers are the boundary between the catalog and whatever produces icon
// pixels: image files on disk, or the operating system's icon service.
package iconlookup

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
)

// DefaultRenderSize is the pixel size system icons are rendered at.
const DefaultRenderSize = 1024

// ErrUnsupported is returned when a provider cannot serve a reference.
var ErrUnsupported = errors.New("icon lookup not supported")

// Provider returns the icon image for a catalog reference.
type Provider interface {
	Lookup(ctx context.Context, ref catalog.Ref) (image.Image, error)
}

// Chain tries each provider in order. A provider returning ErrUnsupported
// passes the reference to the next one; any other result is final.
type Chain []Provider

// Lookup implements Provider.
func (c Chain) Lookup(ctx context.Context, ref catalog.Ref) (image.Image, error) {
	for _, p := range c {
		img, err := p.Lookup(ctx, ref)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		return img, err
	}
	return nil, fmt.Errorf("%w: no provider for %s", ErrUnsupported, ref)
}

// Default returns the file provider followed by the system provider.
func Default() Provider {
	return Chain{NewFileProvider(), NewSystemProvider(DefaultRenderSize)}
}
