//go:build !darwin || !cgo

package iconlookup

import (
	"context"
	"image"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
)

// SystemProvider is unavailable on this platform; every lookup returns
// ErrUnsupported.
type SystemProvider struct {
	size int
}

// NewSystemProvider creates a SystemProvider.
func NewSystemProvider(size int) *SystemProvider {
	if size < 1 {
		size = DefaultRenderSize
	}
	return &SystemProvider{size: size}
}

// Lookup implements Provider.
func (p *SystemProvider) Lookup(ctx context.Context, ref catalog.Ref) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}
