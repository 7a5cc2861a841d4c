package iconlookup

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/fsutil"
)

// FileProvider serves path references that point at image files. Existing
// .icns files are decoded at their largest representation.
type FileProvider struct{}

// NewFileProvider creates a FileProvider.
func NewFileProvider() *FileProvider {
	return &FileProvider{}
}

// Lookup implements Provider.
func (p *FileProvider) Lookup(ctx context.Context, ref catalog.Ref) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref.Kind != catalog.RefPath {
		return nil, ErrUnsupported
	}

	info, err := os.Stat(ref.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s; %w", ref.Value, err)
	}
	if info.IsDir() {
		return nil, ErrUnsupported
	}

	mimeType, err := fsutil.DetectFileMIME(ref.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s; %w", ref.Value, err)
	}

	switch {
	case mimeType == fsutil.MIMEICNS:
		return decodeICNS(ref.Value)
	case fsutil.IsRasterMIME(mimeType):
		img, err := imaging.Open(ref.Value, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s; %w", ref.Value, err)
		}
		return img, nil
	default:
		return nil, ErrUnsupported
	}
}

func decodeICNS(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s; %w", path, err)
	}
	defer f.Close()

	img, err := icns.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icns %s; %w", path, err)
	}
	return img, nil
}
