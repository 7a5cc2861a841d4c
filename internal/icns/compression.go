package icns

import (
	"fmt"
	"image/png"
	"strings"
)

// Compression level names accepted by ParseCompression.
const (
	CompressionDefault = "default"
	CompressionNone    = "none"
	CompressionSpeed   = "best-speed"
	CompressionBest    = "best-compression"
)

// ParseCompression maps a configuration name to a PNG compression level.
// An empty name selects CompressionDefault.
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CompressionDefault:
		return png.DefaultCompression, nil
	case CompressionNone:
		return png.NoCompression, nil
	case CompressionSpeed:
		return png.BestSpeed, nil
	case CompressionBest:
		return png.BestCompression, nil
	default:
		return png.DefaultCompression, fmt.Errorf("unknown compression %q; must be one of: %s, %s, %s, %s",
			name, CompressionDefault, CompressionNone, CompressionSpeed, CompressionBest)
	}
}
