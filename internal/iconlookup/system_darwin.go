//go:build darwin && cgo

package iconlookup

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework CoreServices
#import <Cocoa/Cocoa.h>
#import <CoreServices/CoreServices.h>
#include <stdlib.h>

static void* iconForFileType(const char* fileType) {
    @autoreleasepool {
        NSString* t = [NSString stringWithUTF8String:fileType];
        NSImage* icon = [[NSWorkspace sharedWorkspace] iconForFileType:t];
        [icon retain];
        return (void*)icon;
    }
}

static void* iconForHFSCode(unsigned int code) {
    @autoreleasepool {
        NSString* t = NSFileTypeForHFSTypeCode((OSType)code);
        if (t == nil) {
            return NULL;
        }
        NSImage* icon = [[NSWorkspace sharedWorkspace] iconForFileType:t];
        [icon retain];
        return (void*)icon;
    }
}

static void* iconForPath(const char* path) {
    @autoreleasepool {
        NSString* p = [NSString stringWithUTF8String:path];
        NSImage* icon = [[NSWorkspace sharedWorkspace] iconForFile:p];
        [icon retain];
        return (void*)icon;
    }
}

static int renderIcon(void* iconPtr, unsigned char* buffer, int size) {
    @autoreleasepool {
        NSImage* image = (NSImage*)iconPtr;
        NSBitmapImageRep* bitmap = [[NSBitmapImageRep alloc]
            initWithBitmapDataPlanes:NULL
            pixelsWide:size
            pixelsHigh:size
            bitsPerSample:8
            samplesPerPixel:4
            hasAlpha:YES
            isPlanar:NO
            colorSpaceName:NSDeviceRGBColorSpace
            bytesPerRow:size * 4
            bitsPerPixel:32];
        if (bitmap == nil) {
            return 0;
        }

        NSGraphicsContext* ctx = [NSGraphicsContext graphicsContextWithBitmapImageRep:bitmap];
        [NSGraphicsContext saveGraphicsState];
        [NSGraphicsContext setCurrentContext:ctx];
        [ctx setImageInterpolation:NSImageInterpolationHigh];
        [image drawInRect:NSMakeRect(0, 0, size, size)
            fromRect:NSZeroRect
            operation:NSCompositingOperationCopy
            fraction:1.0];
        [NSGraphicsContext restoreGraphicsState];

        memcpy(buffer, [bitmap bitmapData], size * size * 4);
        [bitmap release];
        return 1;
    }
}

static void releaseIcon(void* iconPtr) {
    if (iconPtr) {
        [(NSImage*)iconPtr release];
    }
}
*/
import "C"

import (
	"context"
	"fmt"
	"image"
	"unsafe"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
)

// SystemProvider renders icons from NSWorkspace.
type SystemProvider struct {
	size int
}

// NewSystemProvider creates a SystemProvider rendering at size×size pixels.
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

	var iconPtr unsafe.Pointer
	switch ref.Kind {
	case catalog.RefContentType:
		cType := C.CString(ref.Value)
		defer C.free(unsafe.Pointer(cType))
		iconPtr = C.iconForFileType(cType)
	case catalog.RefHFSCode:
		code, err := hfsCode(ref.Value)
		if err != nil {
			return nil, err
		}
		iconPtr = C.iconForHFSCode(C.uint(code))
	case catalog.RefPath:
		cPath := C.CString(ref.Value)
		defer C.free(unsafe.Pointer(cPath))
		iconPtr = C.iconForPath(cPath)
	default:
		return nil, ErrUnsupported
	}

	if iconPtr == nil {
		return nil, fmt.Errorf("no system icon for %s", ref)
	}
	defer C.releaseIcon(iconPtr)

	img := image.NewRGBA(image.Rect(0, 0, p.size, p.size))
	if C.renderIcon(iconPtr, (*C.uchar)(unsafe.Pointer(&img.Pix[0])), C.int(p.size)) == 0 {
		return nil, fmt.Errorf("failed to render system icon for %s", ref)
	}

	return img, nil
}

// hfsCode packs a four-byte code such as "fldr" into an OSType.
func hfsCode(s string) (uint32, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("invalid HFS type code %q; must be four bytes", s)
	}
	return uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3]), nil
}
