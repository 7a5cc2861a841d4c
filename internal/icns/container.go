package icns

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// headerLen is the length of the file header and of every element header:
// a four-byte type followed by a big-endian uint32 length.
const headerLen = 8

// OSType is a four-character element tag.
type OSType [4]byte

func (t OSType) String() string {
	return string(t[:])
}

var (
	typeFile = OSType{'i', 'c', 'n', 's'}
	typeTOC  = OSType{'T', 'O', 'C', ' '}
)

// Element types for PNG-backed representations, keyed by pixel size.
var sizeTypes = map[int]OSType{
	16:   {'i', 'c', 'p', '4'},
	32:   {'i', 'c', 'p', '5'},
	64:   {'i', 'c', 'p', '6'},
	128:  {'i', 'c', '0', '7'},
	256:  {'i', 'c', '0', '8'},
	512:  {'i', 'c', '0', '9'},
	1024: {'i', 'c', '1', '0'},
}

// OSTypeForSize returns the element type used for a size×size representation.
func OSTypeForSize(size int) (OSType, bool) {
	t, ok := sizeTypes[size]
	return t, ok
}

type element struct {
	typ  OSType
	data []byte
}

// container accumulates elements and serializes them as one icns file.
type container struct {
	elements []element
	toc      bool
}

func (c *container) add(typ OSType, data []byte) {
	c.elements = append(c.elements, element{typ: typ, data: data})
}

func (c *container) len() int {
	return len(c.elements)
}

// size returns the total serialized length, including the file header.
func (c *container) size() (uint32, error) {
	total := uint64(headerLen)
	if c.toc {
		total += uint64(headerLen + headerLen*len(c.elements))
	}
	for _, e := range c.elements {
		elemLen := uint64(headerLen + len(e.data))
		if elemLen > math.MaxUint32 {
			return 0, fmt.Errorf("element %s too large: %d bytes", e.typ, elemLen)
		}
		total += elemLen
	}
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("container too large: %d bytes", total)
	}
	return uint32(total), nil
}

// WriteTo writes the container to w.
func (c *container) WriteTo(w io.Writer) (int64, error) {
	total, err := c.size()
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, total)
	buf = appendHeader(buf, typeFile, total)

	if c.toc {
		buf = appendHeader(buf, typeTOC, uint32(headerLen+headerLen*len(c.elements)))
		for _, e := range c.elements {
			buf = appendHeader(buf, e.typ, uint32(headerLen+len(e.data)))
		}
	}

	for _, e := range c.elements {
		buf = appendHeader(buf, e.typ, uint32(headerLen+len(e.data)))
		buf = append(buf, e.data...)
	}

	n, err := w.Write(buf)
	return int64(n), err
}

func appendHeader(buf []byte, typ OSType, length uint32) []byte {
	buf = append(buf, typ[:]...)
	return binary.BigEndian.AppendUint32(buf, length)
}
