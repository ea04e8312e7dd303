// Package header interprets the IHDR and PLTE chunks: it validates the
// image header fields against the PNG 1.2 legality table and builds the
// palette used by color type 3.
package header

import (
	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/pngerr"
)

// ColorType enumerates the five PNG color models this core understands.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Palette        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

// IHDR is the validated contents of the image header chunk.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// maxDimension bounds width/height before any raster allocation, well
// under the PNG-legal 2^31-1 ceiling, per spec's DimensionsExceedLimit.
const maxDimension = 1 << 20

// ErrInvalidHeader reports an IHDR whose fields are absent, mis-sized, or
// form an illegal (color type, bit depth) combination.
var ErrInvalidHeader = pngerr.ErrInvalidHeader

// ErrDimensionsExceedLimit reports width/height too large to allocate.
var ErrDimensionsExceedLimit = pngerr.ErrDimensionsExceedLimit

// legalBitDepths maps each color type to its allowed bit depths.
var legalBitDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8},
	RGB:            {8},
	Palette:        {1, 2, 4, 8},
	GrayscaleAlpha: {8},
	RGBA:           {8},
}

// ParseIHDR validates and decodes the 13-byte IHDR payload.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != 13 {
		return IHDR{}, errors.Wrapf(ErrInvalidHeader, "IHDR length %d, want 13", len(data))
	}

	width := beUint32(data[0:4])
	height := beUint32(data[4:8])
	if width == 0 || height == 0 || width > 1<<31-1 || height > 1<<31-1 {
		return IHDR{}, errors.Wrapf(ErrInvalidHeader, "invalid dimensions %dx%d", width, height)
	}

	ihdr := IHDR{
		Width:             width,
		Height:            height,
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}

	depths, ok := legalBitDepths[ihdr.ColorType]
	if !ok {
		return IHDR{}, errors.Wrapf(ErrInvalidHeader, "unknown color type %d", ihdr.ColorType)
	}
	if !contains(depths, ihdr.BitDepth) {
		return IHDR{}, errors.Wrapf(ErrInvalidHeader, "color type %d does not allow bit depth %d", ihdr.ColorType, ihdr.BitDepth)
	}
	if ihdr.CompressionMethod != 0 {
		return IHDR{}, errors.Wrap(ErrInvalidHeader, "unsupported compression method")
	}
	if ihdr.FilterMethod != 0 {
		return IHDR{}, errors.Wrap(ErrInvalidHeader, "unsupported filter method")
	}
	if ihdr.InterlaceMethod != 0 && ihdr.InterlaceMethod != 1 {
		return IHDR{}, errors.Wrapf(ErrInvalidHeader, "unsupported interlace method %d", ihdr.InterlaceMethod)
	}

	if width > maxDimension || height > maxDimension {
		return IHDR{}, errors.WithStack(ErrDimensionsExceedLimit)
	}

	return ihdr, nil
}

// SamplesPerPixel returns the number of channel samples a single pixel of
// this color type carries.
func (c ColorType) SamplesPerPixel() int {
	switch c {
	case Grayscale, Palette:
		return 1
	case RGB:
		return 3
	case GrayscaleAlpha:
		return 2
	case RGBA:
		return 4
	}
	return 0
}

// PaletteEntry is one 8-bit (r, g, b) palette triple.
type PaletteEntry struct {
	R, G, B uint8
}

// PLTE is the ordered palette table for color type 3.
type PLTE struct {
	Entries []PaletteEntry
}

// ErrInvalidPalette reports a malformed, duplicate, or disallowed PLTE.
var ErrInvalidPalette = pngerr.ErrInvalidPalette

// ParsePLTE validates and decodes a PLTE chunk's data.
func ParsePLTE(data []byte) (PLTE, error) {
	if len(data)%3 != 0 {
		return PLTE{}, errors.Wrapf(ErrInvalidPalette, "length %d not a multiple of 3", len(data))
	}
	n := len(data) / 3
	if n > 256 {
		return PLTE{}, errors.Wrapf(ErrInvalidPalette, "%d entries exceeds 256", n)
	}
	entries := make([]PaletteEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = PaletteEntry{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}
	return PLTE{Entries: entries}, nil
}

// AllowsPalette reports whether a PLTE chunk is legal for this color type.
func (c ColorType) AllowsPalette() bool {
	switch c {
	case RGB, Palette, RGBA:
		return true
	default:
		return false
	}
}

// RequiresPalette reports whether this color type cannot decode without
// a PLTE chunk.
func (c ColorType) RequiresPalette() bool {
	return c == Palette
}

func contains(xs []uint8, x uint8) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
