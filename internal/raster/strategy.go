package raster

import (
	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/header"
	"github.com/vparker/pngdecode/internal/pngerr"
)

// extractSample pulls the index-th bitDepth-wide sample out of a packed
// scanline. Sub-byte pixels never cross byte boundaries and pack with
// the leftmost pixel in the high-order bits of each byte.
func extractSample(scanline []byte, index int, bitDepth uint8) uint8 {
	if bitDepth == 8 {
		return scanline[index]
	}
	k := int(bitDepth)
	m := 8 / k
	block := scanline[index/m]
	pos := index % m
	shift := k * (m - 1 - pos)
	mask := byte(1<<uint(k)) - 1
	return (block >> uint(shift)) & mask
}

// rescale maps a bitDepth-wide sample onto the full 8-bit range.
func rescale(sample uint8, bitDepth uint8) uint8 {
	if bitDepth == 8 {
		return sample
	}
	maxVal := uint32(1<<bitDepth) - 1
	return uint8(uint32(sample) * 255 / maxVal)
}

// MaterializePixel materializes one RGBA pixel at column col of a defiltered
// scanline (the filter-method byte already stripped), dispatching on
// color type as a closed set of tagged variants rather than a vtable.
func MaterializePixel(ct header.ColorType, bitDepth uint8, palette header.PLTE, scanline []byte, col int, opts Options) (Pixel, error) {
	switch ct {
	case header.Grayscale:
		sample := extractSample(scanline, col, bitDepth)
		gray := sample
		if opts.RescaleSubByteGray {
			gray = rescale(sample, bitDepth)
		}
		return Pixel{R: gray, G: gray, B: gray, A: 255}, nil

	case header.RGB:
		off := col * 3
		return Pixel{R: scanline[off], G: scanline[off+1], B: scanline[off+2], A: 255}, nil

	case header.Palette:
		idx := int(extractSample(scanline, col, bitDepth))
		if idx >= len(palette.Entries) {
			return Pixel{}, errors.WithStack(&pngerr.PaletteOutOfRange{Index: idx, PaletteLen: len(palette.Entries)})
		}
		e := palette.Entries[idx]
		return Pixel{R: e.R, G: e.G, B: e.B, A: 255}, nil

	case header.GrayscaleAlpha:
		off := col * 2
		gray := scanline[off]
		return Pixel{R: gray, G: gray, B: gray, A: scanline[off+1]}, nil

	case header.RGBA:
		off := col * 4
		return Pixel{R: scanline[off], G: scanline[off+1], B: scanline[off+2], A: scanline[off+3]}, nil
	}
	return Pixel{}, errors.Errorf("raster: unhandled color type %d", ct)
}
