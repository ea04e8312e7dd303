package raster

import (
	"io"

	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/header"
	"github.com/vparker/pngdecode/internal/pngerr"
)

// adam7StartCol, adam7StartRow, adam7ColInc and adam7RowInc describe the
// seven Adam7 passes in pass order.
var (
	adam7StartCol = [7]int{0, 4, 0, 2, 0, 1, 0}
	adam7StartRow = [7]int{0, 0, 4, 0, 2, 0, 1}
	adam7ColInc   = [7]int{8, 8, 4, 4, 2, 2, 1}
	adam7RowInc   = [7]int{8, 8, 8, 4, 4, 2, 2}
)

// passDims returns the seven (width, height) pairs for an image of the
// given full dimensions. A pass whose starting column/row falls outside
// the image has width/height 0 and contributes nothing.
func passDims(width, height int) (pw, ph [7]int) {
	for i := 0; i < 7; i++ {
		pw[i] = ceilDiv(width, adam7StartCol[i], adam7ColInc[i])
		ph[i] = ceilDiv(height, adam7StartRow[i], adam7RowInc[i])
	}
	return
}

func ceilDiv(total, start, inc int) int {
	if total <= start {
		return 0
	}
	return (total - start + inc - 1) / inc
}

// Decode composes a full raster from the inflated (still filtered) byte
// stream, defiltering it scanline by scanline and dispatching on the
// IHDR's interlace method.
func Decode(ihdr header.IHDR, inflated []byte, palette header.PLTE, opts Options) (*Image, error) {
	img := NewImage(int(ihdr.Width), int(ihdr.Height))

	switch ihdr.InterlaceMethod {
	case 0:
		if err := decodeNullInterlace(img, ihdr, inflated, palette, opts); err != nil {
			return nil, err
		}
	case 1:
		if err := decodeAdam7(img, ihdr, inflated, palette, opts); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(pngerr.ErrInvalidHeader, "unsupported interlace method %d", ihdr.InterlaceMethod)
	}
	return img, nil
}

func decodeNullInterlace(img *Image, ihdr header.IHDR, inflated []byte, palette header.PLTE, opts Options) error {
	width, height := int(ihdr.Width), int(ihdr.Height)
	sc := NewScanner(inflated, width, height, ihdr.ColorType, ihdr.BitDepth, palette, opts)
	for row := 0; row < height; row++ {
		pixels, err := sc.Next()
		if err == io.EOF {
			return errors.Wrap(pngerr.ErrTruncatedStream, "ran out of scanlines")
		}
		if err != nil {
			return err
		}
		for col, p := range pixels {
			img.Set(row, col, p)
		}
	}
	return nil
}

func decodeAdam7(img *Image, ihdr header.IHDR, inflated []byte, palette header.PLTE, opts Options) error {
	width, height := int(ihdr.Width), int(ihdr.Height)
	pw, ph := passDims(width, height)

	offset := 0
	for i := 0; i < 7; i++ {
		if pw[i] == 0 || ph[i] == 0 {
			// The empty-pass rule: a pass with zero width or height
			// contributes nothing and consumes zero bytes.
			continue
		}

		dataSize := scanlineSize(ihdr.ColorType, ihdr.BitDepth, pw[i])
		stride := 1 + dataSize
		length := stride * ph[i]
		if offset+length > len(inflated) {
			return errors.Wrap(pngerr.ErrTruncatedStream, "not enough pixel data for Adam7 pass")
		}
		segment := inflated[offset : offset+length]
		offset += length

		sc := NewScanner(segment, pw[i], ph[i], ihdr.ColorType, ihdr.BitDepth, palette, opts)
		for r := 0; r < ph[i]; r++ {
			pixels, err := sc.Next()
			if err != nil {
				return err
			}
			fullRow := r*adam7RowInc[i] + adam7StartRow[i]
			for c, p := range pixels {
				fullCol := c*adam7ColInc[i] + adam7StartCol[i]
				img.Set(fullRow, fullCol, p)
			}
		}
	}
	return nil
}
