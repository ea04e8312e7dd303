package pngdecode

import (
	"image"
	"image/color"
	"io"

	"github.com/vparker/pngdecode/internal/chunk"
	"github.com/vparker/pngdecode/internal/inflate"
	"github.com/vparker/pngdecode/internal/raster"
)

// Image is the decoder's output raster: a row-major grid of RGBA-8
// pixels, independent of the standard library's image.Image.
type Image = raster.Image

// Pixel is one fully-materialized RGBA sample.
type Pixel = raster.Pixel

// Options tunes decode policy: sub-8-bit grayscale rescaling (see
// RescaleSubByteGray) and handling of unrecognized ancillary chunks (see
// StrictAncillary).
type Options = raster.Options

// DefaultOptions is the PNG-spec-correct policy: sub-8-bit grayscale
// samples are rescaled to fill the full 8-bit range.
func DefaultOptions() Options { return raster.DefaultOptions() }

// Decode reads a full PNG bitstream from r and returns its decoded
// raster. The caller supplies and frees r; decoding is single-threaded
// and synchronous, and a partial raster is never returned on error.
func Decode(r io.Reader) (*Image, error) {
	return DecodeWithOptions(r, DefaultOptions())
}

// DecodeWithOptions is Decode with explicit policy for the rescale Open
// Question (spec §9(b)) and for strict ancillary-chunk handling.
func DecodeWithOptions(r io.Reader, opts Options) (*Image, error) {
	res, err := chunk.Parse(r, opts.StrictAncillary)
	if err != nil {
		return nil, err
	}

	inflated, err := inflate.Inflate(res.IDAT)
	if err != nil {
		return nil, err
	}

	return raster.Decode(res.IHDR, inflated, res.Palette, opts)
}

// ToImageNRGBA converts a decoded raster to a standard library
// image.NRGBA, for callers that want to hand the result to image/png,
// image/draw, or anything else that speaks image.Image. This lives
// outside the core raster type itself: the core's contract is a fixed
// 8-bit RGBA grid, not the stdlib image interface.
func ToImageNRGBA(im *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for row := 0; row < im.Height; row++ {
		for col := 0; col < im.Width; col++ {
			p := im.At(row, col)
			out.SetNRGBA(col, row, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return out
}
