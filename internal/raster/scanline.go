package raster

import (
	"io"

	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/filter"
	"github.com/vparker/pngdecode/internal/header"
	"github.com/vparker/pngdecode/internal/pngerr"
)

// bpp returns the number of bytes spanning one whole pixel, floored to 1
// for sub-byte pixels, used solely for defilter neighbor offsets.
func bpp(ct header.ColorType, bitDepth uint8) int {
	v := ct.SamplesPerPixel() * int(bitDepth) / 8
	if v < 1 {
		return 1
	}
	return v
}

// scanlineSize returns S, the number of packed data bytes (excluding the
// filter method byte) one scanline of the given pass width requires.
func scanlineSize(ct header.ColorType, bitDepth uint8, width int) int {
	bits := ct.SamplesPerPixel() * int(bitDepth) * width
	return (bits + 7) / 8
}

// Scanner walks a single pass's packed byte buffer one scanline at a
// time, defiltering each row against the previous defiltered row and
// materializing it into pixels. It holds a read-only view over buf and
// an owned previous-scanline buffer.
type Scanner struct {
	buf        []byte
	width      int
	height     int
	ct         header.ColorType
	bitDepth   uint8
	palette    header.PLTE
	opts       Options
	bpp        int
	dataSize   int
	prev       []byte
	row        int
}

// NewScanner prepares a scanner over buf, a pass's packed byte buffer of
// height scanlines of width pixels (each 1 filter byte + S data bytes).
func NewScanner(buf []byte, width, height int, ct header.ColorType, bitDepth uint8, palette header.PLTE, opts Options) *Scanner {
	return &Scanner{
		buf:      buf,
		width:    width,
		height:   height,
		ct:       ct,
		bitDepth: bitDepth,
		palette:  palette,
		opts:     opts,
		bpp:      bpp(ct, bitDepth),
		dataSize: scanlineSize(ct, bitDepth, width),
		prev:     make([]byte, scanlineSize(ct, bitDepth, width)),
	}
}

// StrideBytes returns 1+S, the number of bytes one scanline occupies in
// the packed buffer.
func (s *Scanner) StrideBytes() int {
	return 1 + s.dataSize
}

// Next reconstructs and materializes the next scanline's pixels, or
// returns io.EOF once height rows have been produced.
func (s *Scanner) Next() ([]Pixel, error) {
	if s.row >= s.height {
		return nil, io.EOF
	}
	offset := s.row * s.StrideBytes()
	if offset+s.StrideBytes() > len(s.buf) {
		return nil, errors.Wrap(pngerr.ErrTruncatedStream, "not enough pixel data for scanline")
	}

	filterByte := s.buf[offset]
	cur := make([]byte, s.dataSize)
	copy(cur, s.buf[offset+1:offset+1+s.dataSize])

	if err := filter.Reconstruct(filter.Method(filterByte), cur, s.prev, s.bpp); err != nil {
		return nil, err
	}

	pixels := make([]Pixel, s.width)
	for col := 0; col < s.width; col++ {
		p, err := MaterializePixel(s.ct, s.bitDepth, s.palette, cur, col, s.opts)
		if err != nil {
			return nil, err
		}
		pixels[col] = p
	}

	s.prev = cur
	s.row++
	return pixels, nil
}
