// Package filter applies the four PNG reverse filters (Sub, Up, Average,
// Paeth) plus the None no-op to a single scanline, in place.
package filter

import (
	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/pngerr"
)

// Method is a per-scanline filter type byte.
type Method byte

const (
	None    Method = 0
	Sub     Method = 1
	Up      Method = 2
	Average Method = 3
	Paeth   Method = 4
)

// Reconstruct defilters cur in place given the previously defiltered
// scanline prev (all zeros, same length as cur, for a pass's first row)
// and bpp, the number of bytes spanning one whole pixel (1 for sub-byte
// pixels). cur and prev must be the same length.
func Reconstruct(method Method, cur, prev []byte, bpp int) error {
	switch method {
	case None:
		return nil
	case Sub:
		for i := range cur {
			cur[i] = cur[i] + left(cur, i, bpp)
		}
	case Up:
		for i := range cur {
			cur[i] = cur[i] + prev[i]
		}
	case Average:
		for i := range cur {
			a := int(left(cur, i, bpp))
			b := int(prev[i])
			cur[i] = cur[i] + byte((a+b)/2)
		}
	case Paeth:
		for i := range cur {
			a := left(cur, i, bpp)
			b := prev[i]
			c := left(prev, i, bpp)
			cur[i] = cur[i] + paethPredictor(a, b, c)
		}
	default:
		return errors.WithStack(&pngerr.InvalidFilterMethod{Value: byte(method)})
	}
	return nil
}

// left returns the byte bpp positions to the left of i in s, or 0 if
// there is no such byte.
func left(s []byte, i, bpp int) byte {
	if i < bpp {
		return 0
	}
	return s[i-bpp]
}

// paethPredictor implements the PNG Paeth predictor. All arithmetic is
// signed; the result is truncated to a byte for the mod-256 addition at
// the call site. Ties break in the order a, b, c.
func paethPredictor(a, b, c byte) byte {
	pa, pb, pc := paethScores(int(a), int(b), int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func paethScores(a, b, c int) (pa, pb, pc int) {
	p := a + b - c
	pa = abs(p - a)
	pb = abs(p - b)
	pc = abs(p - c)
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
