// Package chunk implements the container parser: PNG signature check,
// chunk framing, CRC validation, and chunk sequencing. It does not
// interpret pixel data; IDAT payloads are handed back concatenated for
// the inflater, and IHDR/PLTE are handed to the header package.
package chunk

import (
	"bytes"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/bitio"
	"github.com/vparker/pngdecode/internal/crcoracle"
	"github.com/vparker/pngdecode/internal/header"
	"github.com/vparker/pngdecode/internal/pngerr"
)

var signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// maxChunkLength bounds a single chunk's data length before its CRC
// scratch buffer is allocated, per the spec's resource ceilings.
const maxChunkLength = 1 << 28

// Result is everything the container parser extracts for the rest of
// the decode pipeline.
type Result struct {
	IHDR       header.IHDR
	Palette    header.PLTE
	HasPalette bool
	IDAT       []byte

	// UnknownAncillary lists, in encounter order, the type names of
	// ancillary chunks outside the set KnownAncillary recognizes by
	// name. Only filled when Parse runs non-strict; in strict mode the
	// first such chunk is rejected with UnknownAncillaryChunk instead.
	UnknownAncillary []string
}

// Parse reads a full PNG container from r: signature, then chunks up to
// and including IEND, verifying every CRC along the way. When strict is
// true, an ancillary chunk outside the KnownAncillary set is rejected
// rather than skipped.
func Parse(r io.Reader, strict bool) (*Result, error) {
	br := bitio.NewReader(r)

	var sig [8]byte
	if err := br.ReadFull(sig[:]); err != nil {
		return nil, errors.WithStack(pngerr.ErrInvalidSignature)
	}
	if sig != signature {
		return nil, errors.WithStack(pngerr.ErrInvalidSignature)
	}

	var (
		res             Result
		seenIHDR        bool
		seenIDAT        bool
		idatInterrupted bool
		done            bool
		idat            bytes.Buffer
		firstChunk      = true
	)

	for !done {
		length, err := br.Uint32()
		if err != nil {
			return nil, errors.Wrap(pngerr.ErrTruncatedStream, "reading chunk length")
		}
		if length > maxChunkLength {
			return nil, errors.Wrapf(pngerr.ErrChunkTooLarge, "chunk length %d", length)
		}

		scratch := make([]byte, 4+length)
		if err := br.ReadFull(scratch); err != nil {
			return nil, errors.Wrap(pngerr.ErrTruncatedStream, "reading chunk type and data")
		}
		var typ Type
		copy(typ[:], scratch[:4])
		data := scratch[4:]

		computed := crcoracle.Compute(scratch)
		stored, err := br.Uint32()
		if err != nil {
			return nil, errors.Wrap(pngerr.ErrTruncatedStream, "reading chunk crc")
		}
		if stored != computed {
			return nil, errors.WithStack(&pngerr.CrcMismatch{
				ChunkType: typ.String(),
				Expected:  stored,
				Actual:    computed,
			})
		}

		isIDAT := typ == TypeIDAT
		if seenIDAT && !isIDAT {
			idatInterrupted = true
		}

		switch typ {
		case TypeIHDR:
			if !firstChunk || seenIHDR {
				return nil, errors.Wrap(pngerr.ErrInvalidHeader, "IHDR must be the first chunk and appear once")
			}
			ihdr, err := header.ParseIHDR(data)
			if err != nil {
				return nil, err
			}
			res.IHDR = ihdr
			seenIHDR = true

		case TypePLTE:
			if !seenIHDR {
				return nil, errors.Wrap(pngerr.ErrInvalidHeader, "PLTE before IHDR")
			}
			if res.HasPalette {
				return nil, errors.Wrap(pngerr.ErrInvalidPalette, "duplicate PLTE")
			}
			if seenIDAT {
				return nil, errors.Wrap(pngerr.ErrInvalidPalette, "PLTE after IDAT")
			}
			if !res.IHDR.ColorType.AllowsPalette() {
				return nil, errors.Wrapf(pngerr.ErrInvalidPalette, "PLTE forbidden for color type %d", res.IHDR.ColorType)
			}
			plte, err := header.ParsePLTE(data)
			if err != nil {
				return nil, err
			}
			res.Palette = plte
			res.HasPalette = true

		case TypeIDAT:
			if !seenIHDR {
				return nil, errors.Wrap(pngerr.ErrInvalidHeader, "IDAT before IHDR")
			}
			if seenIDAT && idatInterrupted {
				return nil, errors.WithStack(pngerr.ErrNonContiguousIdat)
			}
			idat.Write(data)
			seenIDAT = true

		case TypeIEND:
			if length != 0 {
				return nil, errors.Wrap(pngerr.ErrInvalidHeader, "IEND must have zero length")
			}
			if !seenIHDR {
				return nil, errors.Wrap(pngerr.ErrInvalidHeader, "IEND before IHDR")
			}
			var extra [1]byte
			if _, err := io.ReadFull(r, extra[:]); err != io.EOF {
				if err == nil {
					return nil, errors.WithStack(pngerr.ErrTrailingBytes)
				}
				return nil, errors.Wrap(pngerr.ErrTruncatedStream, "checking for trailing bytes")
			}
			done = true

		default:
			if typ.Critical() {
				return nil, errors.WithStack(&pngerr.UnsupportedCriticalChunk{ChunkType: typ.String()})
			}
			// Ancillary chunk: CRC already verified above, data discarded.
			if !KnownAncillary(typ) {
				if strict {
					return nil, errors.WithStack(&pngerr.UnknownAncillaryChunk{ChunkType: typ.String()})
				}
				log.Printf("chunk: skipping unrecognized ancillary chunk %q", typ.String())
				res.UnknownAncillary = append(res.UnknownAncillary, typ.String())
			}
		}

		firstChunk = false
	}

	if !seenIHDR {
		return nil, errors.Wrap(pngerr.ErrInvalidHeader, "missing IHDR")
	}
	if !seenIDAT {
		return nil, errors.Wrap(pngerr.ErrTruncatedStream, "missing IDAT")
	}

	res.IDAT = idat.Bytes()
	return &res, nil
}
