package pngdecode

import "github.com/vparker/pngdecode/internal/pngerr"

// The error taxonomy below mirrors the decoder's failure modes one for
// one. Sentinel variants are tested with errors.Is; structured variants
// carry diagnostic context and are tested with errors.As. Every raising
// site wraps these with github.com/pkg/errors, so errors.Cause and the
// "%+v" formatting verb recover a stack trace back to the origin.
var (
	ErrInvalidSignature       = pngerr.ErrInvalidSignature
	ErrTruncatedStream        = pngerr.ErrTruncatedStream
	ErrInvalidHeader          = pngerr.ErrInvalidHeader
	ErrInvalidPalette         = pngerr.ErrInvalidPalette
	ErrNonContiguousIdat      = pngerr.ErrNonContiguousIdat
	ErrTrailingBytes          = pngerr.ErrTrailingBytes
	ErrDimensionsExceedLimit  = pngerr.ErrDimensionsExceedLimit
	ErrChunkTooLarge          = pngerr.ErrChunkTooLarge
	ErrDeflateError           = pngerr.ErrDeflateError
	ErrDeflateOutOfMemory     = pngerr.ErrDeflateOutOfMemory
	ErrDeflateVersionMismatch = pngerr.ErrDeflateVersionMismatch
)

// CrcMismatch reports a chunk whose stored CRC does not match the
// computed CRC over its type and data.
type CrcMismatch = pngerr.CrcMismatch

// UnsupportedCriticalChunk reports a critical chunk type outside the
// IHDR/PLTE/IDAT/IEND set this core implements.
type UnsupportedCriticalChunk = pngerr.UnsupportedCriticalChunk

// UnknownAncillaryChunk reports an ancillary chunk type outside the set
// recognized by name, raised only under Options.StrictAncillary.
type UnknownAncillaryChunk = pngerr.UnknownAncillaryChunk

// InvalidFilterMethod reports an out-of-range per-scanline filter byte.
type InvalidFilterMethod = pngerr.InvalidFilterMethod

// PaletteOutOfRange reports a sample used as a palette index that is not
// smaller than the palette's length.
type PaletteOutOfRange = pngerr.PaletteOutOfRange
