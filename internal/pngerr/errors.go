// Package pngerr is the shared error taxonomy for the decoder. Every
// component raises one of these variants so the root package never has
// to guess what went wrong from a bare string.
package pngerr

import "fmt"

// Sentinel errors for variants that carry no extra context. Use errors.Is
// to test for them; they are also wrapped with github.com/pkg/errors at
// the raising site for a captured stack.
var (
	ErrInvalidSignature        = simple("invalid PNG signature")
	ErrTruncatedStream         = simple("truncated stream")
	ErrInvalidHeader           = simple("invalid IHDR")
	ErrInvalidPalette          = simple("invalid PLTE")
	ErrNonContiguousIdat       = simple("IDAT chunks are not contiguous")
	ErrTrailingBytes           = simple("trailing bytes after IEND")
	ErrPaletteOutOfRange       = simple("palette index out of range")
	ErrDimensionsExceedLimit   = simple("dimensions exceed limit")
	ErrChunkTooLarge           = simple("chunk length exceeds limit")
	ErrDeflateError            = simple("deflate stream error")
	ErrDeflateOutOfMemory      = simple("deflate allocation failure")
	ErrDeflateVersionMismatch  = simple("deflate/zlib version mismatch")
	ErrInvalidFilterMethodBase = simple("invalid filter method")
)

type baseErr string

func simple(s string) error { return baseErr(s) }

func (e baseErr) Error() string { return string(e) }

// CrcMismatch reports a chunk whose stored CRC does not match the
// computed CRC over its type and data.
type CrcMismatch struct {
	ChunkType string
	Expected  uint32
	Actual    uint32
}

func (e *CrcMismatch) Error() string {
	return fmt.Sprintf("crc mismatch in chunk %q: expected %08x, got %08x", e.ChunkType, e.Expected, e.Actual)
}

// UnsupportedCriticalChunk reports a critical chunk type outside the
// IHDR/PLTE/IDAT/IEND set this core implements.
type UnsupportedCriticalChunk struct {
	ChunkType string
}

func (e *UnsupportedCriticalChunk) Error() string {
	return fmt.Sprintf("unsupported critical chunk %q", e.ChunkType)
}

// UnknownAncillaryChunk reports an ancillary chunk type outside the set
// recognized by name, raised only when the caller opted into strict
// ancillary handling.
type UnknownAncillaryChunk struct {
	ChunkType string
}

func (e *UnknownAncillaryChunk) Error() string {
	return fmt.Sprintf("unknown ancillary chunk %q", e.ChunkType)
}

// InvalidFilterMethod reports an out-of-range per-scanline filter byte.
type InvalidFilterMethod struct {
	Value byte
}

func (e *InvalidFilterMethod) Error() string {
	return fmt.Sprintf("invalid filter method %d", e.Value)
}

// PaletteOutOfRange reports a sample used as a palette index that is not
// smaller than the palette's length.
type PaletteOutOfRange struct {
	Index      int
	PaletteLen int
}

func (e *PaletteOutOfRange) Error() string {
	return fmt.Sprintf("palette index %d out of range (len %d)", e.Index, e.PaletteLen)
}
