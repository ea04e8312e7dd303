package chunk

import (
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/vparker/pngdecode/internal/pngerr"
)

func putU32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// writeChunk appends a length-prefixed, CRC-suffixed chunk to buf.
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var lenBuf [4]byte
	putU32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])

	typeAndData := append([]byte(typ), data...)
	buf.Write(typeAndData)

	var crcBuf [4]byte
	putU32(crcBuf[:], crc32.ChecksumIEEE(typeAndData))
	buf.Write(crcBuf[:])
}

func ihdrData(width, height uint32, bitDepth, colorType uint8) []byte {
	b := make([]byte, 13)
	putU32(b[0:4], width)
	putU32(b[4:8], height)
	b[8] = bitDepth
	b[9] = colorType
	b[10] = 0
	b[11] = 0
	b[12] = 0
	return b
}

// minimalStream builds a signature + IHDR + IDAT + IEND stream; idat is
// written as a single IDAT chunk carrying the raw (already-deflated)
// payload bytes.
func minimalStream(idat []byte) []byte {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

func TestParseRejectsBadSignature(t *testing.T) {
	data := minimalStream([]byte{1, 2, 3})
	data[0] = 0x00
	_, err := Parse(bytes.NewReader(data), false)
	if err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseRejectsTruncatedSignature(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0x89, 0x50}), false)
	if err == nil {
		t.Fatal("expected signature error for short stream")
	}
}

func TestParseHappyPath(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	data := minimalStream(payload)
	res, err := Parse(bytes.NewReader(data), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IHDR.Width != 1 || res.IHDR.Height != 1 {
		t.Fatalf("unexpected IHDR: %+v", res.IHDR)
	}
	if !bytes.Equal(res.IDAT, payload) {
		t.Fatalf("got IDAT %v, want %v", res.IDAT, payload)
	}
}

func TestParseDetectsCrcMismatch(t *testing.T) {
	data := minimalStream([]byte{1, 2, 3, 4})
	// Flip a byte inside the IDAT chunk's data, leaving its stored CRC stale.
	// Layout: sig(8) + IHDR[len4+type4+data13+crc4](25) + IDAT[len4+type4+...].
	idatDataOffset := 8 + 25 + 4 + 4
	data[idatDataOffset] ^= 0xff

	_, err := Parse(bytes.NewReader(data), false)
	if err == nil {
		t.Fatal("expected CRC mismatch error")
	}
	var mismatch *pngerr.CrcMismatch
	if !errorsAsCrcMismatch(err, &mismatch) {
		t.Fatalf("expected *pngerr.CrcMismatch, got %T: %v", err, err)
	}
}

// errorsAsCrcMismatch walks err's Unwrap chain by hand, as errors.As
// would, looking for a *pngerr.CrcMismatch.
func errorsAsCrcMismatch(err error, target **pngerr.CrcMismatch) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if m, ok := err.(*pngerr.CrcMismatch); ok {
			*target = m
			return true
		}
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestParseRejectsTrailingBytes(t *testing.T) {
	data := minimalStream([]byte{1, 2, 3, 4})
	data = append(data, 0x00)
	_, err := Parse(bytes.NewReader(data), false)
	if err == nil {
		t.Fatal("expected trailing bytes error")
	}
}

func TestParseRejectsNonContiguousIdat(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "tEXt", []byte("hi"))
	writeChunk(&buf, "IDAT", []byte{3, 4})
	writeChunk(&buf, "IEND", nil)

	_, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err == nil {
		t.Fatal("expected non-contiguous IDAT error")
	}
}

func TestParseRejectsUnsupportedCriticalChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "FOOB", []byte{1}) // uppercase first letter: critical
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "IEND", nil)

	_, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err == nil {
		t.Fatal("expected unsupported critical chunk error")
	}
}

func TestParseSkipsKnownAncillaryChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "tEXt", []byte("hello"))
	writeChunk(&buf, "IDAT", []byte{1, 2, 3})
	writeChunk(&buf, "IEND", nil)

	res, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(res.IDAT, []byte{1, 2, 3}) {
		t.Fatalf("got IDAT %v", res.IDAT)
	}
}

func TestParseRequiresIHDRFirst(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "IEND", nil)

	_, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err == nil {
		t.Fatal("expected error for IDAT before IHDR")
	}
}

func TestParsePLTERejectedForGrayscale(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 0)) // grayscale
	writeChunk(&buf, "PLTE", []byte{1, 2, 3})
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "IEND", nil)

	_, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err == nil {
		t.Fatal("expected error for PLTE on grayscale color type")
	}
}

func TestParseRecordsUnknownAncillaryByDefault(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "zzZz", []byte{1, 2}) // lowercase first letter: ancillary, unrecognized
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "IEND", nil)

	res, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.UnknownAncillary) != 1 || res.UnknownAncillary[0] != "zzZz" {
		t.Fatalf("got UnknownAncillary %v", res.UnknownAncillary)
	}
}

func TestParseStrictRejectsUnknownAncillary(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 2))
	writeChunk(&buf, "zzZz", []byte{1, 2})
	writeChunk(&buf, "IDAT", []byte{1, 2})
	writeChunk(&buf, "IEND", nil)

	_, err := Parse(bytes.NewReader(buf.Bytes()), true)
	if err == nil {
		t.Fatal("expected error for unknown ancillary chunk under strict mode")
	}
}

func TestParsePLTEAcceptedForPaletteColorType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(signature[:])
	writeChunk(&buf, "IHDR", ihdrData(1, 1, 8, 3)) // palette
	writeChunk(&buf, "PLTE", []byte{10, 20, 30})
	writeChunk(&buf, "IDAT", []byte{0})
	writeChunk(&buf, "IEND", nil)

	res, err := Parse(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasPalette || len(res.Palette.Entries) != 1 {
		t.Fatalf("unexpected palette result: %+v", res)
	}
}
