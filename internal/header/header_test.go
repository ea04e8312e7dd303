package header

import "testing"

func ihdrBytes(width, height uint32, bitDepth, colorType, compression, filterMethod, interlace uint8) []byte {
	b := make([]byte, 13)
	putU32(b[0:4], width)
	putU32(b[4:8], height)
	b[8] = bitDepth
	b[9] = colorType
	b[10] = compression
	b[11] = filterMethod
	b[12] = interlace
	return b
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func TestParseIHDRLegalCombinations(t *testing.T) {
	cases := []struct {
		colorType ColorType
		bitDepth  uint8
	}{
		{Grayscale, 1}, {Grayscale, 2}, {Grayscale, 4}, {Grayscale, 8},
		{RGB, 8},
		{Palette, 1}, {Palette, 2}, {Palette, 4}, {Palette, 8},
		{GrayscaleAlpha, 8},
		{RGBA, 8},
	}
	for _, c := range cases {
		data := ihdrBytes(1, 1, c.bitDepth, uint8(c.colorType), 0, 0, 0)
		ihdr, err := ParseIHDR(data)
		if err != nil {
			t.Fatalf("colorType=%d bitDepth=%d: unexpected error: %v", c.colorType, c.bitDepth, err)
		}
		if ihdr.ColorType != c.colorType || ihdr.BitDepth != c.bitDepth {
			t.Fatalf("round-trip mismatch: got %+v", ihdr)
		}
	}
}

func TestParseIHDRIllegalCombinations(t *testing.T) {
	illegal := []struct {
		colorType uint8
		bitDepth  uint8
	}{
		{0, 16}, {2, 1}, {2, 4}, {3, 16}, {4, 1}, {4, 4}, {6, 2}, {1, 8}, {5, 8},
	}
	for _, c := range illegal {
		data := ihdrBytes(1, 1, c.bitDepth, c.colorType, 0, 0, 0)
		if _, err := ParseIHDR(data); err == nil {
			t.Fatalf("colorType=%d bitDepth=%d: expected error, got nil", c.colorType, c.bitDepth)
		}
	}
}

func TestParseIHDRBadLength(t *testing.T) {
	if _, err := ParseIHDR(make([]byte, 12)); err == nil {
		t.Fatal("expected error for short IHDR")
	}
}

func TestParseIHDRBadMethods(t *testing.T) {
	if _, err := ParseIHDR(ihdrBytes(1, 1, 8, 2, 1, 0, 0)); err == nil {
		t.Fatal("expected error for non-zero compression method")
	}
	if _, err := ParseIHDR(ihdrBytes(1, 1, 8, 2, 0, 1, 0)); err == nil {
		t.Fatal("expected error for non-zero filter method")
	}
	if _, err := ParseIHDR(ihdrBytes(1, 1, 8, 2, 0, 0, 2)); err == nil {
		t.Fatal("expected error for invalid interlace method")
	}
}

func TestParseIHDRZeroDimension(t *testing.T) {
	if _, err := ParseIHDR(ihdrBytes(0, 1, 8, 2, 0, 0, 0)); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestParsePLTE(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50, 60}
	plte, err := ParsePLTE(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(plte.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(plte.Entries))
	}
	if plte.Entries[0] != (PaletteEntry{10, 20, 30}) || plte.Entries[1] != (PaletteEntry{40, 50, 60}) {
		t.Fatalf("unexpected entries: %+v", plte.Entries)
	}
}

func TestParsePLTEBadLength(t *testing.T) {
	if _, err := ParsePLTE([]byte{1, 2}); err == nil {
		t.Fatal("expected error for length not a multiple of 3")
	}
}

func TestParsePLTETooManyEntries(t *testing.T) {
	if _, err := ParsePLTE(make([]byte, 3*257)); err == nil {
		t.Fatal("expected error for more than 256 entries")
	}
}

func TestColorTypeAllowsPalette(t *testing.T) {
	if Grayscale.AllowsPalette() {
		t.Fatal("grayscale must not allow PLTE")
	}
	if !RGB.AllowsPalette() {
		t.Fatal("RGB must allow (optional) PLTE")
	}
	if !Palette.RequiresPalette() {
		t.Fatal("palette color type requires PLTE")
	}
}
