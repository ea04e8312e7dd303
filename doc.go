// Package pngdecode decodes a PNG 1.2 bitstream into an in-memory
// rectangular raster of 8-bit RGBA pixels. It handles the container
// format (signature, chunk framing, CRC validation), the compressed
// stream reconstruction (DEFLATE decompression plus per-scanline
// reverse filtering), and pixel materialization (the five PNG color
// models, sub-byte bit depths, and Adam7 de-interlacing).
//
// It does not encode PNGs, does not support 16-bit sample depth, does
// not interpret ancillary chunks beyond skipping them, and does not
// apply gamma or color-space transforms.
package pngdecode
