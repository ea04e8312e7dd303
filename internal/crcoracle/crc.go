// Package crcoracle computes the CRC-32/IEEE checksum PNG chunks are
// validated against, treating the checksum engine itself as a black-box
// oracle.
package crcoracle

import "github.com/snksoft/crc"

// Compute returns the CRC-32/IEEE checksum of typeAndData, which must be
// the chunk's 4-byte type followed by its data bytes (never the length
// field, per the PNG chunk layout).
func Compute(typeAndData []byte) uint32 {
	return uint32(crc.CalculateCRC(crc.CRC32, typeAndData))
}
