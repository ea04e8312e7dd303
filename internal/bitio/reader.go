// Package bitio provides bounds-checked big-endian integer reads over an
// io.Reader, without relying on host byte order.
package bitio

import (
	"io"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when the underlying reader runs out of bytes
// before a requested value can be fully read.
var ErrTruncated = errors.New("bitio: truncated stream")

// Reader reads big-endian integers from an underlying io.Reader.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader wraps r for big-endian integer reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFull reads exactly len(p) bytes into p, or returns ErrTruncated.
func (r *Reader) ReadFull(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.WithStack(ErrTruncated)
		}
		return errors.WithStack(err)
	}
	if n != len(p) {
		return errors.WithStack(ErrTruncated)
	}
	return nil
}

// Uint32 reads a big-endian uint32 built from explicit byte shifts, so the
// result never depends on the host's native byte order.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return uint32(r.buf[0])<<24 | uint32(r.buf[1])<<16 | uint32(r.buf[2])<<8 | uint32(r.buf[3]), nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.ReadFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// BigEndianUint32 decodes a big-endian uint32 from a 4-byte slice by
// explicit shifting, for callers that already hold the bytes (e.g. chunk
// type/length fields read into a scratch buffer for CRC computation).
func BigEndianUint32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// PutBigEndianUint32 encodes v into b[0:4] in big-endian order.
func PutBigEndianUint32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
