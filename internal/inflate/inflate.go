// Package inflate treats DEFLATE decompression as an external black-box
// service: it hands the concatenated IDAT payload to compress/zlib and
// copies the result through a bounded intermediate buffer.
package inflate

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"

	"github.com/vparker/pngdecode/internal/pngerr"
)

// bufSize bounds the intermediate copy buffer, matching the ~16 KiB
// convention allowed by the spec's resource model.
const bufSize = 16 * 1024

// Inflate decompresses the zlib-wrapped payload and returns the raw bytes.
func Inflate(payload []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		if err == zlib.ErrHeader {
			return nil, errors.WithStack(ErrVersionMismatch)
		}
		return nil, errors.Wrap(ErrDeflate, err.Error())
	}
	defer zr.Close()

	var out bytes.Buffer
	buf := make([]byte, bufSize)
	for {
		n, rerr := zr.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			if rerr == zlib.ErrChecksum || rerr == zlib.ErrDictionary {
				return nil, errors.Wrap(ErrDeflate, rerr.Error())
			}
			return nil, errors.Wrap(ErrDeflate, rerr.Error())
		}
	}
	return out.Bytes(), nil
}

// Sentinel causes for the DeflateError/DeflateVersionMismatch taxonomy.
var (
	ErrDeflate         = pngerr.ErrDeflateError
	ErrVersionMismatch = pngerr.ErrDeflateVersionMismatch
	ErrOutOfMemory     = pngerr.ErrDeflateOutOfMemory
)
