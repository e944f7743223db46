//go:build cgo

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
func (c zstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c zstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
