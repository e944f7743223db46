package compress

import "github.com/klauspost/compress/s2"

type s2Codec struct{}

var _ Codec = (*s2Codec)(nil)

// newS2Codec creates a new S2 compressor with default settings.
func newS2Codec() s2Codec {
	return s2Codec{}
}

// Compress compresses the input data using S2 compression.
func (c s2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c s2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
