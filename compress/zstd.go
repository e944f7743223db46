package compress

// zstdCodec is the compress.Zstd codec. It favors compression ratio
// over speed, suiting large or infrequently-read Bytes payloads.
type zstdCodec struct{}

var _ Codec = (*zstdCodec)(nil)

// newZstdCodec creates a new Zstd compressor with default settings.
//
// Returns:
//   - zstdCodec: New Zstd compressor instance
//
// Example:
//
//	compressor := newZstdCodec()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func newZstdCodec() zstdCodec {
	return zstdCodec{}
}
