package compress

// noopCodec is the compress.None codec: it passes the Bytes payload
// through unchanged. It is the default so that compression is opt-in.
type noopCodec struct{}

var _ Codec = (*noopCodec)(nil)

// newNoopCodec creates a new no-operation compressor that bypasses data.
//
// The returned compressor implements all three interfaces (Compressor, Decompressor,
// and Codec) and returns data as-is, without processing or copying it.
func newNoopCodec() noopCodec {
	return noopCodec{}
}

// Compress bypasses compression and returns the input data directly without copying.
//
// This method returns the input slice as-is, without any processing or copying.
// This provides maximum performance for the no-op compressor by eliminating
// unnecessary memory allocations.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c noopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress bypasses decompression and returns the input data directly without copying.
//
// This method returns the input slice as-is, without any processing or copying.
// This provides maximum performance for the no-op compressor by eliminating
// unnecessary memory allocations.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c noopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
