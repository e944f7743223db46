package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"none", None, "none"},
		{"zstd", Zstd, "zstd"},
		{"s2", S2, "s2"},
		{"lz4", LZ4, "lz4"},
		{"unknown", Type(0xFF), "Type(255)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, typ := range []Type{None, Zstd, S2, LZ4} {
		codec, err := CreateCodec(typ, "test")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(Type(0xFF), "test field")
	require.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	for _, typ := range []Type{None, Zstd, S2, LZ4} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(Type(0xFF))
	require.Error(t, err)
}

func TestNoopCodec_EmptyData(t *testing.T) {
	compressor := newNoopCodec()

	compressed, err := compressor.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)

	empty := []byte{}
	compressed, err = compressor.Compress(empty)
	require.NoError(t, err)
	require.Equal(t, empty, compressed)

	decompressed, err := compressor.Decompress(nil)
	require.NoError(t, err)
	require.Nil(t, decompressed)

	decompressed, err = compressor.Decompress(empty)
	require.NoError(t, err)
	require.Equal(t, empty, decompressed)
}

func TestNoopCodec_RoundTrip(t *testing.T) {
	compressor := newNoopCodec()

	tests := []struct {
		name string
		data []byte
	}{
		{"small text data", []byte("hello world")},
		{"binary data", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{"repeated pattern", []byte("abcabcabcabcabc")},
		{"large payload", make([]byte, 64*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := compressor.Compress(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.data, compressed)
			if len(tt.data) > 0 {
				require.Same(t, &tt.data[0], &compressed[0])
			}

			decompressed, err := compressor.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, tt.data, decompressed)
			if len(compressed) > 0 {
				require.Same(t, &compressed[0], &decompressed[0])
			}
		})
	}
}

func TestNoopCodec_InterfaceCompliance(t *testing.T) {
	compressor := newNoopCodec()

	var _ Compressor = compressor
	var _ Decompressor = compressor
	var _ Codec = compressor
}

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": newNoopCodec(),
		"LZ4":  newLZ4Codec(),
		"S2":   newS2Codec(),
		"Zstd": newZstdCodec(),
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	codecs := getAllCodecs()

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed, "compressing nil should return nil")

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed, "decompressing nil should return nil")

			empty := []byte{}
			compressed, err = codec.Compress(empty)
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed, "decompressing empty should return empty")
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"small_text", []byte("Hello, World!")},
		{"repeated_pattern", bytes.Repeat([]byte("ABCD"), 100)},
		{"binary_data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{"single_byte", []byte{0x42}},
		{"medium_payload", bytes.Repeat([]byte("a packed object field with a key and a value"), 256)},
		{"large_payload", bytes.Repeat([]byte("a packed object field with a key and a value"), 1024)},
		{
			"pseudo_random",
			func() []byte {
				data := make([]byte, 4096)
				for i := range data {
					if i%100 < 50 {
						data[i] = byte(i % 256)
					} else {
						data[i] = byte((i*7 + i*i) % 256)
					}
				}

				return data
			}(),
		},
		{"highly_compressible", make([]byte, 1024*1024)},
	}

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed, "decompressed data must match original")
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
				return
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err, "should return error for invalid compressed data")
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := []byte("concurrent compression test data with some content to compress")

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			t.Run("concurrent_compress", func(t *testing.T) {
				done := make(chan error, numGoroutines)

				for range numGoroutines {
					go func() {
						compressed, err := codec.Compress(testData)
						if err != nil {
							done <- err
							return
						}
						if compressed == nil {
							done <- fmt.Errorf("compressed result is nil")
							return
						}
						done <- nil
					}()
				}

				for range numGoroutines {
					require.NoError(t, <-done)
				}
			})

			t.Run("concurrent_decompress", func(t *testing.T) {
				compressed, err := codec.Compress(testData)
				require.NoError(t, err)

				done := make(chan error, numGoroutines)

				for range numGoroutines {
					go func() {
						decompressed, err := codec.Decompress(compressed)
						if err != nil {
							done <- err
							return
						}
						if !bytes.Equal(testData, decompressed) {
							done <- fmt.Errorf("decompressed data mismatch")
							return
						}
						done <- nil
					}()
				}

				for range numGoroutines {
					require.NoError(t, <-done)
				}
			})
		})
	}
}

func TestAllCodecs_InterfaceCompliance(t *testing.T) {
	codecs := getAllCodecs()

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			var _ Codec = codec
			require.NotNil(t, codec)
		})
	}
}

func TestAllCodecs_LargeExpansionRatio(t *testing.T) {
	original := make([]byte, 1024*1024)

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(original)
			require.NoError(t, err)
			require.NotNil(t, compressed)

			if codecName == "NoOp" {
				require.Equal(t, len(original), len(compressed))
			} else {
				require.Less(t, len(compressed), len(original)/10,
					"should compress to less than 10% of original for highly compressible data")
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, original, decompressed)
		})
	}
}

func TestAllCodecs_ProgressiveDataSizes(t *testing.T) {
	sizes := []int{1, 10, 100, 1024, 4096, 16384, 65536, 262144, 1048576}

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			for _, size := range sizes {
				t.Run(fmt.Sprintf("%d_bytes", size), func(t *testing.T) {
					data := make([]byte, size)
					for i := range data {
						data[i] = byte(i % 256)
					}

					compressed, err := codec.Compress(data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, data, decompressed)
				})
			}
		})
	}
}
