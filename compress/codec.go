// Package compress provides optional payload compression for a Bytes field.
// A Bytes value is arbitrary opaque payload on the wire — this package lets
// an encoder compress that payload before framing it, and a decoder reverse
// the step transparently: encode, then compress; decompress, then decode.
package compress

import "fmt"

// Type identifies a compression algorithm. The zero value, None, passes
// data through unchanged.
type Type uint8

const (
	None Type = iota
	Zstd
	S2
	LZ4
)

// String returns the canonical name of t.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Compressor compresses a byte payload.
//
// Memory management:
//   - Returned slice is owned by the caller; the None codec returns the
//     input slice itself, the other codecs return a new allocation
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec constructs a Codec for t. target names the caller for error
// messages (e.g. "Bytes field compression").
func CreateCodec(t Type, target string) (Codec, error) {
	switch t {
	case None:
		return newNoopCodec(), nil
	case Zstd:
		return newZstdCodec(), nil
	case S2:
		return newS2Codec(), nil
	case LZ4:
		return newLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, t)
	}
}

var builtinCodecs = map[Type]Codec{
	None: newNoopCodec(),
	Zstd: newZstdCodec(),
	S2:   newS2Codec(),
	LZ4:  newLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for t.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
