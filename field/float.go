package field

import (
	"math"

	"github.com/rionfmt/rion/errs"
)

// EncodeFloat32 returns the canonical 4-byte big-endian IEEE-754 binary32
// payload for f. Leading-zero stripping never applies to floats: the
// payload is always the full 4 bytes.
func EncodeFloat32(f float32) []byte {
	bits := math.Float32bits(f)

	return []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
}

// EncodeFloat64 returns the canonical 8-byte big-endian IEEE-754 binary64
// payload for f.
func EncodeFloat64(f float64) []byte {
	bits := math.Float64bits(f)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> uint(56-8*i))
	}

	return buf
}

// DecodeFloat decodes a float payload. Canonical payloads are exactly 4
// bytes (binary32) or 8 bytes (binary64); the decoder additionally accepts
// shorter payloads as left-zero-padded values of the nearer width: 1-4 bytes
// decode as binary32, 5-7 bytes as binary64. This leniency is decode-only —
// EncodeFloat32/EncodeFloat64 never produce a short payload.
func DecodeFloat(payload []byte) (value float64, isFloat32 bool, err error) {
	switch {
	case len(payload) == 0 || len(payload) > 8:
		return 0, false, errs.ErrWrongType

	case len(payload) <= 4:
		var bits uint32
		for _, b := range payload {
			bits = bits<<8 | uint32(b)
		}

		return float64(math.Float32frombits(bits)), true, nil

	default: // 5..8 bytes
		var bits uint64
		for _, b := range payload {
			bits = bits<<8 | uint64(b)
		}

		return math.Float64frombits(bits), false, nil
	}
}
