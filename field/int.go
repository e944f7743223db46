package field

import "github.com/rionfmt/rion/errs"

// EncodeMagnitude strips leading zero bytes from an unsigned magnitude and
// returns its compact big-endian payload. A magnitude of 0 is the single
// exception: it encodes as one 0x00 byte (rather than zero bytes), so
// Int64Positive(0) round-trips with L=1. This payload shape is shared by
// TypeIntPos and TypeIntNeg; the caller attaches sign semantics (TypeIntNeg
// stores magnitude v for logical value -(v+1)).
func EncodeMagnitude(m uint64) []byte {
	if m == 0 {
		return []byte{0x00}
	}

	var buf [8]byte
	i := 8
	for m > 0 {
		i--
		buf[i] = byte(m)
		m >>= 8
	}

	return append([]byte(nil), buf[i:]...)
}

// DecodeMagnitude reads a compact big-endian magnitude payload. It accepts
// 0 to 8 bytes; a 0-length payload decodes to 0 for decoder leniency even
// though the canonical encoding of zero is one byte.
func DecodeMagnitude(payload []byte) (uint64, error) {
	if len(payload) > 8 {
		return 0, errs.ErrIntegerOutOfRange
	}

	var n uint64
	for _, b := range payload {
		n = n<<8 | uint64(b)
	}

	return n, nil
}
