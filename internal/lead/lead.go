// Package lead implements C1: the lead-byte and compact-length primitives
// every higher RION layer builds on. These are the sole producers and
// consumers of length fields; field and container codecs never format an
// integer for framing purposes themselves.
package lead

import (
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/wire"
)

// EncodeLead packs a type code and L value (both <= 15) into a single lead
// byte: high nibble = type, low nibble = L.
func EncodeLead(t wire.TypeCode, l uint8) byte {
	return byte(t)<<4 | (l & 0x0F)
}

// DecodeLead splits a lead byte into its family, type code, and L value.
// It fails with errs.ErrInvalidLead if the high nibble maps to no defined
// type, if it is the reserved extended nibble, or if a tiny-family L is not
// in {0,1,2}.
func DecodeLead(b byte) (wire.Family, wire.TypeCode, uint8, error) {
	t := wire.TypeCode(b >> 4)
	l := b & 0x0F

	family := wire.FamilyOf(t)
	switch family {
	case wire.FamilyTiny:
		if l > wire.BoolTrue {
			return wire.FamilyInvalid, 0, 0, errs.ErrInvalidLead
		}
	case wire.FamilyShort, wire.FamilyNormal:
		// L is unconstrained within 0..15 for these families.
	default:
		return wire.FamilyInvalid, 0, 0, errs.ErrInvalidLead
	}

	return family, t, l, nil
}

// BytesNeeded returns the number of significant big-endian bytes required
// to represent n. BytesNeeded(0) == 0.
func BytesNeeded(n uint64) uint8 {
	var count uint8
	for n > 0 {
		count++
		n >>= 8
	}

	return count
}

// WriteCompactUint appends exactly BytesNeeded(n) big-endian bytes of n to
// sink (nothing for n == 0) and returns the extended slice.
func WriteCompactUint(sink []byte, n uint64) []byte {
	k := BytesNeeded(n)
	for i := int(k) - 1; i >= 0; i-- {
		sink = append(sink, byte(n>>(8*uint(i))))
	}

	return sink
}

// ReadCompactUint reads exactly k big-endian bytes from the head of data and
// returns the decoded value. It fails with errs.ErrTruncated if fewer than k
// bytes are available.
func ReadCompactUint(data []byte, k uint8) (uint64, error) {
	if len(data) < int(k) {
		return 0, errs.ErrTruncated
	}

	var n uint64
	for i := 0; i < int(k); i++ {
		n = n<<8 | uint64(data[i])
	}

	return n, nil
}
