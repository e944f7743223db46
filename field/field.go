// Package field implements encoding and decoding of a single RION field —
// the tiny/short/normal shapes — plus the type-specific payload encodings
// (integers, floats, UTF-8, bytes, UTC date-time) that those shapes carry.
//
// Field is a pure value; Parse and Write never retain or mutate the slices
// passed to them beyond returning sub-slices of the input (decoded payloads
// are borrowed views).
package field

import (
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/internal/lead"
	"github.com/rionfmt/rion/wire"
)

// shortMaxLen is the largest payload length the short family's 4-bit L can
// carry, and the UTF-8/Key short/long boundary.
const shortMaxLen = 15

// Field is one decoded or to-be-encoded RION field.
type Field struct {
	Type   wire.TypeCode
	Family wire.Family

	// TinyL carries the inline value for the tiny family (wire.BoolNull,
	// wire.BoolFalse, or wire.BoolTrue); unused otherwise.
	TinyL uint8

	// Payload is the field's content for the short and normal families;
	// nil for the tiny family and for an empty normal field (L=0).
	Payload []byte
}

// Tiny builds a tiny-family field.
func Tiny(t wire.TypeCode, l uint8) Field {
	return Field{Type: t, Family: wire.FamilyTiny, TinyL: l}
}

// Short builds a short-family field. payload must be <= 15 bytes; Write
// returns errs.ErrPayloadTooLarge otherwise.
func Short(t wire.TypeCode, payload []byte) Field {
	return Field{Type: t, Family: wire.FamilyShort, Payload: payload}
}

// Normal builds a normal-family field of arbitrary payload length.
func Normal(t wire.TypeCode, payload []byte) Field {
	return Field{Type: t, Family: wire.FamilyNormal, Payload: payload}
}

// Parse reads one field from the head of input, returning the field and the
// unconsumed tail.
func Parse(input []byte) (Field, []byte, error) {
	if len(input) == 0 {
		return Field{}, nil, errs.ErrEmptyInput
	}

	family, typ, l, err := lead.DecodeLead(input[0])
	if err != nil {
		return Field{}, nil, err
	}
	rest := input[1:]

	switch family {
	case wire.FamilyTiny:
		return Tiny(typ, l), rest, nil

	case wire.FamilyShort:
		n := int(l)
		if len(rest) < n {
			return Field{}, nil, errs.ErrTruncated
		}

		return Short(typ, rest[:n]), rest[n:], nil

	case wire.FamilyExtended:
		return Field{}, nil, errs.ErrInvalidLead

	default: // wire.FamilyNormal
		if l == 0 {
			return Normal(typ, nil), rest, nil
		}

		k := int(l)
		if len(rest) < k {
			return Field{}, nil, errs.ErrTruncated
		}

		n, err := lead.ReadCompactUint(rest, l)
		if err != nil {
			return Field{}, nil, err
		}
		rest = rest[k:]

		if uint64(len(rest)) < n {
			return Field{}, nil, errs.ErrTruncated
		}

		return Normal(typ, rest[:n]), rest[n:], nil
	}
}

// NeededBytes returns the exact number of bytes Write(f) would produce,
// without materializing them.
func NeededBytes(f Field) int {
	switch f.Family {
	case wire.FamilyTiny:
		return 1
	case wire.FamilyShort:
		return 1 + len(f.Payload)
	default: // wire.FamilyNormal
		k := lead.BytesNeeded(uint64(len(f.Payload)))

		return 1 + int(k) + len(f.Payload)
	}
}

// Write appends the serialized form of f to dst and returns the extended
// slice.
func Write(dst []byte, f Field) ([]byte, error) {
	switch f.Family {
	case wire.FamilyTiny:
		return append(dst, lead.EncodeLead(f.Type, f.TinyL)), nil

	case wire.FamilyShort:
		if len(f.Payload) > shortMaxLen {
			return nil, errs.ErrPayloadTooLarge
		}
		dst = append(dst, lead.EncodeLead(f.Type, uint8(len(f.Payload))))

		return append(dst, f.Payload...), nil

	default: // wire.FamilyNormal
		k := lead.BytesNeeded(uint64(len(f.Payload)))
		if k > shortMaxLen {
			return nil, errs.ErrPayloadTooLarge
		}
		dst = append(dst, lead.EncodeLead(f.Type, k))
		dst = lead.WriteCompactUint(dst, uint64(len(f.Payload)))

		return append(dst, f.Payload...), nil
	}
}

// StringTypeFor returns the canonical type code (short vs long) for a UTF-8
// string payload of the given byte length.
func StringTypeFor(byteLen int) wire.TypeCode {
	if byteLen <= shortMaxLen {
		return wire.TypeStrShort
	}

	return wire.TypeStrLong
}

// KeyTypeFor returns the canonical type code (short vs long) for a Key
// payload of the given byte length.
func KeyTypeFor(byteLen int) wire.TypeCode {
	if byteLen <= shortMaxLen {
		return wire.TypeKeyShort
	}

	return wire.TypeKeyLong
}
