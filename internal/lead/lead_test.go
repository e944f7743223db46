package lead

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/wire"
)

func TestEncodeDecodeLeadRoundTrip(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		t wire.TypeCode
		l uint8
	}{
		{wire.TypeBool, wire.BoolNull},
		{wire.TypeBool, wire.BoolFalse},
		{wire.TypeBool, wire.BoolTrue},
		{wire.TypeIntPos, 0},
		{wire.TypeIntPos, 8},
		{wire.TypeObject, 15},
		{wire.TypeKeyShort, 15},
	}

	for _, c := range cases {
		b := EncodeLead(c.t, c.l)
		family, typ, l, err := DecodeLead(b)
		require.NoError(err)
		require.Equal(c.t, typ)
		require.Equal(c.l, l)
		require.Equal(wire.FamilyOf(c.t), family)
	}
}

func TestDecodeLeadRejectsExtended(t *testing.T) {
	_, _, _, err := DecodeLead(0xF0)
	require.ErrorIs(t, err, errs.ErrInvalidLead)
}

func TestDecodeLeadRejectsBadTinyL(t *testing.T) {
	_, _, _, err := DecodeLead(EncodeLead(wire.TypeBool, 3))
	require.ErrorIs(t, err, errs.ErrInvalidLead)
}

func TestDecodeLeadRejectsUnassignedNibble(t *testing.T) {
	// 0x8 and 0x9 are unassigned high nibbles.
	_, _, _, err := DecodeLead(0x80)
	require.ErrorIs(t, err, errs.ErrInvalidLead)

	_, _, _, err = DecodeLead(0x90)
	require.ErrorIs(t, err, errs.ErrInvalidLead)
}

func TestBytesNeeded(t *testing.T) {
	require := require.New(t)

	require.Equal(uint8(0), BytesNeeded(0))
	require.Equal(uint8(1), BytesNeeded(1))
	require.Equal(uint8(1), BytesNeeded(0xFF))
	require.Equal(uint8(2), BytesNeeded(0x100))
	require.Equal(uint8(2), BytesNeeded(0xFFFF))
	require.Equal(uint8(3), BytesNeeded(0x10000))
	require.Equal(uint8(8), BytesNeeded(^uint64(0)))
}

func TestWriteReadCompactUintRoundTrip(t *testing.T) {
	require := require.New(t)

	values := []uint64{0, 1, 255, 256, 65535, 65536, 1 << 32, ^uint64(0)}
	for _, v := range values {
		buf := WriteCompactUint(nil, v)
		require.Len(buf, int(BytesNeeded(v)))

		got, err := ReadCompactUint(buf, BytesNeeded(v))
		require.NoError(err)
		require.Equal(v, got)
	}
}

func TestReadCompactUintTruncated(t *testing.T) {
	_, err := ReadCompactUint([]byte{0x01}, 2)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestWriteCompactUintZeroWritesNoBytes(t *testing.T) {
	buf := WriteCompactUint([]byte{0xAA}, 0)
	require.Equal(t, []byte{0xAA}, buf)
}
