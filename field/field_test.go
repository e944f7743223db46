package field

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/wire"
)

func TestParseEmptyInput(t *testing.T) {
	_, _, err := Parse(nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestParseInvalidLead(t *testing.T) {
	_, _, err := Parse([]byte{0xF0})
	require.ErrorIs(t, err, errs.ErrInvalidLead)
}

func TestTinyBoolRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, l := range []uint8{wire.BoolNull, wire.BoolFalse, wire.BoolTrue} {
		f := Tiny(wire.TypeBool, l)
		buf, err := Write(nil, f)
		require.NoError(err)
		require.Len(buf, 1)

		got, rest, err := Parse(buf)
		require.NoError(err)
		require.Empty(rest)
		require.Equal(f, got)
	}
}

func TestBoolCanonicalBytes(t *testing.T) {
	require := require.New(t)

	buf, err := Write(nil, Tiny(wire.TypeBool, wire.BoolNull))
	require.NoError(err)
	require.Equal([]byte{0x10}, buf)

	buf, err = Write(nil, Tiny(wire.TypeBool, wire.BoolFalse))
	require.NoError(err)
	require.Equal([]byte{0x11}, buf)

	buf, err = Write(nil, Tiny(wire.TypeBool, wire.BoolTrue))
	require.NoError(err)
	require.Equal([]byte{0x12}, buf)
}

func TestShortFieldRoundTrip(t *testing.T) {
	require := require.New(t)

	payload := []byte("Alice")
	f := Short(wire.TypeStrShort, payload)
	buf, err := Write(nil, f)
	require.NoError(err)
	require.Equal([]byte{0x65, 'A', 'l', 'i', 'c', 'e'}, buf)

	got, rest, err := Parse(buf)
	require.NoError(err)
	require.Empty(rest)
	require.Equal(payload, got.Payload)
}

func TestShortFieldTooLarge(t *testing.T) {
	_, err := Write(nil, Short(wire.TypeStrShort, make([]byte, 16)))
	require.ErrorIs(t, err, errs.ErrPayloadTooLarge)
}

func TestNormalFieldEmptyPayload(t *testing.T) {
	require := require.New(t)

	buf, err := Write(nil, Normal(wire.TypeObject, nil))
	require.NoError(err)
	require.Equal([]byte{0xC0}, buf)

	got, rest, err := Parse(buf)
	require.NoError(err)
	require.Empty(rest)
	require.Empty(got.Payload)
}

func TestNormalFieldRoundTrip(t *testing.T) {
	require := require.New(t)

	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}

	f := Normal(wire.TypeBytes, payload)
	buf, err := Write(nil, f)
	require.NoError(err)
	require.Equal(NeededBytes(f), len(buf))

	got, rest, err := Parse(buf)
	require.NoError(err)
	require.Empty(rest)
	require.Equal(payload, got.Payload)
}

func TestParseTruncatedShort(t *testing.T) {
	// lead says 3-byte payload, only 1 available.
	_, _, err := Parse([]byte{0x63, 'A'})
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestParseTruncatedNormal(t *testing.T) {
	// declared 5 bytes, 2 available.
	_, _, err := Parse([]byte{0xC1, 0x05, 0x21, 0x0A})
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestLengthPrecisionAdvancesExactly(t *testing.T) {
	require := require.New(t)

	f := Short(wire.TypeIntPos, EncodeMagnitude(10))
	buf, err := Write(nil, f)
	require.NoError(err)
	require.Equal([]byte{0x21, 0x0A}, buf)

	extra := append(append([]byte{}, buf...), 0xFF, 0xFF)
	got, rest, err := Parse(extra)
	require.NoError(err)
	require.Equal([]byte{0xFF, 0xFF}, rest)
	require.Equal(NeededBytes(got), len(buf))
}

func TestStringShortLongBoundary(t *testing.T) {
	require := require.New(t)

	require.Equal(wire.TypeStrShort, StringTypeFor(15))
	require.Equal(wire.TypeStrLong, StringTypeFor(16))
	require.Equal(wire.TypeKeyShort, KeyTypeFor(0))
	require.Equal(wire.TypeKeyLong, KeyTypeFor(16))
}
