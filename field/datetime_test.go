package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateTimeRoundTripNoSubsecond(t *testing.T) {
	require := require.New(t)

	dt := DateTime{Year: 2026, Month: 7, Day: 30, Hour: 12, Minute: 0, Second: 0}
	payload := EncodeDateTime(dt)
	require.Len(payload, dateTimeLen)

	got, err := DecodeDateTime(payload)
	require.NoError(err)
	require.Equal(dt, got)
}

func TestDateTimeRoundTripMillis(t *testing.T) {
	require := require.New(t)

	dt := DateTime{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Nanos: 500_000_000}
	got, err := DecodeDateTime(EncodeDateTime(dt))
	require.NoError(err)
	require.Equal(dt, got)
}

func TestDateTimeRoundTripMicros(t *testing.T) {
	require := require.New(t)

	dt := DateTime{Year: 2000, Month: 1, Day: 1, Nanos: 123_456_000}
	got, err := DecodeDateTime(EncodeDateTime(dt))
	require.NoError(err)
	require.Equal(dt, got)
}

func TestDateTimeRoundTripNanos(t *testing.T) {
	require := require.New(t)

	dt := DateTime{Year: 2038, Month: 1, Day: 19, Nanos: 123_456_789}
	got, err := DecodeDateTime(EncodeDateTime(dt))
	require.NoError(err)
	require.Equal(dt, got)
}

func TestDateTimeZeroValueEncodesFixedWidth(t *testing.T) {
	require := require.New(t)

	payload := EncodeDateTime(DateTime{})
	require.Equal(make([]byte, dateTimeLen), payload)

	got, err := DecodeDateTime(payload)
	require.NoError(err)
	require.Equal(DateTime{}, got)
}

func TestDateTimeTruncatedPayload(t *testing.T) {
	_, err := DecodeDateTime([]byte{0x07, 0x01})
	require.Error(t, err)
}

func TestDateTimeRejectsOverlongPayload(t *testing.T) {
	_, err := DecodeDateTime(make([]byte, dateTimeLen+1))
	require.Error(t, err)
}
