package field

import "github.com/rionfmt/rion/errs"

// DateTime is the decomposed form of the UTCDateTime logical value.
type DateTime struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
	Nanos  uint32 // 0..999_999_999
}

// dateTimeLen is the fixed payload length of a UTCDateTime field: year (2
// bytes, big-endian) + month/day/hour/minute/second (1 byte each) +
// nanosecond (4 bytes, big-endian) = 11 bytes, always — no stripping, no
// descriptor byte. A fixed width removes any ambiguity about where the
// sub-second component starts, at the cost of always spending 4 bytes on
// it even when it's zero.
const dateTimeLen = 11

// EncodeDateTime returns the packed UTCDateTime payload for dt: always
// exactly 11 bytes.
func EncodeDateTime(dt DateTime) []byte {
	out := make([]byte, dateTimeLen)
	out[0] = byte(dt.Year >> 8)
	out[1] = byte(dt.Year)
	out[2] = dt.Month
	out[3] = dt.Day
	out[4] = dt.Hour
	out[5] = dt.Minute
	out[6] = dt.Second
	out[7] = byte(dt.Nanos >> 24)
	out[8] = byte(dt.Nanos >> 16)
	out[9] = byte(dt.Nanos >> 8)
	out[10] = byte(dt.Nanos)

	return out
}

// DecodeDateTime reverses EncodeDateTime. payload must be exactly
// dateTimeLen bytes.
func DecodeDateTime(payload []byte) (DateTime, error) {
	if len(payload) != dateTimeLen {
		return DateTime{}, errs.ErrTruncated
	}

	return DateTime{
		Year:   uint16(payload[0])<<8 | uint16(payload[1]),
		Month:  payload[2],
		Day:    payload[3],
		Hour:   payload[4],
		Minute: payload[5],
		Second: payload[6],
		Nanos:  uint32(payload[7])<<24 | uint32(payload[8])<<16 | uint32(payload[9])<<8 | uint32(payload[10]),
	}, nil
}
