// Package serde bridges arbitrary host Go values to and from the RION field
// grammar. Encoder is the generic serializer: a visitor-style writer that a
// caller drives with a sequence of primitive/sequence/map/enum calls.
// Decoder is its inverse. Marshal and Unmarshal drive both via reflection
// for the common Go kinds (struct, slice, map, pointer, primitives);
// anything more specific can be built by hand against Encoder/Decoder
// directly.
package serde

import (
	"github.com/rionfmt/rion/compress"
	"github.com/rionfmt/rion/internal/opt"
)

// DateTimePrecision selects how much of a host time value's nanosecond
// component an Encoder preserves when projecting it onto a UTCDateTime
// field. The wire payload is a fixed 11 bytes regardless of precision
// (see field.EncodeDateTime) — this only truncates the stored value, for
// callers that want two time.Time values considered "the same instant" at
// millisecond/microsecond granularity to encode identically.
type DateTimePrecision uint8

const (
	// PrecisionAuto preserves the full nanosecond value as-is.
	PrecisionAuto DateTimePrecision = iota
	PrecisionMillis
	PrecisionMicros
	PrecisionNanos
)

// defaultMaxDepth bounds container nesting so a cyclic or pathologically
// deep host value fails fast instead of recursing until the stack overflows.
const defaultMaxDepth = 64

type config struct {
	keySorting        bool
	bytesCompression  compress.Type
	dateTimePrecision DateTimePrecision
	maxDepth          int
}

func newConfig() *config {
	return &config{
		keySorting:        false,
		bytesCompression:  compress.None,
		dateTimePrecision: PrecisionAuto,
		maxDepth:          defaultMaxDepth,
	}
}

// Option configures an Encoder or a Marshal/Unmarshal call.
type Option = opt.Option[*config]

// WithKeySorting makes Marshal sort struct/map entries by raw key bytes
// before writing them, for bit-stable output across runs. Off by default:
// the generic map/struct visitor streams entries in encounter order and
// imposes no ordering guarantee between keys — sorting costs a buffering
// pass over the entries.
func WithKeySorting(enabled bool) Option {
	return opt.NoError(func(c *config) { c.keySorting = enabled })
}

// WithBytesCompression selects the compress.Type a Bytes-typed field ([]byte,
// [N]byte) is compressed under before framing.
func WithBytesCompression(t compress.Type) Option {
	return opt.NoError(func(c *config) { c.bytesCompression = t })
}

// WithDateTimePrecision overrides the sub-second truncation applied to
// time.Time values before encoding.
func WithDateTimePrecision(p DateTimePrecision) Option {
	return opt.NoError(func(c *config) { c.dateTimePrecision = p })
}

// WithMaxDepth overrides the maximum container nesting depth an Encoder or
// Decoder will follow before failing with errs.ErrMaxDepthExceeded.
func WithMaxDepth(n int) Option {
	return opt.NoError(func(c *config) { c.maxDepth = n })
}

func applyOptions(cfg *config, opts []Option) error {
	return opt.Apply(cfg, opts...)
}
