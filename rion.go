// Package rion provides a compact, self-describing binary interchange
// format for arbitrary structured values.
//
// RION values are framed as a one-byte lead (type code plus an inline or
// deferred length) followed by a payload, so a decoder never needs a schema
// to walk a document: every field carries its own shape. The format covers
// the usual primitives (bool, signed/unsigned integers, float32/64, UTF-8
// strings, opaque bytes, a packed UTC date-time) plus three composites —
// Array, Object, and a columnar Table — and a compact enum encoding built
// on top of Object.
//
// # Core Features
//
//   - Self-describing: every field's lead byte carries its own type and length
//   - Deferred-length framing for sequences and maps of unknown size up front
//   - Canonical compact integer encoding (leading zero bytes stripped)
//   - Optional payload compression (None, Zstd, S2, LZ4) for Bytes fields
//   - Reflection-driven Marshal/Unmarshal for ordinary Go values
//   - A hand-built Value tree (package value) for callers that want full
//     control over what gets written
//
// # Basic Usage
//
// Marshaling an ordinary Go value:
//
//	type Reading struct {
//	    Sensor string  `rion:"sensor"`
//	    Value  float64 `rion:"value"`
//	    At     time.Time
//	}
//
//	data, err := rion.Marshal(Reading{Sensor: "temp-1", Value: 21.5, At: time.Now()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var r Reading
//	if err := rion.Unmarshal(data, &r); err != nil {
//	    log.Fatal(err)
//	}
//
// Building a value by hand and encoding it directly:
//
//	obj := value.NewObject()
//	obj.Add("sensor", value.Str("temp-1"))
//	obj.Add("value", value.Float64(21.5))
//
//	data, err := rion.Encode(obj)
//
// # Package Structure
//
// This package is a thin convenience wrapper: Marshal/Unmarshal drive
// package serde's reflection bridge, Encode/Decode drive package
// container's Value<->bytes codec, and NewEncoder/NewDecoder hand back the
// package serde visitor types directly for callers that want to stream a
// document field by field. For the primitive and composite framings
// themselves, see packages field, container, and value.
package rion

import (
	"github.com/rionfmt/rion/container"
	"github.com/rionfmt/rion/serde"
	"github.com/rionfmt/rion/value"
)

// Option configures an Encoder, Decoder, Marshal, or Unmarshal call. See
// WithKeySorting, WithBytesCompression, WithDateTimePrecision, and
// WithMaxDepth in package serde.
type Option = serde.Option

// Marshal projects v — an arbitrary Go value — onto canonical RION bytes.
//
// Parameters:
//   - v: the value to encode. Structs, maps (string-keyed), slices, arrays,
//     pointers, the primitive kinds, time.Time, and any value implementing
//     serde.Variant are all supported; see package serde for the full kind
//     table.
//   - opts: optional configuration (see serde.WithKeySorting,
//     serde.WithBytesCompression, serde.WithDateTimePrecision)
//
// Returns the encoded bytes, or an error if v contains an unsupported kind
// or exceeds the configured nesting depth.
//
// Example:
//
//	data, err := rion.Marshal(map[string]any{"ok": true, "count": 3})
func Marshal(v any, opts ...Option) ([]byte, error) {
	return serde.Marshal(v, opts...)
}

// Unmarshal reverses Marshal into v, which must be a non-nil pointer.
//
// Parameters:
//   - data: encoded RION bytes, typically from Marshal or Encode
//   - v: a non-nil pointer to the destination value
//   - opts: optional configuration, must match what Marshal used for
//     bytes compression to round-trip correctly
//
// Returns an error if data is malformed, contains a value that does not
// fit v's type, or leaves unconsumed bytes after the top-level value.
// Interface-typed destinations (such as any, or a map or slice of any) are
// not supported and fail with errs.ErrUnsupportedType.
//
// Example:
//
//	var m map[string]int64
//	err := rion.Unmarshal(data, &m)
func Unmarshal(data []byte, v any, opts ...Option) error {
	return serde.Unmarshal(data, v, opts...)
}

// Encode serializes a hand-built value.Value into a self-contained RION
// byte sequence.
//
// Parameters:
//   - v: the value tree to encode, typically built via value.NewObject,
//     value.NewArray, value.NewTable, or one of the value.Bool/Int/Uint/
//     Str/Bytes constructors.
//
// Returns the encoded bytes, or an error if v holds a value of unknown kind
// or a payload too large to frame. Cyclic value trees are not detected.
//
// Example:
//
//	arr := value.NewArray()
//	arr.Append(value.Int(1))
//	arr.Append(value.Int(2))
//	data, err := rion.Encode(arr)
func Encode(v *value.Value) ([]byte, error) {
	return container.Encode(v)
}

// Decode parses a single RION value from data into a value.Value tree.
//
// Parameters:
//   - data: encoded RION bytes holding exactly one top-level value
//
// Returns the decoded value, or an error if data is malformed or leaves
// unconsumed bytes after the top-level value.
//
// Example:
//
//	v, err := rion.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj := v.AsObject()
func Decode(data []byte) (*value.Value, error) {
	return container.Decode(data)
}

// NewEncoder returns a serde.Encoder for streaming a document field by
// field via its WriteBool/WriteString/BeginSeq/BeginMap/... calls, for
// callers that need more control than Marshal's reflection bridge gives.
//
// Parameters:
//   - opts: optional configuration (see serde.WithBytesCompression,
//     serde.WithDateTimePrecision, serde.WithMaxDepth)
//
// Example:
//
//	enc := rion.NewEncoder()
//	defer enc.Close()
//	enc.BeginSeq()
//	enc.WriteInt64(1)
//	enc.WriteInt64(2)
//	enc.EndSeq()
//	data := enc.Bytes()
func NewEncoder(opts ...Option) *serde.Encoder {
	return serde.NewEncoder(opts...)
}

// NewDecoder returns a serde.Decoder reading from data, for callers that
// want to pull fields one at a time rather than decode a whole value at
// once.
//
// Parameters:
//   - data: encoded RION bytes. data is borrowed, not copied.
//   - opts: optional configuration, must match what produced data for
//     bytes compression to round-trip correctly
//
// Example:
//
//	dec := rion.NewDecoder(data)
//	elements, err := dec.BeginSeq()
func NewDecoder(data []byte, opts ...Option) *serde.Decoder {
	return serde.NewDecoder(data, opts...)
}
