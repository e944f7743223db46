package serde

import "github.com/rionfmt/rion/value"

// Variant is implemented by a host enum-like type so Marshal can project it
// onto the canonical enum encoding: a unit variant is a single Key-typed
// label; a tuple or struct variant is a one-entry object whose key is the
// variant name and whose value is the payload.
type Variant interface {
	VariantName() string
}

// PayloadVariant is a Variant that carries data beyond its name. A tuple
// variant returns an Array value; a struct variant returns an Object value.
// A Variant that does not also implement PayloadVariant is encoded as a
// unit variant.
type PayloadVariant interface {
	Variant
	VariantPayload() *value.Value
}

// VariantSetter lets Unmarshal populate a host enum-like value from a
// decoded variant. name is the variant label; raw is the encoded bytes of
// the payload field (nil for a unit variant) — typically handed to
// container.Decode to recover a value.Value, or further inspected field by
// field via a Decoder built over it.
type VariantSetter interface {
	SetVariant(name string, raw []byte) error
}
