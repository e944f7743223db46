package serde

import (
	"fmt"
	"unicode/utf8"

	"github.com/rionfmt/rion/compress"
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/field"
	"github.com/rionfmt/rion/internal/lead"
	"github.com/rionfmt/rion/wire"
)

// Decoder is the generic deserializer (C5): the inverse of Encoder. Its
// only state is the remaining input slice, so a container's payload window
// is simply handed off to a nested Decoder scoped to that sub-slice —
// reads against it cannot run past the window, and whatever it leaves
// unread at the end of the enclosing BeginSeq/BeginMap call is the window's
// unconsumed remainder.
type Decoder struct {
	data  []byte
	cfg   *config
	depth int
}

// NewDecoder returns a Decoder reading from data. data is borrowed, not
// copied; every decoded string/byte slice is a view into it.
func NewDecoder(data []byte, opts ...Option) *Decoder {
	cfg := newConfig()
	_ = applyOptions(cfg, opts)

	return &Decoder{data: data, cfg: cfg}
}

// Remaining reports how many unconsumed bytes are left in the Decoder's
// current window.
func (d *Decoder) Remaining() int { return len(d.data) }

// Finish fails with errs.ErrExtraData if any bytes remain. Call it after
// reading the single top-level value to enforce strictness on residual
// data.
func (d *Decoder) Finish() error {
	if len(d.data) != 0 {
		return errs.ErrExtraData
	}

	return nil
}

func (d *Decoder) peekLead() (wire.Family, wire.TypeCode, uint8, error) {
	if len(d.data) == 0 {
		return wire.FamilyInvalid, 0, 0, errs.ErrEmptyInput
	}

	return lead.DecodeLead(d.data[0])
}

func (d *Decoder) pullField() (field.Field, error) {
	f, rest, err := field.Parse(d.data)
	if err != nil {
		return field.Field{}, err
	}
	d.data = rest

	return f, nil
}

// PullRaw consumes exactly one field and returns its full encoded bytes
// (lead, length, and payload) rather than a decoded value. Array/Object
// fields come back whole, nested containers and all — useful for a host
// type that wants to stash or re-dispatch a sub-value without decoding it.
func (d *Decoder) PullRaw() ([]byte, error) {
	before := d.data
	_, rest, err := field.Parse(d.data)
	if err != nil {
		return nil, err
	}
	raw := before[:len(before)-len(rest)]
	d.data = rest

	return raw, nil
}

// IsNone reports whether the next field is the Option "none" case: a
// tiny-family null, or any normal-family field whose payload is empty.
func (d *Decoder) IsNone() bool {
	family, typ, l, err := d.peekLead()
	if err != nil {
		return false
	}

	if family == wire.FamilyTiny && typ == wire.TypeBool && l == wire.BoolNull {
		return true
	}

	return family == wire.FamilyNormal && l == 0
}

// ReadNone consumes the null/empty field IsNone reported.
func (d *Decoder) ReadNone() error {
	_, err := d.pullField()

	return err
}

// ReadBool reads a tiny-family boolean field.
func (d *Decoder) ReadBool() (bool, error) {
	f, err := d.pullField()
	if err != nil {
		return false, err
	}
	if f.Type != wire.TypeBool || f.Family != wire.FamilyTiny || f.TinyL == wire.BoolNull {
		return false, fmt.Errorf("%w: expected Bool, got %s", errs.ErrWrongType, f.Type)
	}

	return f.TinyL == wire.BoolTrue, nil
}

// ReadInt64 reads an IntPositive/IntNegative field and returns its logical
// value. Fails with errs.ErrIntegerOutOfRange if an IntPositive magnitude
// exceeds math.MaxInt64.
func (d *Decoder) ReadInt64() (int64, error) {
	f, err := d.pullField()
	if err != nil {
		return 0, err
	}

	magnitude, err := field.DecodeMagnitude(f.Payload)
	if err != nil {
		return 0, err
	}

	switch f.Type {
	case wire.TypeIntPos:
		if magnitude > 1<<63-1 {
			return 0, errs.ErrIntegerOutOfRange
		}

		return int64(magnitude), nil

	case wire.TypeIntNeg:
		if magnitude > 1<<63-1 {
			return 0, errs.ErrIntegerOutOfRange
		}

		return -(int64(magnitude) + 1), nil

	default:
		return 0, fmt.Errorf("%w: expected integer, got %s", errs.ErrWrongType, f.Type)
	}
}

// ReadUint64 reads an IntPositive field. Fails with errs.ErrWrongType for
// IntNegative — the caller asked for an unsigned value.
func (d *Decoder) ReadUint64() (uint64, error) {
	f, err := d.pullField()
	if err != nil {
		return 0, err
	}
	if f.Type != wire.TypeIntPos {
		return 0, fmt.Errorf("%w: expected positive integer, got %s", errs.ErrWrongType, f.Type)
	}

	return field.DecodeMagnitude(f.Payload)
}

// ReadFloat reads a Float field and reports whether the payload was the
// narrower binary32 width, so callers that want a float32 can skip a lossy
// float64 round-trip.
func (d *Decoder) ReadFloat() (value float64, isFloat32 bool, err error) {
	f, err := d.pullField()
	if err != nil {
		return 0, false, err
	}
	if f.Type != wire.TypeFloat {
		return 0, false, fmt.Errorf("%w: expected Float, got %s", errs.ErrWrongType, f.Type)
	}

	return field.DecodeFloat(f.Payload)
}

// ReadString reads a UTF-8 string field (short or long). Fails with
// errs.ErrInvalidUTF8 if the payload is not valid UTF-8 — the field
// grammar allows any bytes, but projecting to a host string requires
// validity.
func (d *Decoder) ReadString() (string, error) {
	f, err := d.pullField()
	if err != nil {
		return "", err
	}
	if !f.Type.IsString() {
		return "", fmt.Errorf("%w: expected string, got %s", errs.ErrWrongType, f.Type)
	}
	if !utf8Valid(f.Payload) {
		return "", errs.ErrInvalidUTF8
	}

	return string(f.Payload), nil
}

// ReadKey reads a Key-typed field (short or long) — the counterpart to
// Encoder.WriteKey, used for map/struct keys and unit enum-variant labels.
func (d *Decoder) ReadKey() (string, error) {
	f, err := d.pullField()
	if err != nil {
		return "", err
	}
	if !f.Type.IsKey() {
		return "", errs.ErrExpectedKey
	}
	if !utf8Valid(f.Payload) {
		return "", errs.ErrInvalidUTF8
	}

	return string(f.Payload), nil
}

// ReadBytes reads a Bytes field, decompressing it first if the Decoder was
// configured with WithBytesCompression.
func (d *Decoder) ReadBytes() ([]byte, error) {
	f, err := d.pullField()
	if err != nil {
		return nil, err
	}
	if f.Type != wire.TypeBytes {
		return nil, fmt.Errorf("%w: expected Bytes, got %s", errs.ErrWrongType, f.Type)
	}
	if d.cfg.bytesCompression == compress.None {
		return f.Payload, nil
	}

	codec, err := compress.GetCodec(d.cfg.bytesCompression)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(f.Payload)
}

// ReadDateTime reads a packed UTCDateTime field.
func (d *Decoder) ReadDateTime() (field.DateTime, error) {
	f, err := d.pullField()
	if err != nil {
		return field.DateTime{}, err
	}
	if f.Type != wire.TypeDateTime {
		return field.DateTime{}, fmt.Errorf("%w: expected UTCDateTime, got %s", errs.ErrWrongType, f.Type)
	}

	return field.DecodeDateTime(f.Payload)
}

// BeginSeq consumes an Array field and returns a Decoder scoped to its
// payload window. Loop while the returned Decoder's Remaining() > 0,
// reading one element per iteration; call EndSeq when done to enforce that
// the window was exactly consumed.
func (d *Decoder) BeginSeq() (*Decoder, error) {
	return d.beginContainer(wire.TypeArray)
}

// EndSeq enforces that elements (returned by BeginSeq) was fully drained.
// A caller that stops reading early (e.g. a fixed-size array target
// shorter than the wire sequence) must Skip the remainder first.
func (d *Decoder) EndSeq(elements *Decoder) error {
	return elements.Finish()
}

// BeginMap consumes an Object field and returns a Decoder scoped to its
// payload window, alternating key/value pairs just like BeginSeq's
// elements.
func (d *Decoder) BeginMap() (*Decoder, error) {
	return d.beginContainer(wire.TypeObject)
}

// EndMap is BeginMap's EndSeq counterpart.
func (d *Decoder) EndMap(entries *Decoder) error {
	return entries.Finish()
}

func (d *Decoder) beginContainer(want wire.TypeCode) (*Decoder, error) {
	if d.depth >= d.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, d.cfg.maxDepth)
	}

	f, err := d.pullField()
	if err != nil {
		return nil, err
	}
	if f.Type != want {
		return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrWrongType, want, f.Type)
	}

	return &Decoder{data: f.Payload, cfg: d.cfg, depth: d.depth + 1}, nil
}

// Skip consumes and discards the next field, recursing into Array/Object
// payloads so nested containers are skipped whole.
func (d *Decoder) Skip() error {
	family, _, _, err := d.peekLead()
	if err != nil {
		return err
	}

	switch family {
	case wire.FamilyNormal:
		f, err := d.pullField()
		if err != nil {
			return err
		}
		if f.Type == wire.TypeArray || f.Type == wire.TypeObject {
			inner := &Decoder{data: f.Payload, cfg: d.cfg, depth: d.depth + 1}
			for inner.Remaining() > 0 {
				if err := inner.Skip(); err != nil {
					return err
				}
			}
		}

		return nil

	default:
		_, err := d.pullField()

		return err
	}
}

// ReadVariant peeks the next field to determine enum shape: a Key-typed
// label is a unit variant; an Object with exactly one entry carries the
// variant name as its key and the payload as its value.
// fn is called with the variant name and, for a non-unit variant, a
// Decoder scoped to the single payload field (nil for a unit variant).
func (d *Decoder) ReadVariant(fn func(name string, payload *Decoder) error) error {
	family, typ, _, err := d.peekLead()
	if err != nil {
		return err
	}

	switch {
	case typ.IsKey():
		name, err := d.ReadKey()
		if err != nil {
			return err
		}

		return fn(name, nil)

	case family == wire.FamilyNormal && typ == wire.TypeObject:
		entries, err := d.BeginMap()
		if err != nil {
			return err
		}
		if entries.Remaining() == 0 {
			return errs.ErrInvalidEnum
		}

		name, err := entries.ReadKey()
		if err != nil {
			return errs.ErrInvalidEnum
		}
		if entries.Remaining() == 0 {
			return errs.ErrInvalidEnum
		}

		if err := fn(name, entries); err != nil {
			return err
		}

		return d.EndMap(entries)

	default:
		return errs.ErrInvalidEnum
	}
}

func utf8Valid(b []byte) bool {
	return utf8.Valid(b)
}
