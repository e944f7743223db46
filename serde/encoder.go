package serde

import (
	"fmt"

	"github.com/rionfmt/rion/compress"
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/field"
	"github.com/rionfmt/rion/internal/lead"
	"github.com/rionfmt/rion/internal/pool"
	"github.com/rionfmt/rion/wire"
)

// containerKind distinguishes the two generic-serializer container shapes;
// Encoder tracks it per open frame only to give better error context, since
// the framing mechanics are identical for both.
type containerKind uint8

const (
	containerSeq containerKind = iota
	containerMap
)

// frame records one open container's lead-byte position in the sink, so
// EndSeq/EndMap can come back and widen the reserved length placeholder
// once the payload size is known.
type frame struct {
	start int
	typ   wire.TypeCode
	kind  containerKind
}

// Encoder is the generic serializer (C4): a visitor-style writer a caller
// drives with primitive, sequence, map, and enum-variant calls. It owns its
// sink and container stack exclusively for the duration of one encode; it
// is single-threaded and non-reentrant.
type Encoder struct {
	buf    *pool.ByteBuffer
	pooled bool
	stack  []frame
	cfg    *config
}

// NewEncoder returns an Encoder backed by a pooled sink. Release it with
// Close when the caller is done draining Bytes(), or just let it be
// garbage-collected — Close is an optimization, not a correctness
// requirement.
func NewEncoder(opts ...Option) *Encoder {
	cfg := newConfig()
	_ = applyOptions(cfg, opts)

	return &Encoder{
		buf:    pool.GetEncodeBuffer(),
		pooled: true,
		cfg:    cfg,
	}
}

// Close returns the Encoder's sink to the shared pool. The Encoder must not
// be used afterward.
func (e *Encoder) Close() {
	if e.pooled && e.buf != nil {
		pool.PutEncodeBuffer(e.buf)
		e.buf = nil
	}
}

// Bytes returns the bytes written so far. The slice is owned by the
// Encoder's sink and is only valid until the next write or Close.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Reset clears the Encoder for reuse, keeping the underlying sink capacity.
func (e *Encoder) Reset() {
	e.buf.Reset()
	e.stack = e.stack[:0]
}

func (e *Encoder) checkDepth() error {
	if len(e.stack) >= e.cfg.maxDepth {
		return fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, e.cfg.maxDepth)
	}

	return nil
}

func (e *Encoder) writeField(f field.Field) error {
	dst, err := field.Write(e.buf.B, f)
	if err != nil {
		return err
	}
	e.buf.B = dst

	return nil
}

// WriteNull emits a null field, used both for Unit and for Option's none
// case.
func (e *Encoder) WriteNull() error {
	return e.writeField(field.Tiny(wire.TypeBool, wire.BoolNull))
}

// WriteBool emits a tiny-family boolean field.
func (e *Encoder) WriteBool(b bool) error {
	l := wire.BoolFalse
	if b {
		l = wire.BoolTrue
	}

	return e.writeField(field.Tiny(wire.TypeBool, l))
}

// WriteInt64 emits a signed integer, choosing IntPositive/IntNegative per
// sign.
func (e *Encoder) WriteInt64(v int64) error {
	if v >= 0 {
		return e.writeField(field.Short(wire.TypeIntPos, field.EncodeMagnitude(uint64(v))))
	}

	magnitude := uint64(-(v + 1))

	return e.writeField(field.Short(wire.TypeIntNeg, field.EncodeMagnitude(magnitude)))
}

// WriteUint64 emits an unsigned integer as IntPositive.
func (e *Encoder) WriteUint64(v uint64) error {
	return e.writeField(field.Short(wire.TypeIntPos, field.EncodeMagnitude(v)))
}

// WriteFloat32 emits a binary32 field.
func (e *Encoder) WriteFloat32(f float32) error {
	return e.writeField(field.Short(wire.TypeFloat, field.EncodeFloat32(f)))
}

// WriteFloat64 emits a binary64 field.
func (e *Encoder) WriteFloat64(f float64) error {
	return e.writeField(field.Short(wire.TypeFloat, field.EncodeFloat64(f)))
}

// WriteString emits a UTF-8 string field, short or long depending on length.
func (e *Encoder) WriteString(s string) error {
	payload := []byte(s)

	return e.writeField(field.Field{
		Type:    field.StringTypeFor(len(payload)),
		Family:  familyForStringLen(len(payload)),
		Payload: payload,
	})
}

// WriteBytes emits a Bytes field, compressing the payload first if the
// Encoder was configured with WithBytesCompression.
func (e *Encoder) WriteBytes(data []byte) error {
	payload := data
	if e.cfg.bytesCompression != compress.None {
		codec, err := compress.GetCodec(e.cfg.bytesCompression)
		if err != nil {
			return err
		}

		payload, err = codec.Compress(data)
		if err != nil {
			return err
		}
	}

	return e.writeField(field.Normal(wire.TypeBytes, payload))
}

// WriteDateTime emits a packed UTCDateTime field.
func (e *Encoder) WriteDateTime(dt field.DateTime) error {
	return e.writeField(field.Short(wire.TypeDateTime, field.EncodeDateTime(dt)))
}

// WriteRaw appends an already-encoded field verbatim. It exists for callers
// that hold a pre-built value (e.g. a container.Encode result) and want to
// splice it in as one child of the container currently open, without
// re-encoding it field by field.
func (e *Encoder) WriteRaw(b []byte) error {
	e.buf.MustWrite(b)

	return nil
}

// WriteKey emits a Key-typed field — used directly for map/struct keys and
// for unit enum-variant labels.
func (e *Encoder) WriteKey(s string) error {
	payload := []byte(s)

	return e.writeField(field.Field{
		Type:    field.KeyTypeFor(len(payload)),
		Family:  familyForStringLen(len(payload)),
		Payload: payload,
	})
}

func familyForStringLen(n int) wire.Family {
	if n <= 15 {
		return wire.FamilyShort
	}

	return wire.FamilyNormal
}

// BeginSeq opens an Array container with deferred length framing: it writes
// the lead byte with a placeholder L and a single reserved length byte, and
// pushes the lead's sink offset onto the container stack. Elements are
// written with whatever primitive/BeginSeq/BeginMap call fits them; EndSeq
// closes the frame and back-patches the real length.
func (e *Encoder) BeginSeq() error { return e.beginContainer(wire.TypeArray, containerSeq) }

// EndSeq closes the innermost Array frame opened by BeginSeq.
func (e *Encoder) EndSeq() error { return e.endContainer(containerSeq) }

// BeginMap opens an Object container the same way BeginSeq opens an Array.
// Each entry must be written as WriteMapKey followed by exactly one value
// write before the next entry or EndMap.
func (e *Encoder) BeginMap() error { return e.beginContainer(wire.TypeObject, containerMap) }

// EndMap closes the innermost Object frame opened by BeginMap.
func (e *Encoder) EndMap() error { return e.endContainer(containerMap) }

func (e *Encoder) beginContainer(t wire.TypeCode, kind containerKind) error {
	if err := e.checkDepth(); err != nil {
		return err
	}

	start := e.buf.Len()
	e.buf.MustWrite([]byte{lead.EncodeLead(t, 0), 0x00})
	e.stack = append(e.stack, frame{start: start, typ: t, kind: kind})

	return nil
}

func (e *Encoder) endContainer(kind containerKind) error {
	if len(e.stack) == 0 {
		return fmt.Errorf("%w: end without matching begin", errs.ErrWrongType)
	}

	top := e.stack[len(e.stack)-1]
	if top.kind != kind {
		return fmt.Errorf("%w: mismatched container end", errs.ErrWrongType)
	}
	e.stack = e.stack[:len(e.stack)-1]

	return e.patchLength(top)
}

// patchLength widens or shrinks the single placeholder length byte reserved
// by beginContainer to the canonical compact-uint width for the now-known
// payload length, shifting the payload bytes in place, then fixes up the
// lead byte's L nibble.
func (e *Encoder) patchLength(f frame) error {
	const reserved = 1

	payloadStart := f.start + 1 + reserved
	payloadLen := e.buf.Len() - payloadStart
	desired := int(lead.BytesNeeded(uint64(payloadLen)))
	delta := desired - reserved

	switch {
	case delta > 0:
		oldLen := e.buf.Len()
		e.buf.ExtendOrGrow(delta)
		copy(e.buf.B[payloadStart+delta:oldLen+delta], e.buf.B[payloadStart:oldLen])

	case delta < 0:
		oldLen := e.buf.Len()
		copy(e.buf.B[payloadStart+delta:oldLen+delta], e.buf.B[payloadStart:oldLen])
		e.buf.SetLength(oldLen + delta)
	}

	lengthStart := f.start + 1
	lenBytes := lead.WriteCompactUint(nil, uint64(payloadLen))
	copy(e.buf.B[lengthStart:lengthStart+desired], lenBytes)
	e.buf.B[f.start] = lead.EncodeLead(f.typ, uint8(desired))

	return nil
}

// WriteMapKey writes s as the key half of one map/struct entry. The key is
// always written as a natural UTF-8 string field first, then its tag
// nibble is rewritten in place from the string type code to the Key type
// code — the same deferred-framing trick BeginSeq/EndSeq uses, applied to
// one byte instead of a length field.
func (e *Encoder) WriteMapKey(s string) error {
	pos := e.buf.Len()
	if err := e.WriteString(s); err != nil {
		return err
	}

	return e.rewriteKeyNibble(pos)
}

func (e *Encoder) rewriteKeyNibble(pos int) error {
	_, typ, l, err := lead.DecodeLead(e.buf.B[pos])
	if err != nil {
		return err
	}

	var keyType wire.TypeCode
	switch typ {
	case wire.TypeStrShort:
		keyType = wire.TypeKeyShort
	case wire.TypeStrLong:
		keyType = wire.TypeKeyLong
	default:
		return errs.ErrInvalidKeyType
	}

	e.buf.B[pos] = lead.EncodeLead(keyType, l)

	return nil
}

// WriteUnitVariant emits a no-payload enum variant as a single Key-typed
// label.
func (e *Encoder) WriteUnitVariant(name string) error {
	return e.WriteKey(name)
}

// BeginVariant opens a tuple or struct enum variant: a one-entry object
// whose key is the variant name and whose value is the payload container
// the caller opens next (BeginSeq for a tuple variant, BeginMap for a
// struct variant).
func (e *Encoder) BeginVariant(name string) error {
	if err := e.BeginMap(); err != nil {
		return err
	}

	return e.WriteMapKey(name)
}

// EndVariant closes the one-entry object opened by BeginVariant. The
// caller must have already closed the payload container (EndSeq/EndMap)
// before calling EndVariant.
func (e *Encoder) EndVariant() error {
	return e.EndMap()
}

