// Package container implements the Object, Array, and Table framings on top
// of package field, and — because every composite must recurse into
// arbitrary child values — doubles as the direct value<->bytes codec:
// Encode(value) and Decode(bytes).
package container

import (
	"sort"
	"unicode/utf8"

	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/field"
	"github.com/rionfmt/rion/value"
	"github.com/rionfmt/rion/wire"
)

// Encode serializes v into a self-contained RION byte sequence.
func Encode(v *value.Value) ([]byte, error) {
	f, err := encodeValue(v)
	if err != nil {
		return nil, err
	}

	return field.Write(nil, f)
}

// Decode parses a single RION value from data. It fails with
// errs.ErrExtraData if bytes remain after the outer field.
func Decode(data []byte) (*value.Value, error) {
	v, rest, err := decodeOne(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errs.ErrExtraData
	}

	return v, nil
}

// decodeOne parses one field from the head of data and projects it to a
// Value, returning the unconsumed tail.
func decodeOne(data []byte) (*value.Value, []byte, error) {
	f, rest, err := field.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	v, err := fieldToValue(f)
	if err != nil {
		return nil, nil, err
	}

	return v, rest, nil
}

func encodeValue(v *value.Value) (field.Field, error) {
	switch v.Kind() {
	case value.KindNull:
		return field.Tiny(wire.TypeBool, wire.BoolNull), nil

	case value.KindBool:
		if v.Bool() {
			return field.Tiny(wire.TypeBool, wire.BoolTrue), nil
		}

		return field.Tiny(wire.TypeBool, wire.BoolFalse), nil

	case value.KindIntPos:
		return field.Short(wire.TypeIntPos, field.EncodeMagnitude(v.Magnitude())), nil

	case value.KindIntNeg:
		return field.Short(wire.TypeIntNeg, field.EncodeMagnitude(v.Magnitude())), nil

	case value.KindFloat32:
		return field.Short(wire.TypeFloat, field.EncodeFloat32(float32(v.Float()))), nil

	case value.KindFloat64:
		return field.Short(wire.TypeFloat, field.EncodeFloat64(v.Float())), nil

	case value.KindString:
		return stringField(field.StringTypeFor, v.Str()), nil

	case value.KindKey:
		return stringField(field.KeyTypeFor, v.Str()), nil

	case value.KindBytes:
		return field.Normal(wire.TypeBytes, v.RawBytes()), nil

	case value.KindDateTime:
		return field.Short(wire.TypeDateTime, field.EncodeDateTime(v.DateTimeValue())), nil

	case value.KindArray:
		return encodeArray(v.Elements())

	case value.KindObject:
		return encodeObject(v.AsObject())

	case value.KindTable:
		return encodeTable(v.AsTable())

	default:
		return field.Field{}, errs.ErrUnsupportedType
	}
}

func stringField(typeFor func(int) wire.TypeCode, s string) field.Field {
	payload := []byte(s)
	t := typeFor(len(payload))
	if t == wire.TypeStrShort || t == wire.TypeKeyShort {
		return field.Short(t, payload)
	}

	return field.Normal(t, payload)
}

func fieldToValue(f field.Field) (*value.Value, error) {
	switch f.Family {
	case wire.FamilyTiny:
		switch f.TinyL {
		case wire.BoolNull:
			return value.Null(), nil
		case wire.BoolFalse:
			return value.Bool(false), nil
		default:
			return value.Bool(true), nil
		}

	case wire.FamilyShort:
		return shortFieldToValue(f)

	default: // wire.FamilyNormal
		return normalFieldToValue(f)
	}
}

func shortFieldToValue(f field.Field) (*value.Value, error) {
	switch f.Type {
	case wire.TypeIntPos:
		m, err := field.DecodeMagnitude(f.Payload)
		if err != nil {
			return nil, err
		}

		return value.Uint(m), nil

	case wire.TypeIntNeg:
		m, err := field.DecodeMagnitude(f.Payload)
		if err != nil {
			return nil, err
		}

		return value.NegMagnitude(m), nil

	case wire.TypeFloat:
		f64, isF32, err := field.DecodeFloat(f.Payload)
		if err != nil {
			return nil, err
		}
		if isF32 {
			return value.Float32(float32(f64)), nil
		}

		return value.Float64(f64), nil

	case wire.TypeStrShort:
		return utf8Value(f.Payload, false)

	case wire.TypeKeyShort:
		return utf8Value(f.Payload, true)

	case wire.TypeDateTime:
		dt, err := field.DecodeDateTime(f.Payload)
		if err != nil {
			return nil, err
		}

		return value.DateTime(dt), nil

	default:
		return nil, errs.ErrWrongType
	}
}

func normalFieldToValue(f field.Field) (*value.Value, error) {
	switch f.Type {
	case wire.TypeBytes:
		return value.Bytes(f.Payload), nil

	case wire.TypeStrLong:
		return utf8Value(f.Payload, false)

	case wire.TypeKeyLong:
		return utf8Value(f.Payload, true)

	case wire.TypeArray:
		items, err := decodeArray(f.Payload)
		if err != nil {
			return nil, err
		}

		return value.Array(items...), nil

	case wire.TypeObject:
		return decodeObject(f.Payload)

	case wire.TypeTable:
		return decodeTable(f.Payload)

	default:
		return nil, errs.ErrWrongType
	}
}

func utf8Value(payload []byte, isKey bool) (*value.Value, error) {
	if !utf8.Valid(payload) {
		return nil, errs.ErrInvalidUTF8
	}
	if isKey {
		return value.Key(string(payload)), nil
	}

	return value.Str(string(payload)), nil
}

// --- Array ---

func encodeArray(items []*value.Value) (field.Field, error) {
	var payload []byte
	for _, item := range items {
		f, err := encodeValue(item)
		if err != nil {
			return field.Field{}, err
		}
		payload, err = field.Write(payload, f)
		if err != nil {
			return field.Field{}, err
		}
	}

	return field.Normal(wire.TypeArray, payload), nil
}

func decodeArray(payload []byte) ([]*value.Value, error) {
	items := make([]*value.Value, 0)
	for len(payload) > 0 {
		v, rest, err := decodeOne(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		payload = rest
	}

	return items, nil
}

// --- Object ---

func encodeObject(o *value.Object) (field.Field, error) {
	entries := append([]value.Entry(nil), o.Entries()...)
	// Canonical encoding sorts keys by raw byte comparison so two logically
	// equal objects always produce identical bytes.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	var payload []byte
	for _, e := range entries {
		keyField := stringField(field.KeyTypeFor, e.Key)
		var err error
		payload, err = field.Write(payload, keyField)
		if err != nil {
			return field.Field{}, err
		}

		valField, err := encodeValue(e.Val)
		if err != nil {
			return field.Field{}, err
		}
		payload, err = field.Write(payload, valField)
		if err != nil {
			return field.Field{}, err
		}
	}

	return field.Normal(wire.TypeObject, payload), nil
}

func decodeObject(payload []byte) (*value.Value, error) {
	obj := value.NewObject()
	for len(payload) > 0 {
		keyField, rest, err := field.Parse(payload)
		if err != nil {
			return nil, err
		}
		if !keyField.Type.IsKey() {
			return nil, errs.ErrExpectedKey
		}
		if !utf8.Valid(keyField.Payload) {
			return nil, errs.ErrInvalidUTF8
		}
		key := string(keyField.Payload)

		val, rest2, err := decodeOne(rest)
		if err != nil {
			return nil, err
		}

		if err := addUnique(obj, key, val); err != nil {
			return nil, err
		}

		payload = rest2
	}

	return obj, nil
}

// addUnique guards (*value.Value).Add's panic-on-duplicate contract with a
// recover, converting it to the errs.ErrDuplicateKey the decoder contract
// promises instead of propagating a panic from malformed input.
func addUnique(obj *value.Value, key string, val *value.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ErrDuplicateKey
		}
	}()
	obj.Add(key, val)

	return nil
}

// --- Table ---

func encodeTable(t *value.Table) (field.Field, error) {
	var payload []byte
	var err error

	mField := field.Short(wire.TypeIntPos, field.EncodeMagnitude(uint64(t.NumRows())))
	payload, err = field.Write(payload, mField)
	if err != nil {
		return field.Field{}, err
	}

	for _, col := range t.Columns() {
		colField := stringField(field.KeyTypeFor, col)
		payload, err = field.Write(payload, colField)
		if err != nil {
			return field.Field{}, err
		}
	}

	for _, row := range t.Rows() {
		for _, v := range row {
			vf, err := encodeValue(v)
			if err != nil {
				return field.Field{}, err
			}
			payload, err = field.Write(payload, vf)
			if err != nil {
				return field.Field{}, err
			}
		}
	}

	return field.Normal(wire.TypeTable, payload), nil
}

func decodeTable(payload []byte) (*value.Value, error) {
	mField, rest, err := field.Parse(payload)
	if err != nil {
		return nil, err
	}
	if mField.Type != wire.TypeIntPos {
		return nil, errs.ErrInvalidTableShape
	}
	m, err := field.DecodeMagnitude(mField.Payload)
	if err != nil {
		return nil, err
	}

	var columns []string
	for {
		if len(rest) == 0 {
			break
		}
		peekField, peekRest, err := field.Parse(rest)
		if err != nil {
			return nil, err
		}
		if !peekField.Type.IsKey() {
			break
		}
		if !utf8.Valid(peekField.Payload) {
			return nil, errs.ErrInvalidUTF8
		}
		columns = append(columns, string(peekField.Payload))
		rest = peekRest
	}
	n := len(columns)

	tbl := value.NewTable(columns)

	if m == 0 || n == 0 {
		if len(rest) != 0 {
			return nil, errs.ErrInvalidTableShape
		}

		return tbl, nil
	}

	total := m * uint64(n)
	row := make([]*value.Value, 0, n)
	var count uint64
	for len(rest) > 0 {
		v, next, err := decodeOne(rest)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
		count++
		if len(row) == n {
			tbl.AddRow(row...)
			row = make([]*value.Value, 0, n)
		}
		rest = next
	}

	if count != total {
		return nil, errs.ErrInvalidTableShape
	}

	return tbl, nil
}
