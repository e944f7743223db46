package serde

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/rionfmt/rion/container"
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/field"
)

var timeType = reflect.TypeOf(time.Time{})

// Marshal projects v onto canonical RION bytes via the Encoder primitives,
// driving the projection by reflection over v's Go type. Supported kinds:
// bool, every int/uint width, float32/64, string, []byte/[N]byte, slices
// and arrays (as Array), maps with string keys and structs (as Object),
// pointers (as Option), time.Time (as UTCDateTime), and any value
// implementing Variant (as an enum).
func Marshal(v any, opts ...Option) ([]byte, error) {
	enc := NewEncoder(opts...)
	defer enc.Close()

	if err := encodeValue(enc, reflect.ValueOf(v)); err != nil {
		return nil, err
	}

	return append([]byte(nil), enc.Bytes()...), nil
}

// Unmarshal reverses Marshal into *v, which must be a non-nil pointer.
func Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: Unmarshal target must be a non-nil pointer", errs.ErrWrongType)
	}

	dec := NewDecoder(data, opts...)
	if err := decodeValue(dec, rv.Elem()); err != nil {
		return err
	}

	return dec.Finish()
}

func encodeValue(enc *Encoder, rv reflect.Value) error {
	if !rv.IsValid() {
		return enc.WriteNull()
	}

	if rv.CanInterface() {
		if variant, ok := rv.Interface().(Variant); ok {
			return encodeVariant(enc, variant)
		}
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return enc.WriteNull()
		}

		return encodeValue(enc, rv.Elem())

	case reflect.Bool:
		return enc.WriteBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return enc.WriteInt64(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return enc.WriteUint64(rv.Uint())

	case reflect.Float32:
		return enc.WriteFloat32(float32(rv.Float()))

	case reflect.Float64:
		return enc.WriteFloat64(rv.Float())

	case reflect.String:
		return enc.WriteString(rv.String())

	case reflect.Struct:
		if rv.Type() == timeType {
			return encodeTime(enc, rv.Interface().(time.Time), enc.cfg.dateTimePrecision)
		}

		return encodeStruct(enc, rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return enc.WriteBytes(rv.Bytes())
		}
		if rv.IsNil() {
			return enc.WriteNull()
		}

		return encodeSeq(enc, rv)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			buf := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(buf), rv)

			return enc.WriteBytes(buf)
		}

		return encodeSeq(enc, rv)

	case reflect.Map:
		return encodeMap(enc, rv)

	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedType, rv.Kind())
	}
}

func encodeSeq(enc *Encoder, rv reflect.Value) error {
	if err := enc.BeginSeq(); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := encodeValue(enc, rv.Index(i)); err != nil {
			return err
		}
	}

	return enc.EndSeq()
}

func encodeMap(enc *Encoder, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key must be string, got %s", errs.ErrInvalidKeyType, rv.Type().Key())
	}

	keys := rv.MapKeys()
	if enc.cfg.keySorting {
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	}

	if err := enc.BeginMap(); err != nil {
		return err
	}
	for _, k := range keys {
		if err := enc.WriteMapKey(k.String()); err != nil {
			return err
		}
		if err := encodeValue(enc, rv.MapIndex(k)); err != nil {
			return err
		}
	}

	return enc.EndMap()
}

// fieldName returns the wire key for struct field f: its `rion` tag if
// present, else its Go name. A tag of "-" means skip the field.
func fieldName(f reflect.StructField) (name string, skip bool) {
	tag := f.Tag.Get("rion")
	if tag == "-" {
		return "", true
	}
	if tag != "" {
		if i := strings.IndexByte(tag, ','); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag, false
		}
	}

	return f.Name, false
}

type structEntry struct {
	name string
	val  reflect.Value
}

func structEntries(rv reflect.Value) []structEntry {
	t := rv.Type()
	entries := make([]structEntry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}

		name, skip := fieldName(f)
		if skip {
			continue
		}

		entries = append(entries, structEntry{name: name, val: rv.Field(i)})
	}

	return entries
}

func encodeStruct(enc *Encoder, rv reflect.Value) error {
	entries := structEntries(rv)
	if enc.cfg.keySorting {
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	}

	if err := enc.BeginMap(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := enc.WriteMapKey(e.name); err != nil {
			return err
		}
		if err := encodeValue(enc, e.val); err != nil {
			return err
		}
	}

	return enc.EndMap()
}

func encodeTime(enc *Encoder, t time.Time, precision DateTimePrecision) error {
	u := t.UTC()
	nanos := uint32(u.Nanosecond())

	switch precision {
	case PrecisionMillis:
		nanos = (nanos / 1_000_000) * 1_000_000
	case PrecisionMicros:
		nanos = (nanos / 1_000) * 1_000
	}

	return enc.WriteDateTime(field.DateTime{
		Year:   uint16(u.Year()),
		Month:  uint8(u.Month()),
		Day:    uint8(u.Day()),
		Hour:   uint8(u.Hour()),
		Minute: uint8(u.Minute()),
		Second: uint8(u.Second()),
		Nanos:  nanos,
	})
}

func encodeVariant(enc *Encoder, variant Variant) error {
	name := variant.VariantName()

	pv, ok := variant.(PayloadVariant)
	if !ok {
		return enc.WriteUnitVariant(name)
	}

	payload := pv.VariantPayload()
	if payload == nil {
		return enc.WriteUnitVariant(name)
	}

	b, err := container.Encode(payload)
	if err != nil {
		return err
	}

	if err := enc.BeginVariant(name); err != nil {
		return err
	}
	if err := enc.WriteRaw(b); err != nil {
		return err
	}

	return enc.EndVariant()
}
