// Package value defines RION's logical value universe: the tagged union a
// host program builds by hand, or that the serde bridge (package serde)
// projects to and from arbitrary Go values.
package value

import (
	"math"
	"time"

	"github.com/rionfmt/rion/field"
)

// Kind discriminates the members of the Value union.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindIntPos
	KindIntNeg
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindKey
	KindDateTime
	KindArray
	KindObject
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindIntPos:
		return "Int64Positive"
	case KindIntNeg:
		return "Int64Negative"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindKey:
		return "Key"
	case KindDateTime:
		return "UTCDateTime"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Value is one RION logical value. The zero Value is Null.
type Value struct {
	kind Kind

	boolVal bool
	magVal  uint64 // magnitude for KindIntPos/KindIntNeg
	fltVal  float64
	str     string // KindString/KindKey
	bytes   []byte
	dt      field.DateTime
	arr     []*Value
	obj     *Object
	tbl     *Table
}

// Kind returns the value's logical type.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}

	return v.kind
}

// --- constructors ---

// Null returns the Null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Int returns an Int64Positive or Int64Negative value covering the full
// native int64 range.
func Int(i int64) *Value {
	if i >= 0 {
		return &Value{kind: KindIntPos, magVal: uint64(i)}
	}

	return &Value{kind: KindIntNeg, magVal: uint64(-(i + 1))}
}

// Uint returns an Int64Positive value for the full uint64 range.
func Uint(u uint64) *Value { return &Value{kind: KindIntPos, magVal: u} }

// NegMagnitude returns an Int64Negative value equal to -(magnitude+1),
// reaching the full [-2^64, -1] range, beyond what a native int64 can
// index.
func NegMagnitude(magnitude uint64) *Value {
	return &Value{kind: KindIntNeg, magVal: magnitude}
}

// Float32 returns a binary32 Float value.
func Float32(f float32) *Value {
	return &Value{kind: KindFloat32, fltVal: float64(f)}
}

// Float64 returns a binary64 Float value.
func Float64(f float64) *Value {
	return &Value{kind: KindFloat64, fltVal: f}
}

// Str returns a UTF-8 String value.
func Str(s string) *Value { return &Value{kind: KindString, str: s} }

// Bytes returns a Bytes value. The slice is retained, not copied.
func Bytes(b []byte) *Value { return &Value{kind: KindBytes, bytes: b} }

// Key returns a Key value (only legal as an object key or enum label).
func Key(s string) *Value { return &Value{kind: KindKey, str: s} }

// Time returns a UTCDateTime value from a time.Time, normalized to UTC.
func Time(t time.Time) *Value {
	t = t.UTC()

	return &Value{kind: KindDateTime, dt: field.DateTime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
		Nanos:  uint32(t.Nanosecond()),
	}}
}

// DateTime returns a UTCDateTime value from explicit components.
func DateTime(dt field.DateTime) *Value {
	return &Value{kind: KindDateTime, dt: dt}
}

// --- accessors ---

// Bool returns the boolean payload; valid only when Kind() == KindBool.
func (v *Value) Bool() bool { return v.boolVal }

// Magnitude returns the raw unsigned magnitude backing KindIntPos/KindIntNeg.
func (v *Value) Magnitude() uint64 { return v.magVal }

// Int64 returns the logical integer value as an int64, with ok=false if the
// value (KindIntPos > math.MaxInt64, or a KindIntNeg magnitude that would
// underflow int64) does not fit.
func (v *Value) Int64() (n int64, ok bool) {
	switch v.kind {
	case KindIntPos:
		if v.magVal > math.MaxInt64 {
			return 0, false
		}

		return int64(v.magVal), true
	case KindIntNeg:
		if v.magVal > math.MaxInt64 {
			return 0, false
		}

		return -(int64(v.magVal) + 1), true
	default:
		return 0, false
	}
}

// Float returns the floating-point payload for KindFloat32/KindFloat64.
func (v *Value) Float() float64 { return v.fltVal }

// IsFloat32 reports whether the value's canonical width is binary32.
func (v *Value) IsFloat32() bool { return v.kind == KindFloat32 }

// Str returns the string payload for KindString/KindKey.
func (v *Value) Str() string { return v.str }

// RawBytes returns the payload for KindBytes.
func (v *Value) RawBytes() []byte { return v.bytes }

// DateTimeValue returns the decomposed components for KindDateTime.
func (v *Value) DateTimeValue() field.DateTime { return v.dt }

// Time returns the KindDateTime payload as a time.Time in UTC.
func (v *Value) Time() time.Time {
	return time.Date(
		int(v.dt.Year), time.Month(v.dt.Month), int(v.dt.Day),
		int(v.dt.Hour), int(v.dt.Minute), int(v.dt.Second), int(v.dt.Nanos), time.UTC,
	)
}

// Elements returns the array payload for KindArray.
func (v *Value) Elements() []*Value { return v.arr }

// AsObject returns the object payload for KindObject.
func (v *Value) AsObject() *Object { return v.obj }

// AsTable returns the table payload for KindTable.
func (v *Value) AsTable() *Table { return v.tbl }
