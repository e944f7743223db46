package serde

import (
	"fmt"
	"reflect"
	"time"

	"github.com/rionfmt/rion/errs"
)

func decodeValue(dec *Decoder, rv reflect.Value) error {
	if rv.CanAddr() && rv.Addr().CanInterface() {
		if setter, ok := rv.Addr().Interface().(VariantSetter); ok {
			return dec.ReadVariant(func(name string, payload *Decoder) error {
				var raw []byte
				if payload != nil {
					var err error
					raw, err = payload.PullRaw()
					if err != nil {
						return err
					}
				}

				return setter.SetVariant(name, raw)
			})
		}
	}

	switch rv.Kind() {
	case reflect.Ptr:
		if dec.IsNone() {
			rv.Set(reflect.Zero(rv.Type()))

			return dec.ReadNone()
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}

		return decodeValue(dec, rv.Elem())

	case reflect.Bool:
		b, err := dec.ReadBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)

		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := dec.ReadInt64()
		if err != nil {
			return err
		}
		if rv.OverflowInt(v) {
			return fmt.Errorf("%w: %d overflows %s", errs.ErrIntegerOutOfRange, v, rv.Kind())
		}
		rv.SetInt(v)

		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := dec.ReadUint64()
		if err != nil {
			return err
		}
		if rv.OverflowUint(v) {
			return fmt.Errorf("%w: %d overflows %s", errs.ErrIntegerOutOfRange, v, rv.Kind())
		}
		rv.SetUint(v)

		return nil

	case reflect.Float32, reflect.Float64:
		v, _, err := dec.ReadFloat()
		if err != nil {
			return err
		}
		rv.SetFloat(v)

		return nil

	case reflect.String:
		s, err := dec.ReadString()
		if err != nil {
			return err
		}
		rv.SetString(s)

		return nil

	case reflect.Struct:
		if rv.Type() == timeType {
			dt, err := dec.ReadDateTime()
			if err != nil {
				return err
			}
			rv.Set(reflect.ValueOf(time.Date(
				int(dt.Year), time.Month(dt.Month), int(dt.Day),
				int(dt.Hour), int(dt.Minute), int(dt.Second), int(dt.Nanos),
				time.UTC,
			)))

			return nil
		}

		return decodeStruct(dec, rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, err := dec.ReadBytes()
			if err != nil {
				return err
			}
			rv.SetBytes(append([]byte(nil), b...))

			return nil
		}

		return decodeSlice(dec, rv)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, err := dec.ReadBytes()
			if err != nil {
				return err
			}
			if len(b) != rv.Len() {
				return fmt.Errorf("%w: byte array length %d, got %d", errs.ErrWrongType, rv.Len(), len(b))
			}
			reflect.Copy(rv, reflect.ValueOf(b))

			return nil
		}

		return decodeArray(dec, rv)

	case reflect.Map:
		return decodeMap(dec, rv)

	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedType, rv.Kind())
	}
}

func decodeSlice(dec *Decoder, rv reflect.Value) error {
	elements, err := dec.BeginSeq()
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(rv.Type(), 0, 0)
	for elements.Remaining() > 0 {
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(elements, elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	rv.Set(out)

	return dec.EndSeq(elements)
}

func decodeArray(dec *Decoder, rv reflect.Value) error {
	elements, err := dec.BeginSeq()
	if err != nil {
		return err
	}

	i := 0
	for elements.Remaining() > 0 {
		if i < rv.Len() {
			if err := decodeValue(elements, rv.Index(i)); err != nil {
				return err
			}
		} else if err := elements.Skip(); err != nil {
			return err
		}
		i++
	}

	return dec.EndSeq(elements)
}

func decodeMap(dec *Decoder, rv reflect.Value) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key must be string, got %s", errs.ErrInvalidKeyType, rv.Type().Key())
	}

	entries, err := dec.BeginMap()
	if err != nil {
		return err
	}

	out := reflect.MakeMap(rv.Type())
	for entries.Remaining() > 0 {
		key, err := entries.ReadKey()
		if err != nil {
			return err
		}
		val := reflect.New(rv.Type().Elem()).Elem()
		if err := decodeValue(entries, val); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), val)
	}
	rv.Set(out)

	return dec.EndMap(entries)
}

func decodeStruct(dec *Decoder, rv reflect.Value) error {
	byName := make(map[string]reflect.Value, rv.NumField())
	for _, e := range structEntries(rv) {
		byName[e.name] = e.val
	}

	entries, err := dec.BeginMap()
	if err != nil {
		return err
	}

	for entries.Remaining() > 0 {
		key, err := entries.ReadKey()
		if err != nil {
			return err
		}

		field, known := byName[key]
		if !known {
			if err := entries.Skip(); err != nil {
				return err
			}

			continue
		}

		if err := decodeValue(entries, field); err != nil {
			return err
		}
	}

	return dec.EndMap(entries)
}
