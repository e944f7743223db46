package value

import "math"

// Equal reports whether a and b are the same logical RION value. Object
// comparison ignores entry order; any two NaN floats compare equal to each
// other, whatever their bit patterns (unlike IEEE-754 comparison), so
// round-trip tests can assert on them.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindIntPos, KindIntNeg:
		return a.magVal == b.magVal
	case KindFloat32, KindFloat64:
		if math.IsNaN(a.fltVal) && math.IsNaN(b.fltVal) {
			return true
		}

		return a.fltVal == b.fltVal && math.Signbit(a.fltVal) == math.Signbit(b.fltVal)
	case KindString, KindKey:
		return a.str == b.str
	case KindBytes:
		return bytesEqual(a.bytes, b.bytes)
	case KindDateTime:
		return a.dt == b.dt
	case KindArray:
		return arrayEqual(a.arr, b.arr)
	case KindObject:
		return objectEqual(a.obj, b.obj)
	case KindTable:
		return tableEqual(a.tbl, b.tbl)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func arrayEqual(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

func objectEqual(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, e := range a.Entries() {
		other, ok := b.Get(e.Key)
		if !ok || !Equal(e.Val, other) {
			return false
		}
	}

	return true
}

func tableEqual(a, b *Table) bool {
	if a.NumCols() != b.NumCols() || a.NumRows() != b.NumRows() {
		return false
	}
	for i, c := range a.columns {
		if c != b.columns[i] {
			return false
		}
	}
	for r := range a.rows {
		for c := range a.rows[r] {
			if !Equal(a.rows[r][c], b.rows[r][c]) {
				return false
			}
		}
	}

	return true
}
