package value

import "fmt"

// Table is a row-set of m rows by n named columns. It is kept as a
// first-class type distinct from an Array-of-Objects encoding; see
// DESIGN.md for the tradeoff.
type Table struct {
	columns []string
	rows    [][]*Value
}

// NewTable returns an empty Table with the given column names.
func NewTable(columns []string) *Value {
	cols := append([]string(nil), columns...)

	return &Value{kind: KindTable, tbl: &Table{columns: cols}}
}

// AddRow appends one row. It panics if len(values) != len(Columns()),
// enforcing the m*n invariant at construction time.
func (v *Value) AddRow(values ...*Value) *Value {
	if v.kind != KindTable {
		panic("value: AddRow on non-table Value")
	}
	if len(values) != len(v.tbl.columns) {
		panic(fmt.Sprintf("value: AddRow: got %d values, table has %d columns", len(values), len(v.tbl.columns)))
	}
	v.tbl.rows = append(v.tbl.rows, values)

	return v
}

// Columns returns the table's column names.
func (t *Table) Columns() []string { return t.columns }

// Rows returns the table's rows, each of length len(Columns()).
func (t *Table) Rows() [][]*Value { return t.rows }

// NumRows returns m, the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns n, the column count.
func (t *Table) NumCols() int { return len(t.columns) }
