package records

import (
	"slices"
)

// Table is an ordered sequence of records with an ordered column list.
//
// Tables are treated as immutable once handed to a view builder or renderer;
// operations that change cells work on a Clone.
type Table struct {
	// Name identifies the table in errors and logs (e.g. "advanced").
	Name string

	// Columns lists column names in header order.
	Columns []string

	// Rows holds the records in input order.
	Rows []Record
}

// NewTable constructs a Table. The column slice is copied; rows are not.
func NewTable(name string, columns []string, rows []Record) *Table {
	return &Table{Name: name, Columns: slices.Clone(columns), Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Has reports whether col is one of the table's columns.
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Index returns the position of col in Columns, or -1.
func (t *Table) Index(col string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, col)
}

// Require returns a MissingColumn error for the first of cols that the table
// does not have.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return MissingColumn(t.Name, c)
		}
	}
	return nil
}

// WithRows returns a new table with the same name and columns and the given rows.
func (t *Table) WithRows(rows []Record) *Table {
	return NewTable(t.Name, t.Columns, rows)
}

// Clone returns a deep copy: new column slice, new row slice, cloned records.
func (t *Table) Clone() *Table {
	rows := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return NewTable(t.Name, t.Columns, rows)
}

// Column returns the cells of col in row order.
func (t *Table) Column(col string) []any {
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[col]
	}
	return out
}

// Floats returns col as float64 values. A missing or non-numeric cell yields a
// ParseError naming the row (1-based) and column.
func (t *Table) Floats(col string) ([]float64, error) {
	if err := t.Require(col); err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		f, ok := Float(r[col])
		if !ok {
			return nil, NotNumeric(t.Name, i+1, col, r[col])
		}
		out[i] = f
	}
	return out, nil
}

// Strings renders the table as a header row followed by one row of formatted
// cells per record, the shape expected by encoding/csv and gota.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, slices.Clone(t.Columns))
	for _, r := range t.Rows {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = Format(r[c])
		}
		out = append(out, row)
	}
	return out
}
