package builtin

import "nbastats/pkg/records"

// FillForward replaces each missing cell with the nearest preceding
// non-missing value of the same column, walking rows top to bottom. A leading
// run of missing cells stays missing. Rows are rewritten in place.
type FillForward struct {
	// Columns limits filling to these columns; empty means every column that
	// appears in any row.
	Columns []string
}

func (f FillForward) Apply(in []records.Record) []records.Record {
	cols := f.Columns
	if len(cols) == 0 {
		cols = columnsOf(in)
	}
	for _, col := range cols {
		var last any
		for _, r := range in {
			if v := r[col]; v != nil {
				last = v
			} else if last != nil {
				r[col] = last
			}
		}
	}
	return in
}

// columnsOf returns the union of row keys in first-seen order.
func columnsOf(in []records.Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range in {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	return cols
}
