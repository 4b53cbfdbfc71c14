// Package records defines the in-memory row and table model shared by every
// stage of the pipeline.
//
// A Record is a single row keyed by column name. A Table pairs an ordered
// column list with an ordered slice of records; row order is significant
// (first-occurrence de-duplication and forward-fill both depend on it) and
// is preserved by every operation that is not explicitly a sort.
//
// Cell values are one of:
//
//   - nil      : missing (an empty CSV cell)
//   - string   : categorical text, e.g. a position "PG"
//   - int64    : integral numbers after coercion
//   - float64  : other numbers after coercion
package records

// Record is one row: column name -> cell value.
type Record map[string]any

// Clone returns a shallow copy of r. Cell values are immutable scalars, so a
// shallow copy is enough to let callers rewrite cells without aliasing.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Missing reports whether the cell for col is absent or nil.
func (r Record) Missing(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}
