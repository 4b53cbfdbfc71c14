package views

import (
	"sort"

	"github.com/cockroachdb/errors"

	"nbastats/pkg/records"
)

// Entry is one observation of a pivoted-then-stacked series.
type Entry struct {
	Index  any
	Column any
	Value  float64
}

// Series is a pivot flattened back to long form: one Entry per (index,
// column) pair that was observed, ordered by index then column.
type Series struct {
	Index   string
	Columns string
	Values  string
	Entries []Entry
}

func (s Series) Len() int { return len(s.Entries) }

// Table renders the series as three columns named after its source columns.
func (s Series) Table() *records.Table {
	rows := make([]records.Record, len(s.Entries))
	for i, e := range s.Entries {
		rows[i] = records.Record{s.Index: e.Index, s.Columns: e.Column, s.Values: e.Value}
	}
	return records.NewTable("pivot", []string{s.Index, s.Columns, s.Values}, rows)
}

type pivotKey struct{ index, column string }

// PivotAndFlatten keys values by (index, columns) and returns the observed
// combinations. Pairs never observed, or observed with a missing value, are
// absent rather than zero. Rows whose index or columns cell is missing are
// skipped. A pair that occurs twice fails the whole call with
// records.ErrDuplicateKey; no partial series is returned.
func PivotAndFlatten(t *records.Table, index, columns, values string) (Series, error) {
	if err := t.Require(index, columns, values); err != nil {
		return Series{}, errors.Wrap(err, "pivot")
	}
	s := Series{Index: index, Columns: columns, Values: values}
	seen := make(map[pivotKey]struct{}, len(t.Rows))
	for i, r := range t.Rows {
		if r.Missing(index) || r.Missing(columns) {
			continue
		}
		k := pivotKey{records.Format(r[index]), records.Format(r[columns])}
		if _, dup := seen[k]; dup {
			return Series{}, records.DuplicateKey(t.Name, r[index], r[columns])
		}
		seen[k] = struct{}{}
		if r.Missing(values) {
			continue
		}
		v, ok := records.Float(r[values])
		if !ok {
			return Series{}, records.NotNumeric(t.Name, i+1, values, r[values])
		}
		s.Entries = append(s.Entries, Entry{Index: r[index], Column: r[columns], Value: v})
	}
	sort.SliceStable(s.Entries, func(a, b int) bool {
		ea, eb := s.Entries[a], s.Entries[b]
		if c := records.Compare(ea.Index, eb.Index); c != 0 {
			return c < 0
		}
		return records.Compare(ea.Column, eb.Column) < 0
	})
	return s, nil
}
