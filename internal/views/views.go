// Package views derives read-only views from the processed player table and
// the season game log. Every builder returns a fresh table or value; inputs
// are never modified, so builders may run concurrently over one table.
package views

import (
	"sort"

	"github.com/cockroachdb/errors"

	"nbastats/pkg/records"
)

// Partition is the result of FilterByThreshold.
type Partition struct {
	Above     *records.Table
	AtOrBelow *records.Table
}

// FilterByThreshold splits t on column: rows strictly greater than threshold
// go to Above, the rest (boundary included) to AtOrBelow. Row order is kept
// within each side.
func FilterByThreshold(t *records.Table, column string, threshold float64) (Partition, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return Partition{}, errors.Wrap(err, "filter by threshold")
	}
	var above, below []records.Record
	for i, r := range t.Rows {
		if vals[i] > threshold {
			above = append(above, r.Clone())
		} else {
			below = append(below, r.Clone())
		}
	}
	return Partition{Above: t.WithRows(above), AtOrBelow: t.WithRows(below)}, nil
}

// SortDescending returns t ordered by column, largest first. Equal values keep
// their input order.
func SortDescending(t *records.Table, column string) (*records.Table, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return nil, errors.Wrap(err, "sort descending")
	}
	idx := make([]int, len(t.Rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })

	rows := make([]records.Record, len(idx))
	for i, j := range idx {
		rows[i] = t.Rows[j].Clone()
	}
	return t.WithRows(rows), nil
}

// Head returns a copy of the first n rows of t.
func Head(t *records.Table, n int) *records.Table {
	n = max(0, min(n, t.Len()))
	rows := make([]records.Record, n)
	for i := range rows {
		rows[i] = t.Rows[i].Clone()
	}
	return t.WithRows(rows)
}

// Project returns a copy of t restricted to cols, in that order. rename maps
// a selected column to its output name, e.g. "Pos (reg)" -> "Pos".
func Project(t *records.Table, cols []string, rename map[string]string) (*records.Table, error) {
	if err := t.Require(cols...); err != nil {
		return nil, errors.Wrap(err, "project")
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c
		if to, ok := rename[c]; ok {
			out[i] = to
		}
	}
	rows := make([]records.Record, len(t.Rows))
	for i, r := range t.Rows {
		row := make(records.Record, len(cols))
		for j, c := range cols {
			row[out[j]] = r[c]
		}
		rows[i] = row
	}
	return records.NewTable(t.Name, out, rows), nil
}
