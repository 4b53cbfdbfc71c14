// Package merge joins the advanced and regular per-player tables into one
// row per player.
package merge

import (
	"github.com/cockroachdb/errors"

	"nbastats/internal/transformer/builtin"
	"nbastats/pkg/records"
)

// Options configures Merge. Zero fields take the values of DefaultOptions.
type Options struct {
	// Key is the join column.
	Key string

	// Drop lists columns that both inputs must carry and that are removed
	// from the result.
	Drop []string

	// LeftTag and RightTag label the two copies of a column present in both
	// inputs, e.g. "Pos (adv)" and "Pos (reg)".
	LeftTag  string
	RightTag string
}

// DefaultOptions joins on Player and drops Player-additional.
func DefaultOptions() Options {
	return Options{
		Key:      "Player",
		Drop:     []string{"Player-additional"},
		LeftTag:  "adv",
		RightTag: "reg",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Key == "" {
		o.Key = d.Key
	}
	if o.Drop == nil {
		o.Drop = d.Drop
	}
	if o.LeftTag == "" {
		o.LeftTag = d.LeftTag
	}
	if o.RightTag == "" {
		o.RightTag = d.RightTag
	}
	return o
}

// CollisionLabel names the copy of col that came from the input tagged tag.
func CollisionLabel(col, tag string) string {
	return col + " (" + tag + ")"
}

// Merge inner-joins left and right on opt.Key.
//
// Rows come out in left-row order; a left row matching several right rows
// yields one row per match in right-row order, and the first of those wins
// the final de-duplication on the key. Columns are the left columns followed
// by the right columns other than the key. A column other than the key that
// both sides carry is kept twice under CollisionLabel names. Rows whose key
// is missing never match. Neither input is modified.
//
// Merge fails with records.ErrMissingColumn when either side lacks the key
// or a drop column, and with records.ErrEmptyJoin when no key is shared.
func Merge(left, right *records.Table, opt Options) (*records.Table, error) {
	opt = opt.withDefaults()
	required := append([]string{opt.Key}, opt.Drop...)
	if err := left.Require(required...); err != nil {
		return nil, errors.Wrap(err, "merge")
	}
	if err := right.Require(required...); err != nil {
		return nil, errors.Wrap(err, "merge")
	}

	cols, leftName, rightName, err := layout(left, right, opt)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]records.Record, len(right.Rows))
	for _, r := range right.Rows {
		if r.Missing(opt.Key) {
			continue
		}
		k := records.Format(r[opt.Key])
		byKey[k] = append(byKey[k], r)
	}

	var rows []records.Record
	for _, l := range left.Rows {
		if l.Missing(opt.Key) {
			continue
		}
		for _, r := range byKey[records.Format(l[opt.Key])] {
			row := make(records.Record, len(cols))
			for c, name := range leftName {
				row[name] = l[c]
			}
			for c, name := range rightName {
				row[name] = r[c]
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, records.EmptyJoin(left.Name, right.Name, opt.Key)
	}

	rows = builtin.DeDup{Keys: []string{opt.Key}}.Apply(rows)
	return records.NewTable("merged", cols, rows), nil
}

// layout computes the output columns and, per side, the mapping from input
// column to output column.
func layout(left, right *records.Table, opt Options) ([]string, map[string]string, map[string]string, error) {
	drop := make(map[string]bool, len(opt.Drop))
	for _, c := range opt.Drop {
		drop[c] = true
	}

	var cols []string
	used := make(map[string]bool)
	add := func(name string) error {
		if used[name] {
			return errors.Mark(
				errors.Newf("merge %s x %s: output column %q is ambiguous", left.Name, right.Name, name),
				records.ErrSchema,
			)
		}
		used[name] = true
		cols = append(cols, name)
		return nil
	}

	leftName := make(map[string]string, len(left.Columns))
	for _, c := range left.Columns {
		if drop[c] {
			continue
		}
		name := c
		if c != opt.Key && right.Has(c) {
			name = CollisionLabel(c, opt.LeftTag)
		}
		if err := add(name); err != nil {
			return nil, nil, nil, err
		}
		leftName[c] = name
	}

	rightName := make(map[string]string, len(right.Columns))
	for _, c := range right.Columns {
		if c == opt.Key || drop[c] {
			continue
		}
		name := c
		if left.Has(c) {
			name = CollisionLabel(c, opt.RightTag)
		}
		if err := add(name); err != nil {
			return nil, nil, nil, err
		}
		rightName[c] = name
	}
	return cols, leftName, rightName, nil
}
