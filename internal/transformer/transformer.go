// Package transformer defines row-level transforms and their composition.
package transformer

import "nbastats/pkg/records"

// Transformer rewrites a batch of rows. Implementations may mutate the rows
// they receive; use Table to run one against a private copy.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Checker inspects a whole table and reports the first problem found.
type Checker interface {
	Check(*records.Table) error
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Table runs tr over a deep copy of t and returns the result under t's name
// and columns. t itself is left untouched.
func Table(t *records.Table, tr Transformer) *records.Table {
	c := t.Clone()
	return c.WithRows(tr.Apply(c.Rows))
}
