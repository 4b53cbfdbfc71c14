// Package preprocess cleans a table before views are built from it.
package preprocess

import (
	"nbastats/internal/transformer"
	"nbastats/internal/transformer/builtin"
	"nbastats/pkg/records"
)

// Chain returns the transformers Preprocess applies: first-occurrence
// de-duplication on key, then column-wise forward fill over columns.
func Chain(key string, columns []string) transformer.Chain {
	return transformer.Chain{
		builtin.DeDup{Keys: []string{key}},
		builtin.FillForward{Columns: columns},
	}
}

// Preprocess returns a copy of t with one row per distinct key value (first
// occurrence wins, order kept) and every missing cell filled from the nearest
// preceding row. Missing cells at the top of a column stay missing. t is not
// modified, and running Preprocess on its own output changes nothing.
// A table without the key column is a schema error.
func Preprocess(t *records.Table, key string) (*records.Table, error) {
	if err := t.Require(key); err != nil {
		return nil, err
	}
	return transformer.Table(t, Chain(key, t.Columns)), nil
}
