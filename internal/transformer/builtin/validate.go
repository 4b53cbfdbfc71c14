package builtin

import (
	"nbastats/internal/schema"
	"nbastats/pkg/records"
)

// Validate checks a table header against a schema.Contract.
type Validate struct {
	Contract schema.Contract
}

// Check fails with records.ErrMissingColumn for the first required column of
// the contract that t does not have.
func (v Validate) Check(t *records.Table) error {
	return t.Require(v.Contract.RequiredColumns()...)
}
