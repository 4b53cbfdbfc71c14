package records

import (
	"github.com/cockroachdb/errors"
)

// Error taxonomy. Every error produced by the pipeline is classifiable with
// errors.Is against one of these sentinels.
var (
	// ErrSchema marks a required column missing from an input table.
	ErrSchema = errors.New("schema error")

	// ErrMissingColumn is the specific schema error for an absent column. Errors
	// marked with it are also marked with ErrSchema.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyInput marks an operation that needs at least one row receiving none.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyJoin is the empty-input error for a join with no common keys.
	// Errors marked with it are also marked with ErrEmptyInput.
	ErrEmptyJoin = errors.New("empty join")

	// ErrDuplicateKey marks a pivot that saw the same (index, columns) pair twice.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrParse marks malformed CSV or a non-numeric value in a numeric column.
	ErrParse = errors.New("parse error")
)

// MissingColumn builds an error for column col absent from table.
func MissingColumn(table, col string) error {
	err := errors.Newf("table %q: required column %q is missing", table, col)
	return errors.Mark(errors.Mark(err, ErrMissingColumn), ErrSchema)
}

// EmptyJoin builds an error for a join of left and right on key with no matches.
func EmptyJoin(left, right, key string) error {
	err := errors.Newf("join %s x %s on %q: no common keys", left, right, key)
	return errors.Mark(errors.Mark(err, ErrEmptyJoin), ErrEmptyInput)
}

// EmptyInput builds an error for op receiving zero rows from table.
func EmptyInput(op, table string) error {
	return errors.Mark(errors.Newf("%s: table %q has no rows", op, table), ErrEmptyInput)
}

// DuplicateKey builds an error for a repeated composite key in table.
func DuplicateKey(table string, index, column any) error {
	return errors.Mark(
		errors.Newf("table %q: duplicate entry for (%v, %v)", table, index, column),
		ErrDuplicateKey,
	)
}

// NotNumeric builds a parse error for a cell that should be a number. row is
// 1-based over data rows.
func NotNumeric(table string, row int, col string, v any) error {
	var err error
	if v == nil {
		err = errors.Newf("table %q: row %d: column %q: missing value", table, row, col)
	} else {
		err = errors.Newf("table %q: row %d: column %q: %q is not numeric", table, row, col, Format(v))
	}
	return errors.Mark(err, ErrParse)
}

// Malformed wraps a CSV decoding failure as a parse error.
func Malformed(source string, line int, cause error) error {
	return errors.Mark(
		errors.Wrapf(cause, "%s: line %d", source, line),
		ErrParse,
	)
}
