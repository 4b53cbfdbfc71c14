package builtin

import (
	"strconv"
	"strings"

	"nbastats/internal/schema"
	"nbastats/pkg/records"
)

// Coerce converts string cells to the declared column types: schema.TypeInt
// yields int64, schema.TypeFloat float64. Missing cells stay nil.
type Coerce struct {
	Types map[string]string // column -> schema.Type*
}

// Check converts every typed column of t in place and fails with
// records.ErrParse at the first numeric cell that does not parse to a finite
// number. Columns are
// visited in table order and rows top to bottom.
func (c Coerce) Check(t *records.Table) error {
	for _, col := range t.Columns {
		typ, ok := c.Types[col]
		if !ok {
			continue
		}
		for i, r := range t.Rows {
			v := r[col]
			if v == nil {
				continue
			}
			nv, ok := convert(v, typ)
			if !ok {
				return records.NotNumeric(t.Name, i+1, col, v)
			}
			r[col] = nv
		}
	}
	return nil
}

// convert parses v as typ. Non-string values and string columns are returned
// unchanged.
func convert(v any, typ string) (any, bool) {
	s, isStr := v.(string)
	if !isStr || !schema.Numeric(typ) {
		return v, true
	}
	s = strings.TrimSpace(s)
	if typ == schema.TypeInt {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}
	f, ok := records.Float(s)
	return f, ok
}
