package builtin

import (
	"strconv"
	"strings"

	"nbastats/internal/schema"
	"nbastats/pkg/records"
)

// InferTypes picks a type for every column of t from its non-missing cells:
// schema.TypeInt when all parse as integers, schema.TypeFloat when all parse
// as numbers, schema.TypeString otherwise. Columns with no values are left
// out so they stay untouched.
func InferTypes(t *records.Table) map[string]string {
	out := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		if typ := inferColumn(t.Rows, col); typ != "" {
			out[col] = typ
		}
	}
	return out
}

func inferColumn(rows []records.Record, col string) string {
	seen, isInt := false, true
	for _, r := range rows {
		v := r[col]
		if v == nil {
			continue
		}
		seen = true
		switch t := v.(type) {
		case int64, int:
		case float64, float32:
			isInt = false
		case string:
			s := strings.TrimSpace(t)
			if isInt {
				if _, err := strconv.ParseInt(s, 10, 64); err == nil {
					continue
				}
				isInt = false
			}
			if _, ok := records.Float(s); !ok {
				return schema.TypeString
			}
		default:
			return schema.TypeString
		}
	}
	switch {
	case !seen:
		return ""
	case isInt:
		return schema.TypeInt
	}
	return schema.TypeFloat
}
