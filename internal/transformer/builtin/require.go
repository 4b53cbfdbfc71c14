package builtin

import "nbastats/pkg/records"

// Require removes any record missing a value for one of Fields. It filters
// in place by reslicing the input.
type Require struct {
	Fields []string
}

func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if rec.Missing(f) || rec[f] == "" {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
