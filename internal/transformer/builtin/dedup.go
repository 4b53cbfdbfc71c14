// Package builtin contains the reusable transformers of the pipeline.
//
// DeDup collapses duplicate records by a configured key and keeps the
// earliest occurrence. Winners stay at their original positions, so the
// output is always a subsequence of the input.
package builtin

import (
	"strconv"

	"github.com/zeebo/xxh3"

	"nbastats/pkg/records"
)

// DeDup implements in-memory de-duplication.
type DeDup struct {
	// Keys are the field names that form the key, e.g. ["Player"].
	Keys []string
}

// Apply returns a new slice holding one record per distinct key. Missing
// cells (nil) form a key value of their own, so rows without a player name
// collapse together like any other name. Records that lack a key field
// entirely pass through unchanged.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[xxh3.Uint128]struct{}, len(in))
	h := xxh3.New()

	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		key, ok := d.keyOf(h, r)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// keyOf hashes the key fields of r. Each value is prefixed by a text/number
// tag and its length so that ("ab","c") and ("a","bc") hash differently.
func (d DeDup) keyOf(h *xxh3.Hasher, r records.Record) (xxh3.Uint128, bool) {
	h.Reset()
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok {
			return xxh3.Uint128{}, false
		}
		if v == nil {
			_, _ = h.WriteString("\x00")
			continue
		}
		tag := "\x01"
		if _, isStr := v.(string); !isStr {
			tag = "\x02"
		}
		s := records.Format(v)
		_, _ = h.WriteString(tag)
		_, _ = h.WriteString(strconv.Itoa(len(s)))
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(s)
	}
	return h.Sum128(), true
}

