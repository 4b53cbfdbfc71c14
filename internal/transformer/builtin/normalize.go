package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"nbastats/pkg/records"
)

// A real U+00A0 and its common Latin-1 mojibake both become a plain space.
var spaceFixer = strings.NewReplacer("\u00c2\u00a0", " ", "\u00a0", " ")

// Normalize cleans string cells in place: non-breaking spaces become plain
// spaces, surrounding whitespace is trimmed and the text is NFC-composed so
// that "Dončić" matches across exports with different encodings. A cell that
// becomes empty turns into nil.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = norm.NFC.String(strings.TrimSpace(spaceFixer.Replace(s)))
			if s == "" {
				r[k] = nil
			} else {
				r[k] = s
			}
		}
	}
	return in
}
