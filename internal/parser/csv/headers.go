package csv

import (
	"fmt"
	"strings"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Headers turns a raw header row into unique column names. The first cell
// loses its BOM, every cell is trimmed, an empty name becomes "Unnamed: <i>",
// and a repeated name X is renamed X.1, X.2, ... in order of appearance.
// Season exports repeat PTS for the visitor score, so the second PTS column
// is addressed as "PTS.1".
func Headers(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	next := make(map[string]int)
	for i, cell := range raw {
		c := strings.TrimSpace(cell)
		if i == 0 {
			c = strings.TrimSpace(strings.TrimPrefix(c, utf8BOM))
		}
		if c == "" {
			c = fmt.Sprintf("Unnamed: %d", i)
		}
		name := c
		for used[name] {
			next[c]++
			name = fmt.Sprintf("%s.%d", c, next[c])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
