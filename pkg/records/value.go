package records

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float converts a cell to float64. Strings are parsed; nil, unparsable and
// non-finite values ("NaN", "Inf") report false.
func Float(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case float32:
		f = float64(t)
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(t), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Format renders a cell for CSV or console output. nil becomes "".
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// Compare orders two cells: numbers numerically, then everything else by its
// formatted text. Numbers sort before text.
func Compare(a, b any) int {
	fa, aNum := Float(a)
	fb, bNum := Float(b)
	switch {
	case aNum && bNum:
		return cmp.Compare(fa, fb)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(Format(a), Format(b))
}
