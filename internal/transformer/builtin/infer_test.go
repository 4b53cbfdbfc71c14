package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nbastats/internal/schema"
	"nbastats/pkg/records"
)

func TestInferTypes(t *testing.T) {
	t.Parallel()

	tbl := records.NewTable("adv",
		[]string{"Player", "Age", "TS%", "Mixed", "Empty", "Typed", "Attend.", "3P%"},
		[]records.Record{
			{"Player": "A", "Age": "25", "TS%": ".604", "Mixed": "1", "Empty": nil, "Typed": 2.5, "Attend.": "19,842", "3P%": ".381"},
			{"Player": "B", "Age": nil, "TS%": "0.55", "Mixed": "x", "Empty": nil, "Typed": int64(3), "Attend.": nil, "3P%": "NaN"},
			{"Player": "C", "Age": " 31", "TS%": "1", "Mixed": "2", "Empty": nil, "Typed": nil, "Attend.": "18,000", "3P%": ".402"},
		})

	assert.Equal(t, map[string]string{
		"Player":  schema.TypeString,
		"Age":     schema.TypeInt,
		"TS%":     schema.TypeFloat,
		"Mixed":   schema.TypeString,
		"Typed":   schema.TypeFloat,
		"Attend.": schema.TypeString,
		"3P%":     schema.TypeString,
	}, InferTypes(tbl))
}
