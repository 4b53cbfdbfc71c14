package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nbastats/internal/schema"
	"nbastats/internal/transformer"
	"nbastats/pkg/records"
)

var _ transformer.Checker = Validate{}
var _ transformer.Checker = Coerce{}

func TestValidate_Check(t *testing.T) {
	t.Parallel()

	ok := records.NewTable("advanced", []string{"Player", "PER", "Player-additional"}, nil)
	assert.NoError(t, Validate{Contract: schema.Advanced()}.Check(ok))

	bad := records.NewTable("advanced", []string{"Player", "PER"}, nil)
	err := Validate{Contract: schema.Advanced()}.Check(bad)
	assert.ErrorIs(t, err, records.ErrMissingColumn)
	assert.ErrorIs(t, err, records.ErrSchema)
	assert.Contains(t, err.Error(), "Player-additional")
}

func TestRequire(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{"Pos": "PG"},
		{"Pos": nil},
		{"Pos": ""},
		{},
		{"Pos": "C"},
	}
	got := Require{Fields: []string{"Pos"}}.Apply(in)
	assert.Equal(t, []records.Record{{"Pos": "PG"}, {"Pos": "C"}}, got)
}
