package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/internal/config"
	"nbastats/internal/logging"
)

func TestNew_CSVFromOptions(t *testing.T) {
	t.Parallel()

	p, err := New(config.Parser{Kind: "csv", Options: config.Options{"comma": "|"}}, logging.NewNop())
	require.NoError(t, err)

	tbl, _, err := p.Parse("t", strings.NewReader("Player|PTS\n Jokić |26.4\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jokić", tbl.Rows[0]["Player"], "trim_space defaults to true")
}

func TestNew_NullValuesOption(t *testing.T) {
	t.Parallel()

	p, err := New(config.Parser{Kind: "csv", Options: config.Options{"null_values": []any{"NaN"}}}, logging.NewNop())
	require.NoError(t, err)

	tbl, _, err := p.Parse("t", strings.NewReader("Player,PER\nA,NaN\n"))
	require.NoError(t, err)
	assert.Nil(t, tbl.Rows[0]["PER"])
}

func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(config.Parser{Kind: "xml"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
