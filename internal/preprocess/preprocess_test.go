package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/pkg/records"
)

func table() *records.Table {
	return records.NewTable("merged", []string{"Player", "PTS", "Pos"}, []records.Record{
		{"Player": "A", "PTS": nil, "Pos": "PG"},
		{"Player": "B", "PTS": 5.0, "Pos": nil},
		{"Player": "A", "PTS": 9.0, "Pos": "C"},
		{"Player": "C", "PTS": nil, "Pos": nil},
		{"Player": "D", "PTS": nil, "Pos": "SF"},
		{"Player": "E", "PTS": 7.0, "Pos": nil},
	})
}

func TestPreprocess(t *testing.T) {
	t.Parallel()

	got, err := Preprocess(table(), "Player")
	require.NoError(t, err)

	require.Equal(t, 5, got.Len())
	var players, pts, pos []any
	for _, r := range got.Rows {
		players = append(players, r["Player"])
		pts = append(pts, r["PTS"])
		pos = append(pos, r["Pos"])
	}
	assert.Equal(t, []any{"A", "B", "C", "D", "E"}, players)
	assert.Equal(t, []any{nil, 5.0, 5.0, 5.0, 7.0}, pts)
	assert.Equal(t, []any{"PG", "PG", "PG", "SF", "SF"}, pos)
	assert.Equal(t, []string{"Player", "PTS", "Pos"}, got.Columns)
}

func TestPreprocess_IdempotentAndPure(t *testing.T) {
	t.Parallel()

	in := table()
	before := in.Clone()

	once, err := Preprocess(in, "Player")
	require.NoError(t, err)
	twice, err := Preprocess(once, "Player")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, before, in)
}

func TestPreprocess_Empty(t *testing.T) {
	t.Parallel()

	got, err := Preprocess(records.NewTable("x", []string{"Player"}, nil), "Player")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestPreprocess_MissingKeyColumn(t *testing.T) {
	t.Parallel()

	in := records.NewTable("merged", []string{"Name", "PTS"}, []records.Record{
		{"Name": "A", "PTS": 1.0},
		{"Name": "A", "PTS": 2.0},
	})
	got, err := Preprocess(in, "Player")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, records.ErrMissingColumn)
	assert.ErrorIs(t, err, records.ErrSchema)
}
