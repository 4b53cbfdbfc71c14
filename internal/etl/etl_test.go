package etl

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nbastats/internal/config"
	"nbastats/internal/logging"
	"nbastats/internal/metrics"
	_ "nbastats/internal/storage/all"
	"nbastats/pkg/records"
)

const (
	advancedCSV = `Player,Player-additional,Pos,PER,TS%
A,a1,PG,20,0.55
B,b1,C,15.5,0.6
C,c1,SF,,0.5
`
	regularCSV = `Player,Player-additional,Pos,PTS
A,a1,PG,25
B,b1,C,18
B,b1,C,30
C,c1,SF,22
D,d1,PF,10
`
	seasonCSV = `Date,Home/Neutral,PTS,Visitor/Neutral,PTS
Tue Oct 24 2023,Denver Nuggets,119,Los Angeles Lakers,107
Tue Oct 24 2023,Golden State Warriors,104,Phoenix Suns,108
Wed Oct 25 2023,New York Knicks,104,Boston Celtics,108
Wed Oct 25 2023,Orlando Magic,100,Houston Rockets,100
Thu Oct 26 2023,Denver Nuggets,101,Boston Celtics,110
`
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

// setup writes the three inputs and returns a config reading them, with
// output and charts under a fresh directory.
func setup(t *testing.T, adv, reg, season string) config.Run {
	t.Helper()
	data := t.TempDir()
	writeFile(t, data, "advanced_stats.csv", adv)
	writeFile(t, data, "player_stats.csv", reg)
	writeFile(t, data, "season_stats.csv", season)

	cfg := config.Default().WithDataDir(data).WithOutDir(t.TempDir())
	cfg.Inputs.Teams.Names = []string{"Denver Nuggets", "Boston Celtics"}
	return cfg
}

// stepBackend counts step outcomes.
type stepBackend struct {
	mu    sync.Mutex
	steps map[string]string
	rows  map[string]float64
}

func (b *stepBackend) IncCounter(name string, delta float64, l metrics.Labels) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch name {
	case metrics.StepTotal:
		b.steps[l["step"]] = l["status"]
	case metrics.RowsTotal:
		b.rows[l["kind"]] += delta
	}
}
func (b *stepBackend) ObserveHistogram(string, float64, metrics.Labels) {}
func (b *stepBackend) Flush() error                                   { return nil }

func TestRun_EndToEnd(t *testing.T) {
	fb := &stepBackend{steps: map[string]string{}, rows: map[string]float64{}}
	prev := metrics.SetBackend(fb)
	t.Cleanup(func() { metrics.SetBackend(prev) })

	core, logs := observer.New(zap.InfoLevel)
	var out bytes.Buffer
	cfg := setup(t, advancedCSV, regularCSV, seasonCSV)

	res, err := Run(context.Background(), cfg, Deps{Log: logging.FromZap(zap.New(core)), Out: &out})
	require.NoError(t, err)

	// merge: inner join, tagged collisions, dedup keep-first
	assert.Equal(t, []string{"Player", "Pos (adv)", "PER", "TS%", "Pos (reg)", "PTS"}, res.Merged.Columns)
	require.Equal(t, 3, res.Merged.Len())
	assert.Equal(t, 18.0, res.Merged.Rows[1]["PTS"])
	assert.Nil(t, res.Merged.Rows[2]["PER"])

	// preprocess fills forward
	assert.Equal(t, 15.5, res.Processed.Rows[2]["PER"])
	assert.Nil(t, res.Merged.Rows[2]["PER"], "merged table is not modified")

	// views
	assert.Equal(t, []any{"A", "C"}, res.Scorers.Above.Column("Player"))
	assert.Equal(t, []any{"B"}, res.Scorers.AtOrBelow.Column("Player"))
	assert.Equal(t, []any{"A", "C", "B"}, res.Sorted.Column("Player"))
	require.NotNil(t, res.Pivot)
	assert.Equal(t, 3, res.Pivot.Len())
	require.NotNil(t, res.WinShare)
	assert.InDelta(t, 0.4, res.WinShare.Home, 1e-9)
	assert.InDelta(t, 0.6, res.WinShare.Away, 1e-9)
	assert.Equal(t, 5, res.WinShare.Games)

	// outputs
	assert.Equal(t, []string{"merged", "processed", "high_scorers", "low_scorers", "sorted", "pivot", "win_pct"}, res.Written)
	for _, name := range res.Written {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, name+".csv"))
	}

	// charts
	assert.Len(t, res.Charts, 6)
	for name, path := range res.Charts {
		assert.FileExists(t, path, name)
		assert.Equal(t, cfg.Charts.OutDir, filepath.Dir(path))
	}

	// console
	printed := out.String()
	for _, s := range []string{"== Merged stats ==", "== PTS > 20 ==", "== Pivot PTS ==", "== Home vs away wins ==", "== Row counts =="} {
		assert.Contains(t, printed, s)
	}

	// instrumentation
	for _, step := range []string{"load", "merge", "preprocess", "view_sort", "view_win_pct", "write", "chart_points_stem"} {
		assert.Equal(t, "success", fb.steps[step], step)
	}
	assert.Equal(t, 3.0, fb.rows["merged"])
	assert.Equal(t, 3.0+5+5, fb.rows["loaded"])

	finished := logs.FilterMessage("run finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, res.RunID, finished[0].ContextMap()["run_id"])
}

func TestRun_MinimalMerge(t *testing.T) {
	t.Parallel()

	cfg := setup(t,
		"Player,Player-additional,PER\nA,a1,20\n",
		"Player,Player-additional,PTS\nA,a1,25\n",
		seasonCSV,
	)
	cfg.Views.Pivot.Columns = "PER"
	cfg.Views.Parallel = false
	cfg.Charts.Enabled = false
	cfg.Output.Kind = "none"

	res, err := Run(context.Background(), cfg, Deps{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Player", "PER", "PTS"}, res.Merged.Columns)
	require.Equal(t, 1, res.Merged.Len())
	assert.Equal(t, records.Record{"Player": "A", "PER": 20.0, "PTS": 25.0}, res.Merged.Rows[0])
	assert.Empty(t, res.Charts)
}

func TestRun_FailsFast(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		adv, reg string
		season   string
		want     error
	}{
		{
			name:   "missing merge column",
			adv:    advancedCSV,
			reg:    "Player,PTS\nA,25\n",
			season: seasonCSV,
			want:   records.ErrSchema,
		},
		{
			name:   "no common players",
			adv:    advancedCSV,
			reg:    "Player,Player-additional,Pos,PTS\nZ,z1,C,1\n",
			season: seasonCSV,
			want:   records.ErrEmptyJoin,
		},
		{
			name:   "non-numeric score",
			adv:    advancedCSV,
			reg:    regularCSV,
			season: "Date,Home/Neutral,PTS,Visitor/Neutral,PTS\nTue Oct 24 2023,X,abc,Y,1\n",
			want:   records.ErrParse,
		},
		{
			name:   "ragged csv",
			adv:    "Player,Player-additional,PER\nA,a1\n",
			reg:    regularCSV,
			season: seasonCSV,
			want:   records.ErrParse,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := setup(t, tc.adv, tc.reg, tc.season)

			res, err := Run(context.Background(), cfg, Deps{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Nil(t, res.Processed)
			assert.Empty(t, res.Written)
			assert.NoDirExists(t, cfg.Charts.OutDir)
		})
	}
}

func TestRun_FailedViewKeepsOthers(t *testing.T) {
	t.Parallel()

	cfg := setup(t, advancedCSV, regularCSV, seasonCSV)
	cfg.Views.Sort.Column = "Nope"

	res, err := Run(context.Background(), cfg, Deps{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, records.ErrMissingColumn))

	assert.Nil(t, res.Sorted)
	assert.NotNil(t, res.Scorers.Above)
	assert.NotNil(t, res.WinShare)
	assert.NotContains(t, res.Written, "sorted")
	assert.Contains(t, res.Written, "win_pct")
	assert.NotContains(t, res.Charts, "points_stem")
	assert.Contains(t, res.Charts, "home_away")
}

func TestRun_TeamListFile(t *testing.T) {
	t.Parallel()

	cfg := setup(t, advancedCSV, regularCSV, seasonCSV)
	teams := filepath.Join(t.TempDir(), "teams.txt")
	writeFile(t, filepath.Dir(teams), "teams.txt", "# teams\nBoston Celtics\n\n")
	cfg.Inputs.Teams = config.TeamList{Path: teams}
	cfg.Output.Kind = "none"

	res, err := Run(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston Celtics"}, res.Teams)
	assert.Contains(t, res.Charts, "team_performance")
}

func TestRun_NoTeamsSkipsTeamChart(t *testing.T) {
	t.Parallel()

	cfg := setup(t, advancedCSV, regularCSV, seasonCSV)
	cfg.Inputs.Teams = config.TeamList{}

	res, err := Run(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.NotContains(t, res.Charts, "team_performance")
	assert.Len(t, res.Charts, 5)
}

func TestRun_UnknownOutputKind(t *testing.T) {
	t.Parallel()

	cfg := setup(t, advancedCSV, regularCSV, seasonCSV)
	cfg.Output.Kind = "parquet"

	_, err := Run(context.Background(), cfg, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage.kind=parquet")
	assert.Contains(t, err.Error(), "csv", "the message lists registered kinds")
}

func TestRun_HTTPInputs(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"/advanced.csv": advancedCSV,
		"/regular.csv":  regularCSV,
		"/season.csv":   seasonCSV,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	cfg := setup(t, "", "", "")
	cfg.Inputs.Advanced = config.Source{Kind: "http", URL: srv.URL + "/advanced.csv"}
	cfg.Inputs.Regular = config.Source{Kind: "http", URL: srv.URL + "/regular.csv"}
	cfg.Inputs.Season = config.Source{Kind: "http", URL: srv.URL + "/season.csv"}
	cfg.Charts.Enabled = false
	cfg.Output.Kind = "none"

	res, err := Run(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Merged.Len())

	cfg.Inputs.Season.URL = srv.URL + "/nope.csv"
	_, err = Run(context.Background(), cfg, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
