// Package chart renders the season charts to image files with go-chart.
// Layout is fixed; each renderer writes one file under Renderer.OutDir and
// returns its path.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"nbastats/internal/views"
	"nbastats/pkg/records"
)

// Renderer writes charts as PNG (default) or SVG files.
type Renderer struct {
	OutDir string
	Format string

	// TopN is the number of players per position in TopByPosition.
	TopN int
	// StemLimit caps the number of stems in PointsStem.
	StemLimit int
	// DateLayout parses the season log Date column.
	DateLayout string
}

const (
	width  = 1024
	height = 576
)

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func (r Renderer) provider() (gochart.RendererProvider, string) {
	if r.Format == "svg" {
		return gochart.SVG, "svg"
	}
	return gochart.PNG, "png"
}

// write renders c into OutDir/name.<ext>.
func (r Renderer) write(name string, c renderable) (string, error) {
	rp, ext := r.provider()
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "chart %s", name)
	}
	path := filepath.Join(r.OutDir, name+"."+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "chart %s", name)
	}
	if err := c.Render(rp, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", errors.Wrapf(err, "chart %s: render", name)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "chart %s", name)
	}
	return path, nil
}

func background() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// dots draws points only, with no connecting line.
func dots(col drawing.Color, size float64) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    size,
		DotColor:    col,
	}
}

func line(col drawing.Color, w float64) gochart.Style {
	return gochart.Style{StrokeColor: col, StrokeWidth: w}
}

// TopByPosition draws a bar per player for the TopN highest scorers of each
// position. t must have Player, Pos and PTS columns.
func (r Renderer) TopByPosition(t *records.Table) (string, error) {
	top, err := views.TopNPerGroup(t, "Pos", "PTS", max(r.TopN, 1))
	if err != nil {
		return "", errors.Wrap(err, "chart top_by_position")
	}
	if err := top.Require("Player"); err != nil {
		return "", errors.Wrap(err, "chart top_by_position")
	}
	bars := make([]gochart.Value, 0, top.Len())
	positions := map[string]int{}
	peak := 1.0
	for _, row := range top.Rows {
		pos := records.Format(row["Pos"])
		if _, ok := positions[pos]; !ok {
			positions[pos] = len(positions)
		}
		pts, _ := records.Float(row["PTS"])
		peak = max(peak, pts)
		bars = append(bars, gochart.Value{
			Label: fmt.Sprintf("%s (%s)", records.Format(row["Player"]), pos),
			Value: pts,
			Style: gochart.Style{
				FillColor:   gochart.GetDefaultColor(positions[pos]),
				StrokeColor: gochart.GetDefaultColor(positions[pos]),
			},
		})
	}
	if len(bars) == 0 {
		return "", records.EmptyInput("chart top_by_position", t.Name)
	}
	c := gochart.BarChart{
		Title:      fmt.Sprintf("Top %d scorers by position", max(r.TopN, 1)),
		Background: background(),
		Width:      max(width, 70*len(bars)),
		Height:     height,
		BarWidth:   40,
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: peak * 1.1}},
		Bars:       bars,
	}
	return r.write("top_by_position", c)
}

// HomeAway draws the home and away win shares as a pie.
func (r Renderer) HomeAway(w views.WinShare) (string, error) {
	c := gochart.PieChart{
		Title:  "Home vs away wins",
		Width:  height,
		Height: height,
		Values: []gochart.Value{
			{Label: fmt.Sprintf("Home %.1f%%", 100*w.Home), Value: w.Home},
			{Label: fmt.Sprintf("Away %.1f%%", 100*w.Away), Value: w.Away},
		},
	}
	return r.write("home_away", c)
}

// TeamPerformance draws points per game over the season, one colored line
// per team in teams.
func (r Renderer) TeamPerformance(games *records.Table, teams []string) (string, error) {
	layout := r.DateLayout
	if layout == "" {
		layout = "Mon Jan 2 2006"
	}
	scores, err := views.TeamScores(games, teams, layout)
	if err != nil {
		return "", errors.Wrap(err, "chart team_performance")
	}
	var (
		series []gochart.Series
		dates  []float64
		points []float64
	)
	for i, s := range scores {
		if len(s.Points) == 0 {
			continue
		}
		for _, d := range s.Dates {
			dates = append(dates, float64(d.UnixNano()))
		}
		points = append(points, s.Points...)
		col := gochart.GetDefaultColor(i)
		st := line(col, 1.5)
		if len(s.Points) == 1 {
			st = dots(col, 4)
		}
		series = append(series, gochart.TimeSeries{Name: s.Team, XValues: s.Dates, YValues: s.Points, Style: st})
	}
	if len(series) == 0 {
		return "", records.EmptyInput("chart team_performance", games.Name)
	}
	c := gochart.Chart{
		Title:      "Team points per game",
		Background: background(),
		Width:      width,
		Height:     height,
		XAxis:      gochart.XAxis{Name: "Date", ValueFormatter: gochart.TimeDateValueFormatter, Range: flatRange(float64(24*time.Hour), dates)},
		YAxis:      gochart.YAxis{Name: "PTS", Range: flatRange(1, points)},
		Series:     series,
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return r.write("team_performance", c)
}

// PointsBox draws a box plot of PTS. t must have Player and PTS columns.
func (r Renderer) PointsBox(t *records.Table) (string, error) {
	if err := t.Require("Player"); err != nil {
		return "", errors.Wrap(err, "chart points_box")
	}
	b, err := views.Summarize(t, "PTS")
	if err != nil {
		return "", errors.Wrap(err, "chart points_box")
	}
	boxColor := gochart.ColorBlue
	seg := func(x0, y0, x1, y1 float64, st gochart.Style) gochart.Series {
		return gochart.ContinuousSeries{XValues: []float64{x0, x1}, YValues: []float64{y0, y1}, Style: st}
	}
	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    "IQR",
			XValues: []float64{0.7, 1.3, 1.3, 0.7, 0.7},
			YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
			Style:   line(boxColor, 2),
		},
		seg(0.7, b.Median, 1.3, b.Median, line(gochart.ColorRed, 2)),
		seg(1, b.Q1, 1, b.LowerWhisker, line(boxColor, 1)),
		seg(1, b.Q3, 1, b.UpperWhisker, line(boxColor, 1)),
		seg(0.85, b.LowerWhisker, 1.15, b.LowerWhisker, line(boxColor, 1)),
		seg(0.85, b.UpperWhisker, 1.15, b.UpperWhisker, line(boxColor, 1)),
	}
	if len(b.Outliers) > 0 {
		xs := make([]float64, len(b.Outliers))
		for i := range xs {
			xs[i] = 1
		}
		series = append(series, gochart.ContinuousSeries{Name: "outliers", XValues: xs, YValues: b.Outliers, Style: dots(gochart.ColorBlack, 3)})
	}
	pad := max((b.Max-b.Min)*0.05, 1)
	c := gochart.Chart{
		Title:      fmt.Sprintf("PTS distribution (n=%d)", b.N),
		Background: background(),
		Width:      height,
		Height:     height,
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 2},
			Ticks: []gochart.Tick{{Value: 0, Label: ""}, {Value: 1, Label: "PTS"}, {Value: 2, Label: ""}},
		},
		YAxis:  gochart.YAxis{Name: "PTS", Range: &gochart.ContinuousRange{Min: b.Min - pad, Max: b.Max + pad}},
		Series: series,
	}
	return r.write("points_box", c)
}

// ShootingScatter plots TS% against PTS.
func (r Renderer) ShootingScatter(t *records.Table) (string, error) {
	xs, ys, err := pairs(t, "TS%", "PTS")
	if err != nil {
		return "", errors.Wrap(err, "chart shooting_scatter")
	}
	c := gochart.Chart{
		Title:      "True shooting vs points",
		Background: background(),
		Width:      width,
		Height:     height,
		XAxis:      gochart.XAxis{Name: "TS%", Range: flatRange(0.1, xs)},
		YAxis:      gochart.YAxis{Name: "PTS", Range: flatRange(1, ys)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "players", XValues: xs, YValues: ys, Style: dots(gochart.ColorBlue, 4)},
		},
	}
	return r.write("shooting_scatter", c)
}

// PointsStem draws PER as stems at each player's PTS for the first StemLimit
// rows of t.
func (r Renderer) PointsStem(t *records.Table) (string, error) {
	limit := r.StemLimit
	if limit <= 0 {
		limit = t.Len()
	}
	xs, ys, err := pairs(views.Head(t, limit), "PTS", "PER")
	if err != nil {
		return "", errors.Wrap(err, "chart points_stem")
	}
	series := make([]gochart.Series, 0, len(xs)+1)
	for i := range xs {
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{xs[i], xs[i]},
			YValues: []float64{0, ys[i]},
			Style:   line(gochart.ColorBlue, 1.5),
		})
	}
	series = append(series, gochart.ContinuousSeries{Name: "PER", XValues: xs, YValues: ys, Style: dots(gochart.ColorRed, 5)})
	c := gochart.Chart{
		Title:      "PER by points",
		Background: background(),
		Width:      width,
		Height:     height,
		XAxis:      gochart.XAxis{Name: "PTS", Range: flatRange(1, xs)},
		YAxis:      gochart.YAxis{Name: "PER", Range: flatRange(1, ys, []float64{0})},
		Series:     series,
	}
	return r.write("points_stem", c)
}

// flatRange returns an axis range of +/- pad around the single value held by
// vals, or nil when the values differ and go-chart can fit them itself.
// go-chart refuses to render an axis whose values are all equal.
func flatRange(pad float64, vals ...[]float64) gochart.Range {
	var lo, hi float64
	seen := false
	for _, vs := range vals {
		for _, v := range vs {
			if !seen {
				lo, hi, seen = v, v, true
				continue
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if !seen || lo != hi {
		return nil
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// pairs reads two numeric columns of t row by row.
func pairs(t *records.Table, x, y string) ([]float64, []float64, error) {
	xs, err := t.Floats(x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := t.Floats(y)
	if err != nil {
		return nil, nil, err
	}
	if len(xs) == 0 {
		return nil, nil, records.EmptyInput("chart", t.Name)
	}
	return xs, ys, nil
}
