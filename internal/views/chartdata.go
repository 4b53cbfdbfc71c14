package views

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"nbastats/internal/transformer/builtin"
	"nbastats/pkg/records"
)

// TopNPerGroup keeps the n rows with the largest value in each group. Groups
// appear in ascending order of their group value; within a group rows are
// ordered by value, largest first, ties in input order. Rows with a missing
// group are dropped.
func TopNPerGroup(t *records.Table, group, value string, n int) (*records.Table, error) {
	if err := t.Require(group, value); err != nil {
		return nil, errors.Wrap(err, "top n per group")
	}
	rows := builtin.Require{Fields: []string{group}}.Apply(t.Clone().Rows)
	kept := t.WithRows(rows)
	vals, err := kept.Floats(value)
	if err != nil {
		return nil, errors.Wrap(err, "top n per group")
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if c := records.Compare(rows[idx[a]][group], rows[idx[b]][group]); c != 0 {
			return c < 0
		}
		return vals[idx[a]] > vals[idx[b]]
	})

	var out []records.Record
	var current any
	taken := 0
	for i, j := range idx {
		g := rows[j][group]
		if i == 0 || records.Compare(g, current) != 0 {
			current, taken = g, 0
		}
		if taken < n {
			out = append(out, rows[j])
			taken++
		}
	}
	return t.WithRows(out), nil
}

// BoxStats summarizes a numeric column the way a box plot draws it.
// Quartiles interpolate linearly between order statistics; whiskers reach the
// most extreme values within 1.5 IQR of the box.
type BoxStats struct {
	Min, Q1, Median, Q3, Max   float64
	LowerWhisker, UpperWhisker float64
	Outliers                   []float64
	N                          int
}

// Summarize computes BoxStats over the non-missing cells of column.
func Summarize(t *records.Table, column string) (BoxStats, error) {
	if err := t.Require(column); err != nil {
		return BoxStats{}, errors.Wrap(err, "summarize")
	}
	var vals []float64
	for i, r := range t.Rows {
		if r.Missing(column) {
			continue
		}
		v, ok := records.Float(r[column])
		if !ok {
			return BoxStats{}, records.NotNumeric(t.Name, i+1, column, r[column])
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return BoxStats{}, records.EmptyInput("summarize "+column, t.Name)
	}
	slices.Sort(vals)

	b := BoxStats{
		Min:    vals[0],
		Max:    vals[len(vals)-1],
		Q1:     quantile(vals, 0.25),
		Median: quantile(vals, 0.5),
		Q3:     quantile(vals, 0.75),
		N:      len(vals),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerWhisker = min(b.LowerWhisker, v)
		b.UpperWhisker = max(b.UpperWhisker, v)
	}
	return b, nil
}

// quantile interpolates linearly over sorted values.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// TeamSeries is one team's points per game in season order.
type TeamSeries struct {
	Team   string
	Dates  []time.Time
	Points []float64
}

// TeamScores collects, for each team in teams, the points it scored in every
// game of the season log: the home score when it hosted and the visitor
// score otherwise. Teams are matched by exact name; a team that played no
// game gets an empty series. Dates are parsed with layout.
func TeamScores(games *records.Table, teams []string, layout string) ([]TeamSeries, error) {
	if err := games.Require(ColDate, ColHome, ColVisitor, ColHomePoints, ColVisitPoints); err != nil {
		return nil, errors.Wrap(err, "team scores")
	}
	out := make([]TeamSeries, len(teams))
	pos := make(map[string]int, len(teams))
	for i, name := range teams {
		out[i].Team = name
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	for i, r := range games.Rows {
		home, visitor := records.Format(r[ColHome]), records.Format(r[ColVisitor])
		hi, isHome := pos[home]
		vi, isVisitor := pos[visitor]
		if !isHome && !isVisitor {
			continue
		}
		date, err := time.Parse(layout, records.Format(r[ColDate]))
		if err != nil {
			return nil, errors.Mark(
				errors.Wrapf(err, "table %q: row %d: column %q", games.Name, i+1, ColDate),
				records.ErrParse,
			)
		}
		if isHome {
			if err := appendScore(&out[hi], games.Name, i, r, ColHomePoints, date); err != nil {
				return nil, err
			}
		}
		if isVisitor {
			if err := appendScore(&out[vi], games.Name, i, r, ColVisitPoints, date); err != nil {
				return nil, err
			}
		}
	}
	for i, name := range teams {
		if j := pos[name]; j != i {
			out[i] = out[j]
			out[i].Team = name
		}
	}
	return out, nil
}

func appendScore(s *TeamSeries, table string, i int, r records.Record, col string, date time.Time) error {
	v, ok := records.Float(r[col])
	if !ok {
		return records.NotNumeric(table, i+1, col, r[col])
	}
	s.Dates = append(s.Dates, date)
	s.Points = append(s.Points, v)
	return nil
}
