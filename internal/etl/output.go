package etl

import (
	"context"
	"fmt"

	"nbastats/internal/metrics"
	"nbastats/internal/report"
	"nbastats/pkg/records"
)

type namedTable struct {
	name  string
	title string
	t     *records.Table
}

// tables lists the result tables in print and write order, skipping views
// that failed.
func (r *runner) tables() []namedTable {
	res := r.res
	out := []namedTable{
		{"merged", "Merged stats", res.Merged},
		{"processed", "Processed stats", res.Processed},
	}
	if res.Scorers.Above != nil {
		th := r.cfg.Views.Threshold
		out = append(out,
			namedTable{"high_scorers", fmt.Sprintf("%s > %g", th.Column, th.Value), res.Scorers.Above},
			namedTable{"low_scorers", fmt.Sprintf("%s <= %g", th.Column, th.Value), res.Scorers.AtOrBelow},
		)
	}
	if res.Sorted != nil {
		out = append(out, namedTable{"sorted", "Sorted by " + r.cfg.Views.Sort.Column, res.Sorted})
	}
	if res.Pivot != nil {
		out = append(out, namedTable{"pivot", "Pivot " + res.Pivot.Values, res.Pivot.Table()})
	}
	if res.WinShare != nil {
		out = append(out, namedTable{"win_pct", "Home vs away wins", res.WinShare.Table()})
	}
	return out
}

// print writes every available table to the console, then a describe of the
// processed table and a row count summary.
func (r *runner) print() error {
	p := r.out
	var counts []report.Count
	for _, nt := range r.tables() {
		var err error
		switch nt.name {
		case "win_pct":
			err = p.WinShare(nt.title, *r.res.WinShare)
		case "pivot":
			err = p.Series(nt.title, *r.res.Pivot)
		default:
			err = p.Table(nt.title, nt.t)
		}
		if err != nil {
			return err
		}
		counts = append(counts, report.Count{Name: nt.name, Rows: nt.t.Len()})
	}
	if err := p.Describe("Processed stats summary", r.res.Processed); err != nil {
		return err
	}
	return p.Summary("Row counts", counts)
}

// write hands every available table to the output repository.
func (r *runner) write(ctx context.Context) error {
	for _, nt := range r.tables() {
		if err := r.repo.WriteTable(ctx, nt.name, nt.t); err != nil {
			return err
		}
		r.res.Written = append(r.res.Written, nt.name)
		metrics.RecordRow(r.cfg.Job, "written", int64(nt.t.Len()))
	}
	r.log.Debug("tables written", "kind", r.cfg.Output.Kind, "tables", len(r.res.Written))
	return nil
}
