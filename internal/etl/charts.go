package etl

import (
	"context"

	"github.com/cockroachdb/errors"

	"nbastats/internal/chart"
	"nbastats/internal/views"
)

// renderCharts draws every chart whose input is available. A chart whose view
// failed is skipped; a chart that fails to render does not stop the others.
// All render errors are returned combined.
func (r *runner) renderCharts(ctx context.Context) error {
	cc := r.cfg.Charts
	if !cc.Enabled {
		return nil
	}
	rd := chart.Renderer{
		OutDir:     cc.OutDir,
		Format:     cc.Format,
		TopN:       cc.TopN,
		StemLimit:  cc.StemLimit,
		DateLayout: cc.DateLayout,
	}
	res := r.res

	type job struct {
		name   string
		skip   string
		render func() (string, error)
	}
	jobs := []job{
		{name: "top_by_position", render: func() (string, error) {
			t, err := views.Project(res.Processed, []string{"Player", cc.PositionColumn, "PTS"}, map[string]string{cc.PositionColumn: "Pos"})
			if err != nil {
				return "", err
			}
			return rd.TopByPosition(t)
		}},
		{name: "home_away", skip: skipIf(res.WinShare == nil, "win_pct view failed"), render: func() (string, error) {
			return rd.HomeAway(*res.WinShare)
		}},
		{name: "team_performance", skip: skipIf(len(res.Teams) == 0, "no team list"), render: func() (string, error) {
			return rd.TeamPerformance(res.Season, res.Teams)
		}},
		{name: "points_box", render: func() (string, error) { return rd.PointsBox(res.Processed) }},
		{name: "shooting_scatter", render: func() (string, error) { return rd.ShootingScatter(res.Processed) }},
		{name: "points_stem", skip: skipIf(res.Sorted == nil, "sort view failed"), render: func() (string, error) {
			return rd.PointsStem(res.Sorted)
		}},
	}

	var errs error
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.CombineErrors(errs, err)
		}
		if j.skip != "" {
			r.log.Warn("chart skipped", "chart", j.name, "reason", j.skip)
			continue
		}
		var path string
		err := r.step("chart_"+j.name, func() (err error) {
			path, err = j.render()
			return err
		})
		if err != nil {
			errs = errors.CombineErrors(errs, err)
			continue
		}
		res.Charts[j.name] = path
		r.log.Info("chart written", "chart", j.name, "path", path)
	}
	return errs
}

func skipIf(cond bool, reason string) string {
	if cond {
		return reason
	}
	return ""
}
