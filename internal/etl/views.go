package etl

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"nbastats/internal/views"
)

// buildViews computes the four independent views over the processed table
// and the season log. Every view runs to completion even when another fails;
// the first error in submission order is returned. With Views.Parallel off
// they run one at a time.
func (r *runner) buildViews() error {
	var g errgroup.Group
	if !r.cfg.Views.Parallel {
		g.SetLimit(1)
	}
	processed := r.res.Processed
	vc := r.cfg.Views

	var (
		part     views.Partition
		sorted   = processed
		pivot    views.Series
		winShare views.WinShare
	)
	errs := make([]error, 4)
	run := func(i int, name string, fn func() error) {
		g.Go(func() error {
			errs[i] = r.step("view_"+name, func() error {
				return errors.Wrapf(fn(), "view %s", name)
			})
			return errs[i]
		})
	}

	run(0, "threshold", func() (err error) {
		part, err = views.FilterByThreshold(processed, vc.Threshold.Column, vc.Threshold.Value)
		return err
	})
	run(1, "sort", func() (err error) {
		sorted, err = views.SortDescending(processed, vc.Sort.Column)
		return err
	})
	run(2, "pivot", func() (err error) {
		pivot, err = views.PivotAndFlatten(processed, vc.Pivot.Index, vc.Pivot.Columns, vc.Pivot.Values)
		return err
	})
	run(3, "win_pct", func() (err error) {
		winShare, err = views.WinPercentage(r.res.Season)
		return err
	})
	_ = g.Wait()

	if errs[0] == nil {
		part.Above.Name, part.AtOrBelow.Name = "high_scorers", "low_scorers"
		r.res.Scorers = part
	}
	if errs[1] == nil {
		sorted.Name = "sorted"
		r.res.Sorted = sorted
	}
	if errs[2] == nil {
		r.res.Pivot = &pivot
	}
	if errs[3] == nil {
		r.res.WinShare = &winShare
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
