// Package etl runs the whole nbastats pipeline once: load the three season
// exports, merge and clean the player tables, build the views, print them,
// write the result tables and render the charts.
package etl

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"nbastats/internal/config"
	"nbastats/internal/logging"
	"nbastats/internal/merge"
	"nbastats/internal/metrics"
	"nbastats/internal/parser"
	"nbastats/internal/preprocess"
	"nbastats/internal/report"
	"nbastats/internal/storage"
	"nbastats/internal/views"
	"nbastats/pkg/records"
)

// Deps are the collaborators of a run. Zero values are usable: nothing is
// printed, logs are dropped and the output repository is opened from the
// run's output section.
type Deps struct {
	Log  *logging.Logger
	Out  io.Writer
	Repo storage.Repository
}

// Result holds every table the run produced. A view that failed is left nil.
type Result struct {
	RunID string

	Advanced *records.Table
	Regular  *records.Table
	Season   *records.Table
	Teams    []string

	Merged    *records.Table
	Processed *records.Table

	Scorers  views.Partition
	Sorted   *records.Table
	Pivot    *views.Series
	WinShare *views.WinShare

	// Skipped counts rows a lenient parser dropped across all inputs.
	Skipped int
	// Written lists output table names in write order.
	Written []string
	// Charts maps chart name to the written file.
	Charts map[string]string
}

type runner struct {
	cfg  config.Run
	log  *logging.Logger
	out  *report.Printer
	repo storage.Repository
	res  *Result
}

// Run executes cfg. Load, merge and preprocess failures stop the run at once.
// A failing view only suppresses what depends on it: the other views are
// still printed and written, and the first view error is returned once
// everything else has finished. Chart failures are collected the same way.
func Run(ctx context.Context, cfg config.Run, deps Deps) (*Result, error) {
	runID := uuid.NewString()
	log := deps.Log
	if log == nil {
		log = logging.NewNop()
	}
	log = log.With("run_id", runID, "job", cfg.Job)
	out := deps.Out
	if out == nil {
		out = io.Discard
	}

	r := &runner{
		cfg: cfg,
		log: log,
		out: report.NewPrinter(out),
		res: &Result{RunID: runID, Charts: map[string]string{}},
	}

	start := time.Now()
	log.Info("run started", "output", cfg.Output.Kind, "charts", cfg.Charts.Enabled)

	repo := deps.Repo
	if repo == nil {
		var err error
		repo, err = storage.New(ctx, storage.Config{Kind: cfg.Output.Kind, Dir: cfg.Output.Dir})
		if err != nil {
			return r.res, err
		}
		defer func() {
			if err := repo.Close(); err != nil {
				log.Warn("close output", "error", err)
			}
		}()
	}
	r.repo = repo

	if err := r.prepare(ctx); err != nil {
		log.Error("run failed", "error", err, "elapsed", time.Since(start))
		return r.res, err
	}

	viewErr := r.buildViews()
	if err := r.print(); err != nil {
		return r.res, errors.Wrap(err, "print")
	}
	if err := r.step("write", func() error { return r.write(ctx) }); err != nil {
		return r.res, err
	}
	chartErr := r.renderCharts(ctx)

	err := viewErr
	if err == nil {
		err = chartErr
	} else if chartErr != nil {
		log.Warn("chart errors after failed view", "error", chartErr)
	}
	if err != nil {
		log.Error("run failed", "error", err, "elapsed", time.Since(start))
		return r.res, err
	}
	log.Info("run finished",
		"merged", r.res.Merged.Len(),
		"processed", r.res.Processed.Len(),
		"tables", len(r.res.Written),
		"charts", len(r.res.Charts),
		"elapsed", time.Since(start),
	)
	return r.res, nil
}

// prepare loads the inputs and produces the merged and processed tables.
func (r *runner) prepare(ctx context.Context) error {
	p, err := parser.New(r.cfg.Parser, r.log)
	if err != nil {
		return err
	}

	if err := r.step("load", func() error { return r.load(ctx, p) }); err != nil {
		return err
	}

	if err := r.step("merge", func() error {
		merged, err := merge.Merge(r.res.Advanced, r.res.Regular, merge.Options{
			Key:      r.cfg.Merge.Key,
			Drop:     r.cfg.Merge.Drop,
			LeftTag:  r.cfg.Merge.LeftTag,
			RightTag: r.cfg.Merge.RightTag,
		})
		if err != nil {
			return err
		}
		r.res.Merged = merged
		metrics.RecordRow(r.cfg.Job, "merged", int64(merged.Len()))
		r.log.Info("merged", "rows", merged.Len(), "columns", len(merged.Columns))
		return nil
	}); err != nil {
		return err
	}

	return r.step("preprocess", func() error {
		key := r.cfg.Merge.Key
		if key == "" {
			key = merge.DefaultOptions().Key
		}
		processed, err := preprocess.Preprocess(r.res.Merged, key)
		if err != nil {
			return err
		}
		processed.Name = "processed"
		r.res.Processed = processed
		metrics.RecordRow(r.cfg.Job, "processed", int64(processed.Len()))
		return nil
	})
}

// step runs fn as a named pipeline step, recording its duration and outcome.
func (r *runner) step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	metrics.RecordStep(r.cfg.Job, name, err, d)
	if err != nil {
		r.log.Error("step failed", "step", name, "duration", d, "error", err)
		return err
	}
	r.log.Debug("step done", "step", name, "duration", d)
	return nil
}
