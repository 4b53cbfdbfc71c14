// Package metrics records per-step timings and row counts for a pipeline run.
//
// Call sites depend only on this package. A concrete Backend (Prometheus
// Pushgateway, DogStatsD) is installed by the command with SetBackend; until
// then every call is a no-op.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metric names shared by every backend.
const (
	StepTotal    = "nbastats_step_total"
	StepDuration = "nbastats_step_duration_seconds"
	RowsTotal    = "nbastats_rows_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

type holder struct{ Backend }

var backend atomic.Pointer[holder]

func init() {
	backend.Store(&holder{nopBackend{}})
}

func current() Backend { return backend.Load().Backend }

// SetBackend installs b and returns the previous backend. Passing nil keeps
// the existing backend.
func SetBackend(b Backend) Backend {
	prev := current()
	if b != nil {
		backend.Store(&holder{b})
	}
	return prev
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStep counts one execution of step and observes its duration, labelled
// success or failure by err.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}
	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow adds delta rows of the given kind, e.g. "loaded", "merged",
// "processed", "skipped" or "written". Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
