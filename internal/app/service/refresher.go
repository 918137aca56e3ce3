package service

import (
	"context"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/pkg/metrics"
)

// RefreshFunc is one unit of background refresh work.
type RefreshFunc func(ctx context.Context) error

// Refresher re-runs a set of refresh functions on a fixed interval until its context
// is cancelled. Runs are not deduplicated: a slow run delays the next tick.
type Refresher struct {
	interval time.Duration
	jobs     map[string]RefreshFunc
	logger   port.Logger
}

// NewRefresher creates a Refresher. A non-positive interval disables the loop.
func NewRefresher(interval time.Duration, l port.Logger) *Refresher {
	return &Refresher{interval: interval, jobs: make(map[string]RefreshFunc), logger: l}
}

// Add registers a named job. Must be called before Run.
func (r *Refresher) Add(name string, fn RefreshFunc) {
	r.jobs[name] = fn
}

// Run blocks until ctx is done. Each job is run once immediately.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Background refresh disabled")
		return
	}
	r.logger.Info("Background refresh started", "interval", r.interval.String(), "jobs", len(r.jobs))

	r.runOnce(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Background refresh stopped")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Refresher) runOnce(ctx context.Context) {
	for name, job := range r.jobs {
		if ctx.Err() != nil {
			return
		}
		started := time.Now()
		if err := job(ctx); err != nil {
			metrics.RefreshRuns.WithLabelValues("error").Inc()
			r.logger.Warn("Refresh job failed", "job", name, "error", err)
			continue
		}
		metrics.RefreshRuns.WithLabelValues("ok").Inc()
		r.logger.Debug("Refresh job finished", "job", name, "duration", time.Since(started).String())
	}
}
