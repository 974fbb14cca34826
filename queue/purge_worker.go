package queue

import (
	"context"
	"time"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/internal"
)

// PurgeConfig configures a PurgeWorker. It is the supplemental,
// opt-in feature behind `worker start --purge-interval`, adapted from
// the teacher library's CleanWorker/CleanConfig pattern — neither the
// spec nor the original Python implementation runs a background
// cleaner, but the pattern costs nothing when Interval is never
// configured (see SPEC_FULL.md §9).
type PurgeConfig struct {
	Interval time.Duration
}

// PurgeWorker periodically calls Cleaner.PurgeCompleted. It has the
// same strict Start-once/Stop lifecycle as Worker and WorkerPool.
type PurgeWorker struct {
	lifecycle

	cleaner  Cleaner
	task     internal.TimerTask
	log      l3.Logger
	interval time.Duration
}

// NewPurgeWorker creates a PurgeWorker over cleaner using cfg. The
// worker is not started automatically.
func NewPurgeWorker(cleaner Cleaner, cfg PurgeConfig, log l3.Logger) *PurgeWorker {
	return &PurgeWorker{
		cleaner:  cleaner,
		log:      log,
		interval: cfg.Interval,
	}
}

func (pw *PurgeWorker) purge(ctx context.Context) {
	count, err := pw.cleaner.PurgeCompleted(ctx)
	if err != nil {
		pw.log.Error("periodic purge failed", "err", err)
		return
	}
	pw.log.Info("periodic purge completed", "count", count)
}

// Start begins periodic purging. Start returns ErrDoubleStarted if
// already started.
func (pw *PurgeWorker) Start(ctx context.Context) error {
	if err := pw.tryStart(); err != nil {
		return err
	}
	pw.task.Start(ctx, pw.purge, pw.interval)
	return nil
}

// Stop terminates the background purge task, waiting up to timeout.
func (pw *PurgeWorker) Stop(timeout time.Duration) error {
	return pw.tryStop(timeout, pw.task.Stop)
}
