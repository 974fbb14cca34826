package queue

import (
	"context"
	"sync/atomic"
	"time"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/internal"
	"github.com/HariniKartheeswaran/queuectl/job"
)

// Worker runs the strictly serial claim-execute loop of a single OS
// process:
//
//	loop while not shutting_down:
//	    for j in get_retryable_jobs(): reset_for_retry(j.id)
//	    j = claim(worker_id)
//	    if j is none: sleep(poll_interval); continue
//	    execute(j)
//
// Unlike the teacher's Worker, which decouples a periodic Pull from a
// concurrent handler pool, Worker here deliberately does one thing at a
// time — the spec models a single-threaded OS process, not an
// in-process pool.
//
// Worker has a strict lifecycle: Start may only be called once. Stop
// requests shutdown cooperatively; the currently-executing job, if
// any, is never interrupted, since its own timeout is what bounds it.
type Worker struct {
	lifecycle

	id             string
	manager        JobManager
	executor       *Executor
	pollInterval   time.Duration
	defaultTimeout int
	log            l3.Logger

	shuttingDown atomic.Bool
	cancel       context.CancelFunc
	done         internal.DoneChan
}

// NewWorker creates a Worker identified by id, driving manager. The
// worker is not started automatically.
func NewWorker(id string, manager JobManager, pollInterval time.Duration, defaultTimeout int, log l3.Logger) *Worker {
	return &Worker{
		id:             id,
		manager:        manager,
		executor:       NewExecutor(),
		pollInterval:   pollInterval,
		defaultTimeout: defaultTimeout,
		log:            log,
	}
}

// Start begins the claim-execute loop in a background goroutine.
// Start returns ErrDoubleStarted if already started.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	var runCtx context.Context
	runCtx, w.cancel = context.WithCancel(ctx)
	w.done = make(internal.DoneChan)
	go w.run(runCtx)
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if w.shuttingDown.Load() {
			return
		}
		w.promoteRetryables(ctx)
		j, err := w.manager.Claim(ctx, w.id)
		if err != nil {
			w.log.Error("claim failed", "worker_id", w.id, "err", err)
			w.idle(ctx)
			continue
		}
		if j == nil {
			w.idle(ctx)
			continue
		}
		w.execute(j)
	}
}

func (w *Worker) idle(ctx context.Context) {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *Worker) promoteRetryables(ctx context.Context) {
	retryable, err := w.manager.GetRetryableJobs(ctx)
	if err != nil {
		w.log.Error("get retryable jobs failed", "worker_id", w.id, "err", err)
		return
	}
	for _, j := range retryable {
		if err := w.manager.ResetForRetry(ctx, j.Id); err != nil {
			w.log.Error("reset for retry failed", "id", j.Id, "err", err)
		}
	}
}

// execute deliberately uses context.Background() for the subprocess,
// not the worker's lifecycle context: Stop must never interrupt an
// in-flight job, only stop the loop from starting a new one.
func (w *Worker) execute(j *job.Job) {
	timeout := w.defaultTimeout
	if j.Timeout != nil {
		timeout = *j.Timeout
	}
	result := w.executor.Run(context.Background(), j.Command, timeout)
	ctx := context.Background()
	if result.Success {
		if err := w.manager.MarkCompleted(ctx, j.Id, result.Output, result.ExecutionTime); err != nil {
			w.log.Error("mark completed failed", "id", j.Id, "err", err)
		}
		return
	}
	if err := w.manager.MarkFailed(ctx, j.Id, result.ErrMessage); err != nil {
		w.log.Error("mark failed failed", "id", j.Id, "err", err)
	}
}

// Stop requests graceful shutdown: the loop will not start a new job,
// but an in-flight one is allowed to finish. Stop waits until the loop
// goroutine has exited or timeout elapses.
func (w *Worker) Stop(timeout time.Duration) error {
	w.shuttingDown.Store(true)
	return w.tryStop(timeout, func() internal.DoneChan {
		w.cancel()
		return w.done
	})
}
