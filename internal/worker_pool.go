package internal

import (
	"context"
	"sync"

	"oss.nandlabs.io/golly/l3"
)

// WorkHandler processes a single item pushed to a WorkerPool.
type WorkHandler[T any] func(context.Context, T)

// WorkerPool is a concurrency-bounded pool of goroutines draining a
// shared channel. queue.WorkerPool repurposes it with T=int (a worker
// slot index) so that each of the concurrency goroutines supervises
// exactly one long-lived OS child process instead of handling many
// short in-process items — the generic shape is unchanged from its
// original use dispatching pulled jobs to in-process handlers.
type WorkerPool[T any] struct {
	concurrency int
	queue       int
	wg          sync.WaitGroup
	in          chan T
	ctx         context.Context
	cancel      context.CancelFunc
	log         l3.Logger
}

// NewWorkerPool returns a pool with concurrency goroutines reading
// from a channel buffered to queue capacity.
func NewWorkerPool[T any](concurrency int, queue int, log l3.Logger) *WorkerPool[T] {
	return &WorkerPool[T]{
		concurrency: concurrency,
		queue:       queue,
		log:         log,
	}
}

func (wp *WorkerPool[T]) safeHandle(ctx context.Context, wh WorkHandler[T], t T) {
	defer func() {
		if r := recover(); r != nil {
			wp.log.Error("worker panic recovered", "err", r)
		}
	}()
	wh(ctx, t)
}

func (wp *WorkerPool[T]) worker(ctx context.Context, wh WorkHandler[T]) {
	defer wp.wg.Done()
	for {
		select {
		case <-ctx.Done():
			// Items already accepted by Push are still handled after
			// cancellation; the goroutine returns once none are queued.
			select {
			case t := <-wp.in:
				wp.safeHandle(ctx, wh, t)
				continue
			default:
				return
			}
		case t := <-wp.in:
			wp.safeHandle(ctx, wh, t)
		}
	}
}

// Push enqueues t for processing. It returns false if the pool's
// context has already been cancelled.
func (wp *WorkerPool[T]) Push(t T) bool {
	select {
	case <-wp.ctx.Done():
		return false
	case wp.in <- t:
		return true
	}
}

// Start launches concurrency goroutines, each running wh against items
// pushed to the pool.
func (wp *WorkerPool[T]) Start(ctx context.Context, wh WorkHandler[T]) {
	wp.ctx, wp.cancel = context.WithCancel(ctx)
	wp.in = make(chan T, wp.queue)
	for i := 0; i < wp.concurrency; i++ {
		wp.wg.Add(1)
		go wp.worker(wp.ctx, wh)
	}
}

// Stop cancels the pool's context and returns a channel that closes
// once every goroutine has returned. Items queued before Stop are still
// handled first.
func (wp *WorkerPool[T]) Stop() DoneChan {
	wp.cancel()
	return wrapWaitGroup(&wp.wg)
}
