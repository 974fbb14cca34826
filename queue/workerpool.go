package queue

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/internal"
)

// GraceTimeout is the window WorkerPool waits, after asking every
// child process to terminate, before force-killing survivors.
const GraceTimeout = 30 * time.Second

// ChildArgs builds the argv (excluding the program name) used to
// re-exec the current binary as worker number idx. The caller supplies
// this so WorkerPool stays ignorant of CLI flag layout; see the
// childArgs closure in cli's runWorkerStart.
type ChildArgs func(idx int) []string

// WorkerPool spawns Count independent OS processes, each re-executing
// this binary with the argv ChildArgs builds, and supervises their
// shutdown.
//
// It is built on internal.WorkerPool[int]: one goroutine per worker
// slot picks up its slot index and supervises a single long-lived
// child process to completion — the same generic pool the teacher
// library used to dispatch in-process jobs to handlers, repurposed
// here so each "item" is "run and wait on one OS process" rather than
// "run one in-process handler call".
type WorkerPool struct {
	lifecycle

	count     int
	childArgs ChildArgs
	log       l3.Logger
	pool      *internal.WorkerPool[int]

	mu   sync.Mutex
	cmds []*exec.Cmd
}

// NewWorkerPool returns a pool that will spawn count child processes
// built by childArgs.
func NewWorkerPool(count int, childArgs ChildArgs, log l3.Logger) *WorkerPool {
	return &WorkerPool{
		count:     count,
		childArgs: childArgs,
		log:       log,
		pool:      internal.NewWorkerPool[int](count, count, log),
	}
}

func (p *WorkerPool) trackCmd(c *exec.Cmd) {
	p.mu.Lock()
	p.cmds = append(p.cmds, c)
	p.mu.Unlock()
}

func (p *WorkerPool) spawnAndSupervise(ctx context.Context, exe string, idx int) {
	args := p.childArgs(idx)
	cmd := exec.Command(exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Start(); err != nil {
		p.log.Error("failed to start worker process", "index", idx, "err", err)
		return
	}
	p.trackCmd(cmd)
	if err := cmd.Wait(); err != nil {
		p.log.Warn("worker process exited", "index", idx, "err", err)
	} else {
		p.log.Info("worker process exited", "index", idx)
	}
}

// Start spawns every child process and returns immediately; it does
// not wait for them to exit. Use Wait for that.
func (p *WorkerPool) Start(ctx context.Context) error {
	if err := p.tryStart(); err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	p.pool.Start(ctx, func(wctx context.Context, idx int) {
		p.spawnAndSupervise(wctx, exe, idx)
	})
	for i := 1; i <= p.count; i++ {
		p.pool.Push(i)
	}
	return nil
}

// Wait blocks until every spawned child process has exited.
func (p *WorkerPool) Wait() {
	<-p.pool.Stop()
}

func (p *WorkerPool) doStop() internal.DoneChan {
	p.mu.Lock()
	cmds := append([]*exec.Cmd(nil), p.cmds...)
	p.mu.Unlock()
	for _, c := range cmds {
		if c.Process != nil {
			_ = c.Process.Signal(syscall.SIGTERM)
		}
	}
	poolDone := p.pool.Stop()
	ret := make(internal.DoneChan)
	go func() {
		defer close(ret)
		timer := time.NewTimer(GraceTimeout)
		defer timer.Stop()
		select {
		case <-poolDone:
			return
		case <-timer.C:
		}
		p.mu.Lock()
		for _, c := range p.cmds {
			if c.ProcessState == nil && c.Process != nil {
				_ = c.Process.Kill()
			}
		}
		p.mu.Unlock()
		<-poolDone
	}()
	return ret
}

// Stop sends a graceful termination signal to every child, waits up to
// GraceTimeout for all of them to exit, then force-kills any survivor.
// The timeout parameter bounds how long Stop itself is willing to
// block before returning ErrStopTimeout; callers should pass something
// comfortably larger than GraceTimeout.
func (p *WorkerPool) Stop(timeout time.Duration) error {
	return p.tryStop(timeout, p.doStop)
}
