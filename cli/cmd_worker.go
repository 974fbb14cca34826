package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gcli "oss.nandlabs.io/golly/cli"
	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/queue"
)

var workerStartFlagNames = map[string]bool{
	"count": true, "c": true,
	"backoff-base": true, "b": true,
	"purge-interval": true,
}

func newWorkerCommand() *gcli.Command {
	cmd := gcli.NewCommand("worker", "Worker management commands", version, nil)
	cmd.AddSubCommand(newWorkerStartCommand())
	cmd.AddSubCommand(newWorkerStopCommand())
	cmd.AddSubCommand(newWorkerRunCommand())
	return cmd
}

func newWorkerStartCommand() *gcli.Command {
	cmd := gcli.NewCommand("start", "Start one or more workers", version, runWorkerStart)
	cmd.Flags = []*gcli.Flag{
		{Name: "count", Aliases: []string{"c"}, Usage: "Number of worker processes", Default: "2"},
		{Name: "backoff-base", Aliases: []string{"b"}, Usage: "Exponential backoff base", Default: ""},
		{Name: "purge-interval", Usage: "If set, periodically purge completed jobs (e.g. 5m)", Default: ""},
	}
	return cmd
}

func runWorkerStart(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}

	count := 2
	if v, ok := ctx.GetFlag("count"); ok && v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n <= 0 {
			return fmt.Errorf("worker start: invalid --count %q", v)
		}
		count = n
	}

	backoffBase := rt.cfg.BackoffBase
	if v, ok := ctx.GetFlag("backoff-base"); ok && v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n <= 0 {
			return fmt.Errorf("worker start: invalid --backoff-base %q", v)
		}
		backoffBase = uint32(n)
	}

	fmt.Printf("Starting %d worker(s) with backoff base %d\n", count, backoffBase)
	fmt.Println("Press Ctrl+C to stop workers gracefully...")

	log := l3.Get()
	childArgs := func(idx int) []string {
		return []string{
			"__worker-run",
			"--id", fmt.Sprintf("worker-%d", idx),
			"--backoff-base", strconv.Itoa(int(backoffBase)),
		}
	}
	pool := queue.NewWorkerPool(count, childArgs, log)
	ctxBg := context.Background()
	if err := pool.Start(ctxBg); err != nil {
		return err
	}

	var purgeWorker *queue.PurgeWorker
	if v, ok := ctx.GetFlag("purge-interval"); ok && v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return fmt.Errorf("worker start: invalid --purge-interval %q", v)
		}
		purgeWorker = queue.NewPurgeWorker(rt.manager, queue.PurgeConfig{Interval: d}, log)
		if err := purgeWorker.Start(ctxBg); err != nil {
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-sig:
		fmt.Println("\nStopping workers gracefully...")
		if err := pool.Stop(queue.GraceTimeout + 5*time.Second); err != nil {
			log.Warn("worker pool stop", "err", err)
		}
		if purgeWorker != nil {
			_ = purgeWorker.Stop(5 * time.Second)
		}
		<-done
		fmt.Println("All workers stopped")
	case <-done:
		if purgeWorker != nil {
			_ = purgeWorker.Stop(5 * time.Second)
		}
	}
	return nil
}

func newWorkerStopCommand() *gcli.Command {
	return gcli.NewCommand("stop", "Stop running workers gracefully", version, runWorkerStop)
}

// runWorkerStop is the best-effort, non-mutating advisory action
// described by original_source/queuectl.py's `worker_stop`: it never
// signals any process (workers are independent OS processes this CLI
// invocation knows nothing about), it only reports what is currently
// running and reminds the operator that Ctrl-C in the pool's own
// terminal is the real stop mechanism.
func runWorkerStop(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	jobs, err := rt.manager.ListJobs(context.Background(), job.Running, 0)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No workers currently running")
		return nil
	}
	fmt.Printf("Found %d running job(s)\n", len(jobs))
	fmt.Println("To stop workers, use Ctrl+C in the worker terminal")
	fmt.Println("Workers will complete current jobs before stopping")
	return nil
}
