package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	gcli "oss.nandlabs.io/golly/cli"
	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/queue"
)

// newWorkerRunCommand builds the hidden `__worker-run` subcommand:
// queue.WorkerPool re-execs this binary with this subcommand (argv
// built by its ChildArgs) to spawn one Worker per OS process, per SPEC_FULL.md
// §4.4. It is never documented to end users — there is no "worker
// run" entry in spec.md §6.1 — it exists purely as the pool's
// supervised child entrypoint.
func newWorkerRunCommand() *gcli.Command {
	cmd := gcli.NewCommand("__worker-run", "internal: run a single worker loop", version, runWorkerRun)
	cmd.Flags = []*gcli.Flag{
		{Name: "id", Usage: "Worker identifier", Default: "worker-1"},
		{Name: "backoff-base", Usage: "Exponential backoff base override", Default: ""},
	}
	return cmd
}

func runWorkerRun(ctx *gcli.Context) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}

	manager := rt.manager
	if v, ok := ctx.GetFlag("backoff-base"); ok && v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n <= 0 {
			return fmt.Errorf("__worker-run: invalid --backoff-base %q", v)
		}
		manager = queue.NewManager(rt.st, rt.cfg.DBPath+".lock", uint32(n), queue.SystemClock{})
	}

	id := "worker-1"
	if v, ok := ctx.GetFlag("id"); ok && v != "" {
		id = v
	}

	log := l3.Get()
	w := queue.NewWorker(id, manager, rt.pollInterval(), rt.cfg.DefaultTimeout, log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(runCtx); err != nil {
		return err
	}

	<-sig
	// Cooperative shutdown: Worker finishes its in-flight job (if any)
	// before the loop exits; it is never interrupted mid-execution.
	return w.Stop(queue.GraceTimeout)
}
