package cli

import (
	"os"
	"path/filepath"
	"time"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/config"
	"github.com/HariniKartheeswaran/queuectl/queue"
	"github.com/HariniKartheeswaran/queuectl/store"
)

// configDocPath is the fixed location of the persisted configuration
// layer, per SPEC_FULL.md §6.3 / §6.1's `config set`/`config get`.
const configDocPath = "data/config.json"

// runtime bundles everything a command action needs: the resolved
// Config, the durable job store and the Manager built over it.
type runtime struct {
	cfg     config.Config
	st      *store.Store
	manager *queue.Manager
}

// newRuntime resolves configuration (defaults -> env -> config.json)
// and opens the job store and Manager at cfg.DBPath. quiet silences
// all logging for the duration of the process, per the `enqueue
// --quiet` contract.
func newRuntime(quiet bool) (*runtime, error) {
	cfgStore, err := config.Open(configDocPath)
	if err != nil {
		return nil, err
	}
	cfg := config.Load(cfgStore)

	if !quiet {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			l3.Get().Warn("cli: could not create log directory", "err", err)
		}
	}
	configureLogging(cfg, quiet)

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	manager := queue.NewManager(st, cfg.DBPath+".lock", cfg.BackoffBase, queue.SystemClock{})
	return &runtime{cfg: cfg, st: st, manager: manager}, nil
}

// pollInterval exposes cfg.PollInterval with the compiled-default
// fallback, for callers that only need a time.Duration.
func (rt *runtime) pollInterval() time.Duration {
	if rt.cfg.PollInterval <= 0 {
		return time.Duration(config.DefaultPollInterval * float64(time.Second))
	}
	return rt.cfg.PollInterval
}
