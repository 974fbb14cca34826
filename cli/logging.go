package cli

import (
	"strings"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/config"
)

// configureLogging wires config.Config's log_level/log_file into l3,
// the logging library the rest of queuectl's packages use.
//
// l3.Get() caches one Logger per calling package the first time it is
// called, and most of queuectl's packages obtain theirs in a
// package-level var (e.g. store.log, queue.jmLog) — initialized before
// main ever runs, using whatever l3.Configure set at process
// load from its own GC_LOG_* environment convention. Calling
// configureLogging here cannot retroactively change those already-
// cached loggers' levels; it governs the CLI's own logger and any
// logger obtained lazily after this call. Operators who need the
// store/queue/dashboard packages' level changed should set l3's native
// GC_LOG_DEF_LEVEL/GC_LOG_CONFIG_FILE env vars before invoking
// queuectl, same as any other l3-based golly application.
func configureLogging(cfg config.Config, quiet bool) {
	level := strings.ToUpper(cfg.LogLevel)
	if quiet {
		level = "OFF"
	}
	if _, ok := l3.LevelsMap[level]; !ok {
		level = "INFO"
	}
	l3.Configure(&l3.LogConfig{
		Format:     "text",
		DefaultLvl: level,
		Writers: []*l3.WriterConfig{
			{
				File: &l3.FileConfig{
					DefaultPath: cfg.LogFile,
					RollType:    "SIZE",
					MaxSize:     10 * 1024 * 1024,
				},
			},
			{
				Console: &l3.ConsoleConfig{},
			},
		},
	})
}
