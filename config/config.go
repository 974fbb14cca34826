package config

import (
	"time"

	golly "oss.nandlabs.io/golly/config"
)

// Compiled defaults, the lowest layer of SPEC_FULL.md §6.3's
// precedence chain.
const (
	DefaultMaxRetries   = 3
	DefaultBackoffBase  = 2
	DefaultPollInterval = 1.0
	DefaultTimeout      = 300
	DefaultDBPath       = "data/jobs.json"
	DefaultLogLevel     = "INFO"
	DefaultLogFile      = "data/queuectl.log"
)

// Config is the fully resolved runtime configuration queuectl's
// components are built from. Its fields are canonical Go types
// (time.Duration, not a raw float of seconds) even though the
// persisted and environment representations are plain numbers.
type Config struct {
	DefaultMaxRetries uint32
	BackoffBase       uint32
	PollInterval      time.Duration
	DefaultTimeout    int
	DBPath            string
	LogLevel          string
	LogFile           string
}

// Load resolves a Config from compiled defaults, then environment
// variables, then the persisted config.json held by store (a *Store
// previously opened with Open; conventionally db_path's sibling).
// Process-level CLI overrides (e.g. `worker start --backoff-base`) are
// applied by the caller after Load returns — see runWorkerStart in
// cli/cmd_worker.go and runWorkerRun in cli/workerrun.go.
func Load(store *Store) Config {
	cfg := Config{
		DefaultMaxRetries: uint32(envInt("QUEUECTL_MAX_RETRIES", DefaultMaxRetries)),
		BackoffBase:       uint32(envInt("QUEUECTL_BACKOFF_BASE", DefaultBackoffBase)),
		PollInterval:      durationFromSeconds(envDecimal("QUEUECTL_POLL_INTERVAL", DefaultPollInterval)),
		DefaultTimeout:    envInt("QUEUECTL_TIMEOUT", DefaultTimeout),
		DBPath:            golly.GetEnvAsString("QUEUECTL_DB_PATH", DefaultDBPath),
		LogLevel:          golly.GetEnvAsString("QUEUECTL_LOG_LEVEL", DefaultLogLevel),
		LogFile:           golly.GetEnvAsString("QUEUECTL_LOG_FILE", DefaultLogFile),
	}
	if store == nil {
		return cfg
	}
	if v, ok := store.getInt(KeyMaxRetries); ok {
		cfg.DefaultMaxRetries = uint32(v)
	}
	if v, ok := store.getInt(KeyBackoffBase); ok {
		cfg.BackoffBase = uint32(v)
	}
	if v, ok := store.getFloat(KeyPollInterval); ok {
		cfg.PollInterval = durationFromSeconds(v)
	}
	if v, ok := store.getInt(KeyTimeout); ok {
		cfg.DefaultTimeout = v
	}
	if v, ok := store.getString(KeyDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := store.getString(KeyLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := store.getString(KeyLogFile); ok {
		cfg.LogFile = v
	}
	return cfg
}

func durationFromSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func envInt(key string, def int) int {
	v, err := golly.GetEnvAsInt(key, def)
	if err != nil {
		return def
	}
	return v
}

func envDecimal(key string, def float64) float64 {
	v, err := golly.GetEnvAsDecimal(key, def)
	if err != nil {
		return def
	}
	return v
}
