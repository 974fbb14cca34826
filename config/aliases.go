package config

import "strings"

// Canonical key names, matching SPEC_FULL.md §6.3's "Canonical" column.
const (
	KeyMaxRetries   = "default_max_retries"
	KeyBackoffBase  = "backoff_base"
	KeyPollInterval = "poll_interval"
	KeyTimeout      = "default_timeout"
	KeyDBPath       = "db_path"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
)

// aliasToCanonical maps every CLI alias (and the canonical key itself)
// to its canonical name. Restricted to the explicit table in
// SPEC_FULL.md §6.3 — no fuzzy matching, per spec.md §9's design note
// rejecting the original's "resembles" heuristic.
var aliasToCanonical = map[string]string{
	"max-retries":   KeyMaxRetries,
	"max_retries":   KeyMaxRetries,
	KeyMaxRetries:   KeyMaxRetries,
	"backoff-base":  KeyBackoffBase,
	KeyBackoffBase:  KeyBackoffBase,
	"poll-interval": KeyPollInterval,
	KeyPollInterval: KeyPollInterval,
	"timeout":       KeyTimeout,
	KeyTimeout:      KeyTimeout,
	"db-path":       KeyDBPath,
	KeyDBPath:       KeyDBPath,
	"log-level":     KeyLogLevel,
	KeyLogLevel:     KeyLogLevel,
	"log-file":      KeyLogFile,
	KeyLogFile:      KeyLogFile,
}

// Canonicalize resolves a CLI-facing key (an alias or the canonical
// name, in any of - or _ separated form) to its canonical name. The
// second return is false if key is not a recognized configuration key
// at all, in which case callers should report an InvalidInput error
// rather than guess.
func Canonicalize(key string) (string, bool) {
	if canonical, ok := aliasToCanonical[key]; ok {
		return canonical, true
	}
	// also accept the opposite separator style for keys not already
	// covered verbatim above.
	normalized := strings.ReplaceAll(key, "-", "_")
	if canonical, ok := aliasToCanonical[normalized]; ok {
		return canonical, true
	}
	return "", false
}

// isNumeric reports whether the canonical key holds a numeric value,
// used by Store.Set to decide how to parse the raw CLI string.
func isNumeric(canonical string) bool {
	switch canonical {
	case KeyMaxRetries, KeyBackoffBase, KeyTimeout:
		return true
	default:
		return false
	}
}

func isDecimal(canonical string) bool {
	return canonical == KeyPollInterval
}
