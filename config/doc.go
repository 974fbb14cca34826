// Package config loads and persists queuectl's runtime configuration:
// the seven keys in SPEC_FULL.md §6.3, layered compiled defaults ->
// environment variables -> data/config.json -> process-level CLI
// overrides, lowest precedence first.
//
// Values are read through golly's config.GetEnvAs* helpers for the
// environment layer and through a config.MapAttributes for the
// persisted layer, matching the rest of the pack's config handling.
// Unlike the Python original, aliases are never written to disk: Set
// always stores the canonical key, and Get translates any recognized
// CLI alias to its canonical key before lookup (see aliases.go).
package config
