package cli

// quietJSONRequested reports whether argv looks like an `enqueue ...
// --quiet` (or `-q`) invocation, so logging can be silenced before the
// JobManager is constructed and its JSON output is never interleaved
// with log lines. Grounded on original_source/queuectl.py's
// `_quiet_json_requested`, which performs the same argv pre-scan ahead
// of building its JobManager.
func quietJSONRequested(argv []string) bool {
	idx := -1
	for i, a := range argv {
		if a == "enqueue" {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	for _, a := range argv[idx+1:] {
		if a == "--quiet" || a == "-q" {
			return true
		}
	}
	return false
}
