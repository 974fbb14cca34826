package cli

import "strings"

// isFlagToken reports whether tok looks like a flag per golly/cli's
// own args.go classification: anything prefixed with "-" or "--".
func isFlagToken(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// flagKey strips a leading "--" or "-" and any "=value" suffix from a
// flag token, returning the bare flag name.
func flagKey(tok string) string {
	k := strings.TrimPrefix(strings.TrimPrefix(tok, "--"), "-")
	if idx := strings.Index(k, "="); idx != -1 {
		k = k[:idx]
	}
	return k
}

// positionals recovers the non-flag operands golly/cli's Context
// drops on the floor. golly/cli.CLI.Execute consumes os.Args directly
// and exposes only named flags through Context.Flags — there is no API
// for the positional command/job_id arguments queuectl's subcommands
// need. positionals re-derives them by walking the same argv with the
// same flag/alias classification Execute performs: path is the
// sequence of command names that led to the running action (e.g.
// ["enqueue"] or ["worker", "start"]), and known is the set of flag
// names (and aliases) registered on that command, used to decide
// whether a "-x"/"--x" token consumes the following token as its
// value or stands alone.
func positionals(argv []string, path []string, known map[string]bool) []string {
	rest := argv
	for _, name := range path {
		for len(rest) > 0 && rest[0] != name {
			rest = rest[1:]
		}
		if len(rest) > 0 {
			rest = rest[1:]
		}
	}

	var out []string
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if !isFlagToken(tok) {
			out = append(out, tok)
			continue
		}
		if tok == "--help" || tok == "-h" || tok == "--version" || tok == "-v" {
			continue
		}
		key := flagKey(tok)
		if !known[key] {
			// Unrecognized flag: golly/cli passes it through untouched
			// and never treats the next token as its value.
			continue
		}
		if strings.Contains(tok, "=") {
			continue
		}
		if i+1 < len(rest) && !isFlagToken(rest[i+1]) {
			i++ // skip the value token consumed by this flag
		}
	}
	return out
}
