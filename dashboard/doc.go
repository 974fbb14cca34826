// Package dashboard implements the read-only monitoring HTTP surface
// described in SPEC_FULL.md §4.6 and §6.4: GET /api/stats, GET
// /api/jobs (up to 50 recent jobs) and GET / (a polling HTML page).
//
// dashboard is deliberately built on stdlib net/http rather than the
// pack's rest/server framework — see DESIGN.md for why three read-only
// handlers with no routing or middleware needs don't justify pulling
// in a web framework.
package dashboard
