package queue

import (
	"time"
)

// runAtLayouts are the timestamp formats ParseRunAt accepts, broadest
// first. The original implementation leaned on a permissive date
// parser; queuectl restricts itself to a short, explicit list of
// unambiguous layouts rather than porting that fuzziness.
var runAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRunAt parses a --run-at flag value into a UTC time. It returns
// ErrBadSchedule if s matches none of the accepted layouts.
//
// Enqueue never calls this; it takes an already parsed time. The CLI's
// enqueue command calls it for --run-at, and on ErrBadSchedule it logs
// a warning and enqueues the Job pending, without a schedule.
func ParseRunAt(s string) (*time.Time, error) {
	for _, layout := range runAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}
	return nil, ErrBadSchedule
}
