package queue

import "errors"

// Sentinel errors for the InvalidInput error kind: malformed input,
// unknown job id, or an illegal state transition requested by a
// caller. None of these mutate any Job.
var (
	// ErrJobNotFound is returned when a mutating operation is given an
	// id that does not exist in the store. GetJob reports an unknown id
	// as (nil, nil) instead.
	ErrJobNotFound = errors.New("queue: job not found")

	// ErrInvalidTransition names an admin action attempted from a state
	// that does not permit it: CancelJob from anything but
	// pending/scheduled, or RetryJob from anything but failed/dlq.
	// Manager's CancelJob and RetryJob report that case by returning
	// false with a nil error, not by returning this value.
	ErrInvalidTransition = errors.New("queue: invalid state transition")

	// ErrBadSchedule is returned by ParseRunAt when a run_at string
	// does not parse as a timestamp. Enqueue itself never returns this;
	// it takes an already parsed time. The CLI's enqueue command treats
	// it as non-fatal: it logs a warning and enqueues the job pending,
	// without a schedule.
	ErrBadSchedule = errors.New("queue: invalid run_at timestamp")
)
