package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
)

// Enqueuer is the write-side entry point of the queue.
type Enqueuer interface {
	// Enqueue admits a new Job. runAt and timeout are optional (nil
	// means "not set"). A runAt that fails to parse upstream of this
	// call is the caller's concern; Enqueue itself takes an already
	// resolved *time.Time so it never needs to guess a format.
	//
	// If runAt is non-nil, the Job is created in state scheduled (Claim
	// promotes it once run_at has passed); otherwise it is pending.
	Enqueue(ctx context.Context, command string, priority int, maxRetries uint32, timeout *int, runAt *time.Time) (*job.Job, error)
}

// Claimer manages the claim/execute/complete lifecycle of a Job.
// Implementations must provide at-most-one-claim semantics even across
// independent OS processes.
type Claimer interface {
	// Claim atomically selects and transitions the highest-priority,
	// oldest eligible Job to running, assigning it to workerId. It
	// returns (nil, nil) if no Job is eligible.
	Claim(ctx context.Context, workerId string) (*job.Job, error)

	// MarkCompleted transitions a running Job to completed.
	MarkCompleted(ctx context.Context, id uuid.UUID, output string, executionTime float64) error

	// MarkFailed transitions a running Job to failed or dlq depending
	// on whether attempts have been exhausted.
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error

	// GetRetryableJobs returns every failed Job whose retry_after has
	// elapsed.
	GetRetryableJobs(ctx context.Context) ([]*job.Job, error)

	// ResetForRetry transitions a failed Job back to pending, clearing
	// error and retry_after and preserving attempts. It is the
	// non-admin counterpart to RetryJob, used by Worker to re-admit
	// Jobs found by GetRetryableJobs.
	ResetForRetry(ctx context.Context, id uuid.UUID) error

	// RetryJob is the admin action: valid only from failed or dlq,
	// resets to pending with attempts=0 and clears error/retry_after.
	// Returns false if the Job was not in a retryable state.
	RetryJob(ctx context.Context, id uuid.UUID) (bool, error)

	// CancelJob is valid only from pending or scheduled; transitions to
	// cancelled. Returns false if the Job could not be cancelled.
	CancelJob(ctx context.Context, id uuid.UUID) (bool, error)
}

// Observer provides read-only access to Jobs. It never mutates state.
type Observer interface {
	// GetJob returns the Job identified by id, or (nil, nil) if no such
	// Job exists.
	GetJob(ctx context.Context, id uuid.UUID) (*job.Job, error)

	// ListJobs returns up to limit Jobs, optionally filtered to an
	// exact state, sorted higher-priority-first and newest-first among
	// equal priorities. A limit <= 0 means "no cap".
	ListJobs(ctx context.Context, status job.Status, limit int) ([]*job.Job, error)

	// GetStats returns aggregate counts and derived metrics over every
	// Job currently in the store.
	GetStats(ctx context.Context) (*Stats, error)
}

// Cleaner permanently removes completed Jobs from the store.
type Cleaner interface {
	// PurgeCompleted removes every Job in state completed and returns
	// the number removed. It is idempotent: calling it twice in a row
	// returns 0 the second time.
	PurgeCompleted(ctx context.Context) (int, error)
}

// JobManager is the full surface consumed by the Worker, the CLI and
// the dashboard.
type JobManager interface {
	Enqueuer
	Claimer
	Observer
	Cleaner
}
