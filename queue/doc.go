// Package queue implements the job lifecycle engine of queuectl: the
// durable job store's client, the atomic claim protocol, the
// priority+schedule ordered selection policy, the retry/backoff/DLQ
// state machine, and the worker scheduling loop.
//
// # Overview
//
// queue separates the durable document (package store) from the state
// machine enforced over it (JobManager) and from the execution loop
// that drives jobs through that machine (Worker, WorkerPool).
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	scheduled -> pending           (run_at elapses, claim promotes)
//	pending   -> running           (claim)
//	running   -> completed
//	running   -> failed
//	failed    -> pending           (reset_for_retry, retry_after elapsed)
//	failed    -> dlq               (attempts exhausted)
//	pending/scheduled -> cancelled
//	failed/dlq -> pending          (retry_job, admin action)
//
// completed, dlq and cancelled are terminal. CancelJob, ResetForRetry
// and RetryJob check the current state, and RetryJob is the only one
// that moves a Job out of dlq. MarkCompleted and MarkFailed do not
// check the state: they update whichever Job has the given id, which in
// Worker's loop is always the running Job it just claimed.
//
// # Retry Policy
//
// On failure, JobManager computes retry_after = now + backoff_base^attempts
// (integer exponentiation, no jitter). A Job never moves from failed
// back to pending on its own; Worker calls GetRetryableJobs and
// ResetForRetry to re-admit it before the next claim.
//
// # Worker
//
// Worker runs a strictly serial loop inside a single OS process:
// promote retryables, claim, execute, record. It does not guarantee
// exactly-once execution of a command — a crashed worker leaves its
// Job stranded in running (see WorkerPool for process-level
// supervision, which does not recover stranded Jobs either; this is an
// explicit non-goal).
//
// # Concurrency Model
//
// WorkerPool runs N Workers as independent OS processes, each
// internally single-threaded. Workers share state only through
// store.Store, guarded by a cross-process advisory file lock
// (internal.FileLock) held around every mutating JobManager operation.
//
// # Storage Expectations
//
// JobManager assumes store.Store provides atomic full-document
// replacement (write-temp-then-rename with fsync) and tolerates a
// missing or corrupt file as an empty document.
package queue
