package job

import (
	"time"

	"github.com/google/uuid"
)

// Job is the single aggregate entity of the queue: a shell command plus
// its scheduling and retry metadata, identified by a unique id.
//
// Id, Command and Priority are set at enqueue time and are immutable
// thereafter. Status is the sole mutable lifecycle field; every other
// mutable field is written only as a side effect of a Status
// transition, per the state machine documented on Status.
//
// Optional fields (Timeout, RunAt, StartedAt, CompletedAt, DlqAt,
// CancelledAt, RetryAfter, ExecutionTime and WorkerId) use pointers so
// that "absent" is distinguishable from the zero value, and so the JSON
// document omits them via `omitempty` rather than emitting a misleading
// null/zero. CreatedAt, UpdatedAt, Output and Error are plain values
// and are always written.
//
// A Job value returned by JobManager is a snapshot; mutating it does
// not affect the underlying store. All transitions go through
// JobManager.
type Job struct {
	Id       uuid.UUID `json:"id"`
	Command  string    `json:"command"`
	Status   Status    `json:"state"`
	Priority int       `json:"priority"`

	Attempts   uint32 `json:"attempts"`
	MaxRetries uint32 `json:"max_retries"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Timeout *int `json:"timeout,omitempty"`

	RunAt       *time.Time `json:"run_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DlqAt       *time.Time `json:"dlq_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	RetryAfter  *time.Time `json:"retry_after,omitempty"`

	ExecutionTime *float64 `json:"execution_time,omitempty"`
	WorkerId      *string  `json:"worker_id,omitempty"`

	Output string `json:"output"`
	Error  string `json:"error"`
}

// Clone returns a deep copy of j, so that callers mutating the result
// cannot corrupt the store's view or another caller's snapshot.
func (j *Job) Clone() *Job {
	cp := *j
	if j.Timeout != nil {
		v := *j.Timeout
		cp.Timeout = &v
	}
	if j.RunAt != nil {
		v := *j.RunAt
		cp.RunAt = &v
	}
	if j.StartedAt != nil {
		v := *j.StartedAt
		cp.StartedAt = &v
	}
	if j.CompletedAt != nil {
		v := *j.CompletedAt
		cp.CompletedAt = &v
	}
	if j.DlqAt != nil {
		v := *j.DlqAt
		cp.DlqAt = &v
	}
	if j.CancelledAt != nil {
		v := *j.CancelledAt
		cp.CancelledAt = &v
	}
	if j.RetryAfter != nil {
		v := *j.RetryAfter
		cp.RetryAfter = &v
	}
	if j.ExecutionTime != nil {
		v := *j.ExecutionTime
		cp.ExecutionTime = &v
	}
	if j.WorkerId != nil {
		v := *j.WorkerId
		cp.WorkerId = &v
	}
	return &cp
}
