package queue

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/internal"
	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/store"
)

var jmLog = l3.Get()

// Manager is the production JobManager: a thin layer over store.Store
// enforcing every invariant in the data model. It is the only thing in
// this module that mutates a Job.
//
// Via its FileLock, Manager serializes mutations across independent OS
// processes sharing the same store path. The FileLock keeps a single
// open file per Manager and has no in-process mutex, so one Manager
// value is not safe for concurrent mutating calls from several
// goroutines.
type Manager struct {
	store   *store.Store
	lock    *internal.FileLock
	clock   Clock
	backoff Backoff
}

var _ JobManager = (*Manager)(nil)

// NewManager builds a Manager over st, serializing mutations with an
// advisory lock at lockPath (conventionally the store path plus
// ".lock") and computing retry delays as backoffBase^attempts seconds.
func NewManager(st *store.Store, lockPath string, backoffBase uint32, clock Clock) *Manager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Manager{
		store:   st,
		lock:    internal.NewFileLock(lockPath),
		clock:   clock,
		backoff: Backoff{Base: backoffBase},
	}
}

// withLock loads the document, runs fn against it under the
// cross-process lock, and saves the (possibly mutated) document
// before releasing the lock. fn mutates doc.Jobs entries in place;
// Manager never performs partial writes.
func (m *Manager) withLock(fn func(doc *store.Document) error) error {
	if err := m.lock.Lock(); err != nil {
		return err
	}
	defer m.lock.Unlock()
	doc := m.store.Load()
	if err := fn(doc); err != nil {
		return err
	}
	return m.store.Save(doc)
}

// Enqueue implements Enqueuer.
func (m *Manager) Enqueue(
	_ context.Context,
	command string,
	priority int,
	maxRetries uint32,
	timeout *int,
	runAt *time.Time,
) (*job.Job, error) {
	now := m.clock.Now()
	j := &job.Job{
		Id:         uuid.New(),
		Command:    command,
		Status:     job.Pending,
		Priority:   priority,
		MaxRetries: maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if timeout != nil {
		j.Timeout = timeout
	}
	if runAt != nil {
		ra := runAt.UTC()
		j.RunAt = &ra
		j.Status = job.Scheduled
	}
	result := j.Clone()
	err := m.withLock(func(doc *store.Document) error {
		doc.Jobs[j.Id.String()] = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetJob implements Observer.
func (m *Manager) GetJob(_ context.Context, id uuid.UUID) (*job.Job, error) {
	doc := m.store.Load()
	j, ok := doc.Jobs[id.String()]
	if !ok {
		return nil, nil
	}
	return j.Clone(), nil
}

func sortForClaim(jobs []*job.Job) {
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].Priority != jobs[k].Priority {
			return jobs[i].Priority > jobs[k].Priority
		}
		return jobs[i].CreatedAt.Before(jobs[k].CreatedAt)
	})
}

func sortForDisplay(jobs []*job.Job) {
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].Priority != jobs[k].Priority {
			return jobs[i].Priority > jobs[k].Priority
		}
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
}

// ListJobs implements Observer. Results are ordered higher-priority
// first and, among equal priorities, newest first — display ordering,
// distinct from the oldest-first-within-priority order Claim uses.
func (m *Manager) ListJobs(_ context.Context, status job.Status, limit int) ([]*job.Job, error) {
	doc := m.store.Load()
	list := make([]*job.Job, 0, len(doc.Jobs))
	for _, j := range doc.Jobs {
		if status != job.Unknown && j.Status != status {
			continue
		}
		list = append(list, j.Clone())
	}
	sortForDisplay(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// GetStats implements Observer.
func (m *Manager) GetStats(_ context.Context) (*Stats, error) {
	doc := m.store.Load()
	stats := &Stats{}
	var execSum float64
	var execCount int
	for _, j := range doc.Jobs {
		stats.Total++
		switch j.Status {
		case job.Pending:
			stats.Pending++
		case job.Scheduled:
			stats.Scheduled++
		case job.Running:
			stats.Running++
		case job.Completed:
			stats.Completed++
			if j.ExecutionTime != nil {
				execSum += *j.ExecutionTime
				execCount++
			}
		case job.Failed:
			stats.Failed++
		case job.Dlq:
			stats.Dlq++
		case job.Cancelled:
			stats.Cancelled++
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	if execCount > 0 {
		stats.AvgExecutionTime = execSum / float64(execCount)
	}
	return stats, nil
}

// Claim implements Claimer. It promotes every due scheduled Job to
// pending in the same pass and persists those promotions together with
// the claim, not only the one ultimately claimed.
func (m *Manager) Claim(_ context.Context, workerId string) (*job.Job, error) {
	var claimed *job.Job
	err := m.withLock(func(doc *store.Document) error {
		now := m.clock.Now()
		candidates := make([]*job.Job, 0)
		for _, j := range doc.Jobs {
			switch {
			case j.Status == job.Pending:
				candidates = append(candidates, j)
			case j.Status == job.Scheduled && j.RunAt != nil && !j.RunAt.After(now):
				j.Status = job.Pending
				j.UpdatedAt = now
				candidates = append(candidates, j)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		sortForClaim(candidates)
		winner := candidates[0]
		wid := workerId
		winner.Status = job.Running
		winner.WorkerId = &wid
		started := now
		winner.StartedAt = &started
		winner.UpdatedAt = now
		claimed = winner.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// MarkCompleted implements Claimer.
func (m *Manager) MarkCompleted(_ context.Context, id uuid.UUID, output string, executionTime float64) error {
	return m.withLock(func(doc *store.Document) error {
		j, ok := doc.Jobs[id.String()]
		if !ok {
			return ErrJobNotFound
		}
		now := m.clock.Now()
		j.Status = job.Completed
		j.Output = output
		completed := now
		j.CompletedAt = &completed
		et := executionTime
		j.ExecutionTime = &et
		j.UpdatedAt = now
		return nil
	})
}

// MarkFailed implements Claimer: moves a running Job to failed (with a
// computed retry_after) or to dlq once attempts reach max_retries.
func (m *Manager) MarkFailed(_ context.Context, id uuid.UUID, errMsg string) error {
	return m.withLock(func(doc *store.Document) error {
		j, ok := doc.Jobs[id.String()]
		if !ok {
			return ErrJobNotFound
		}
		now := m.clock.Now()
		j.Attempts++
		j.Error = errMsg
		if j.Attempts >= j.MaxRetries {
			j.Status = job.Dlq
			dlqAt := now
			j.DlqAt = &dlqAt
		} else {
			j.Status = job.Failed
			retryAfter := now.Add(m.backoff.Next(j.Attempts))
			j.RetryAfter = &retryAfter
		}
		j.UpdatedAt = now
		return nil
	})
}

// GetRetryableJobs implements Claimer.
func (m *Manager) GetRetryableJobs(_ context.Context) ([]*job.Job, error) {
	doc := m.store.Load()
	now := m.clock.Now()
	var out []*job.Job
	for _, j := range doc.Jobs {
		if j.Status == job.Failed && j.RetryAfter != nil && !j.RetryAfter.After(now) {
			out = append(out, j.Clone())
		}
	}
	return out, nil
}

// ResetForRetry implements Claimer. It is a no-op, not an error, if
// the Job is not currently failed — Worker calls it right after
// GetRetryableJobs, and a concurrent admin RetryJob or CancelJob
// between the two calls is expected to win gracefully.
func (m *Manager) ResetForRetry(_ context.Context, id uuid.UUID) error {
	return m.withLock(func(doc *store.Document) error {
		j, ok := doc.Jobs[id.String()]
		if !ok {
			return ErrJobNotFound
		}
		if j.Status != job.Failed {
			return nil
		}
		now := m.clock.Now()
		j.Status = job.Pending
		j.Error = ""
		j.RetryAfter = nil
		j.UpdatedAt = now
		return nil
	})
}

// RetryJob implements Claimer.
func (m *Manager) RetryJob(_ context.Context, id uuid.UUID) (bool, error) {
	var did bool
	err := m.withLock(func(doc *store.Document) error {
		j, ok := doc.Jobs[id.String()]
		if !ok {
			return ErrJobNotFound
		}
		if j.Status != job.Failed && j.Status != job.Dlq {
			return nil
		}
		now := m.clock.Now()
		j.Status = job.Pending
		j.Attempts = 0
		j.Error = ""
		j.RetryAfter = nil
		j.UpdatedAt = now
		did = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return did, nil
}

// CancelJob implements Claimer.
func (m *Manager) CancelJob(_ context.Context, id uuid.UUID) (bool, error) {
	var did bool
	err := m.withLock(func(doc *store.Document) error {
		j, ok := doc.Jobs[id.String()]
		if !ok {
			return ErrJobNotFound
		}
		if j.Status != job.Pending && j.Status != job.Scheduled {
			return nil
		}
		now := m.clock.Now()
		j.Status = job.Cancelled
		cancelled := now
		j.CancelledAt = &cancelled
		j.UpdatedAt = now
		did = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return did, nil
}

// PurgeCompleted implements Cleaner.
func (m *Manager) PurgeCompleted(_ context.Context) (int, error) {
	var count int
	err := m.withLock(func(doc *store.Document) error {
		for id, j := range doc.Jobs {
			if j.Status == job.Completed {
				delete(doc.Jobs, id)
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	jmLog.Info("purged completed jobs", "count", count)
	return count, nil
}
