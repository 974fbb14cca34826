package queue

import "time"

// Clock is a wall-clock time source, injectable so that JobManager
// tests can control "now" precisely instead of racing the real clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

// Now returns the current time in UTC. queuectl stores and compares
// every timestamp in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
