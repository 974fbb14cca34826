package internal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileLock is an advisory, cross-process exclusive lock backed by
// flock(2). It serializes mutating access to the job store across the
// CLI process and every worker process in a WorkerPool, none of which
// share memory.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns a FileLock that will lock the file at path. The
// file is created on first Lock if it does not already exist.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the exclusive lock is acquired.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("filelock: open %s: %w", l.path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return fmt.Errorf("filelock: flock %s: %w", l.path, err)
	}
	l.file = f
	return nil
}

// Unlock releases the lock acquired by Lock.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	defer func() {
		l.file.Close()
		l.file = nil
	}()
	return unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
}
