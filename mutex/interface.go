package mutex

import "errors"

// Locker is the error-returning counterpart of sync.Locker
type Locker interface {
	// Lock acquires the lock, blocking until it is available
	Lock() error

	// Unlock releases the lock held by the caller
	Unlock() error
}

var _ Locker = (*Mutex)(nil)

// WithLock runs task while holding l.
// The lock is released even if task fails; both errors are returned
func WithLock(l Locker, task func() error) error {
	if err := l.Lock(); err != nil {
		return err
	}

	taskErr := task()
	if err := l.Unlock(); err != nil {
		return errors.Join(taskErr, err)
	}
	return taskErr
}
