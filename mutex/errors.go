package mutex

import (
	"errors"
	"syscall"

	"github.com/soulteary/mutex-kit/alloc"
)

var (
	// ErrNilHandle indicates an operation was called on a nil *Mutex.
	ErrNilHandle = errors.New("mutex is nil")
	// ErrNoMemory indicates the allocator refused the attribute or the handle.
	ErrNoMemory = errors.New("could not allocate memory")
	// ErrAttrInit indicates the attribute descriptor could not be initialized or released.
	ErrAttrInit = errors.New("could not initialize attribute")
	// ErrAttrType indicates the attribute descriptor rejected the mutex type.
	ErrAttrType = errors.New("could not set attribute type")
	// ErrInit indicates the handle could not be initialized from its attribute.
	ErrInit = errors.New("could not initialize mutex")
	// ErrDeadlock indicates the calling goroutine already holds the mutex.
	ErrDeadlock = errors.New("mutex already held by caller")
	// ErrNotOwner indicates the mutex is unlocked or held by another goroutine.
	ErrNotOwner = errors.New("mutex not held by caller")
	// ErrBusy indicates the mutex is locked and cannot be destroyed.
	ErrBusy = errors.New("mutex is locked")
	// ErrDestroyed indicates the mutex has already been destroyed.
	ErrDestroyed = errors.New("mutex has been destroyed")
)

// Code maps an error returned by this package to its error number.
// It returns 0 for nil and for errors it does not know
func Code(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNoMemory), errors.Is(err, alloc.ErrOutOfMemory):
		return syscall.ENOMEM
	case errors.Is(err, ErrDeadlock):
		return syscall.EDEADLK
	case errors.Is(err, ErrNotOwner):
		return syscall.EPERM
	case errors.Is(err, ErrBusy):
		return syscall.EBUSY
	case errors.Is(err, ErrNilHandle),
		errors.Is(err, ErrAttrInit),
		errors.Is(err, ErrAttrType),
		errors.Is(err, ErrInit),
		errors.Is(err, ErrDestroyed):
		return syscall.EINVAL
	default:
		return 0
	}
}
