package mutex

import (
	"fmt"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/petermattis/goid"
	"github.com/soulteary/mutex-kit/alloc"
	"github.com/soulteary/mutex-kit/diag"
)

// Options configures a new Mutex. The zero value is ready to use
type Options struct {
	// Sink receives diagnostics for every failure (default: diag.Standard())
	Sink diag.Sink

	// Allocator backs the attribute and the handle (default: alloc.Heap{})
	Allocator alloc.Allocator
}

// Mutex is an error-checked mutual exclusion lock.
//
// Ownership is tracked per goroutine: relocking by the holder, unlocking by
// anyone but the holder and closing while locked are all reported as errors
// instead of deadlocking, panicking or corrupting state. Every failure is
// also sent to the configured diag.Sink exactly once.
//
// A Mutex must be created with New or NewWithOptions and released with
// Close once it is no longer needed. It must not be copied.
type Mutex struct {
	mu    sync.Mutex
	owner atomic.Int64 // goroutine id of the holder, 0 when unlocked
	dead  atomic.Bool
	typ   Type
	sink  diag.Sink
	alloc alloc.Allocator
}

// New creates an error-checked mutex that reports to diag.Standard()
func New() (*Mutex, error) {
	return NewWithOptions(Options{})
}

// NewWithSink creates an error-checked mutex that reports to sink
func NewWithSink(sink diag.Sink) (*Mutex, error) {
	return NewWithOptions(Options{Sink: sink})
}

// NewWithOptions creates an error-checked mutex.
// On failure no handle is returned and nothing allocated is left behind
func NewWithOptions(opts Options) (*Mutex, error) {
	sink := opts.Sink
	if sink == nil {
		sink = diag.Standard()
	}
	a := opts.Allocator
	if a == nil {
		a = alloc.Heap{}
	}

	at, err := newAttr(a, sink)
	if err != nil {
		return nil, err
	}

	if err := a.Alloc(alloc.KindHandle); err != nil {
		report(sink, syscall.ENOMEM, "could not allocate memory for mutex")
		// destroyAttr reports its own failures
		_ = destroyAttr(at, sink)
		return nil, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}

	m := &Mutex{sink: sink, alloc: a}
	if err := initHandle(m, at); err != nil {
		report(sink, Code(err), "could not initialize mutex")
		// destroyAttr reports its own failures
		_ = destroyAttr(at, sink)
		a.Free(alloc.KindHandle)
		return nil, err
	}

	if err := destroyAttr(at, sink); err != nil {
		a.Free(alloc.KindHandle)
		return nil, err
	}

	return m, nil
}

// Creation steps, swapped in tests to reach their failure paths
var (
	initHandle  = (*Mutex).init
	destroyAttr = (*attr).destroy
)

func (m *Mutex) init(at *attr) error {
	if at == nil || !at.initialized {
		return fmt.Errorf("%w: attribute not initialized", ErrInit)
	}
	if at.typ != TypeErrorCheck {
		return fmt.Errorf("%w: unsupported %s", ErrInit, at.typ)
	}
	m.typ = at.typ
	return nil
}

// Type returns the behavior the mutex was configured with
func (m *Mutex) Type() Type {
	if m == nil {
		return 0
	}
	return m.typ
}

// Lock blocks until the calling goroutine holds the mutex.
// It fails without blocking when m is nil, destroyed, or already held by
// the caller
func (m *Mutex) Lock() error {
	if m == nil {
		report(diag.Standard(), syscall.EINVAL, "could not lock mutex as it is nil")
		return ErrNilHandle
	}
	if m.dead.Load() {
		m.report(syscall.EINVAL, "could not lock mutex as it has been destroyed")
		return ErrDestroyed
	}

	id := goid.Get()
	if m.owner.Load() == id {
		m.report(syscall.EDEADLK, "could not lock mutex")
		return ErrDeadlock
	}

	m.mu.Lock()
	m.owner.Store(id)
	return nil
}

// Unlock releases the mutex held by the calling goroutine.
// Unlocking a mutex that is unlocked or held by another goroutine fails and
// leaves it untouched
func (m *Mutex) Unlock() error {
	if m == nil {
		report(diag.Standard(), syscall.EINVAL, "could not unlock mutex as it is nil")
		return ErrNilHandle
	}

	if !m.owner.CompareAndSwap(goid.Get(), 0) {
		m.report(syscall.EPERM, "could not unlock mutex")
		return ErrNotOwner
	}

	m.mu.Unlock()
	return nil
}

// Close destroys the mutex. It refuses while the mutex is locked by anyone,
// including the caller; the mutex then stays locked and usable.
//
// If the mutex was already destroyed, Close fails and the handle is not
// released a second time
func (m *Mutex) Close() error {
	if m == nil {
		report(diag.Standard(), syscall.EINVAL, "could not destroy mutex as it is nil")
		return ErrNilHandle
	}

	// Destroying a locked mutex is undefined, so check without blocking
	if !m.mu.TryLock() {
		m.report(syscall.EBUSY, "could not destroy mutex as it is locked")
		return ErrBusy
	}

	// TryLock took the lock; give it back before tearing down
	m.owner.Store(goid.Get())
	if err := m.Unlock(); err != nil {
		return err
	}

	if !m.dead.CompareAndSwap(false, true) {
		m.report(syscall.EINVAL, "could not destroy mutex")
		return ErrDestroyed
	}

	m.alloc.Free(alloc.KindHandle)
	return nil
}

func (m *Mutex) report(code syscall.Errno, msg string) {
	m.sink.Report(diag.NewRecord(code, diag.Caller(1), msg))
}

func report(sink diag.Sink, code syscall.Errno, msg string) {
	sink.Report(diag.NewRecord(code, diag.Caller(1), msg))
}
