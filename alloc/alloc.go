package alloc

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfMemory indicates the allocator refused a request
var ErrOutOfMemory = errors.New("out of memory")

// Kind identifies what an allocation is for
type Kind int

const (
	// KindAttr is the transient attribute descriptor built during creation
	KindAttr Kind = iota + 1
	// KindHandle is the mutex handle itself
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindAttr:
		return "attr"
	case KindHandle:
		return "handle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Allocator reserves and releases the resources backing a mutex
// Alloc may fail; Free is only called for successful allocations
type Allocator interface {
	Alloc(kind Kind) error
	Free(kind Kind)
}

// Heap is the default allocator, backed by the Go heap
// It never fails and Free is a no-op; the garbage collector reclaims memory
type Heap struct{}

// Alloc implements Allocator.
func (Heap) Alloc(Kind) error { return nil }

// Free implements Allocator.
func (Heap) Free(Kind) {}

// Tracker counts outstanding allocations per kind and can be told to fail
// Suitable for leak checks in tests
type Tracker struct {
	mu          sync.Mutex
	live        map[Kind]int
	allocs      map[Kind]int
	frees       map[Kind]int
	failOn      map[Kind]bool
	doubleFrees int
}

// NewTracker creates a new allocation tracker
func NewTracker() *Tracker {
	return &Tracker{
		live:   make(map[Kind]int),
		allocs: make(map[Kind]int),
		frees:  make(map[Kind]int),
		failOn: make(map[Kind]bool),
	}
}

// FailOn makes every subsequent allocation of kind fail (or succeed again)
func (t *Tracker) FailOn(kind Kind, fail bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failOn[kind] = fail
}

// Alloc implements Allocator.
func (t *Tracker) Alloc(kind Kind) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failOn[kind] {
		return fmt.Errorf("alloc %s: %w", kind, ErrOutOfMemory)
	}
	t.live[kind]++
	t.allocs[kind]++
	return nil
}

// Free implements Allocator.
func (t *Tracker) Free(kind Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live[kind] == 0 {
		t.doubleFrees++
		return
	}
	t.live[kind]--
	t.frees[kind]++
}

// Live returns the number of outstanding allocations of kind
func (t *Tracker) Live(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live[kind]
}

// Allocs returns the number of successful allocations of kind
func (t *Tracker) Allocs(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs[kind]
}

// Frees returns the number of releases of kind
func (t *Tracker) Frees(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees[kind]
}

// Leaked reports the total number of outstanding allocations
func (t *Tracker) Leaked() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := 0
	for _, n := range t.live {
		total += n
	}
	return total
}

// DoubleFrees returns how many Free calls had no matching allocation
func (t *Tracker) DoubleFrees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doubleFrees
}
