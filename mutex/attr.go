package mutex

import (
	"fmt"
	"syscall"

	"github.com/soulteary/mutex-kit/alloc"
	"github.com/soulteary/mutex-kit/diag"
)

// Type is the behavior a mutex is configured with
type Type int

const (
	// TypeErrorCheck detects relocking by the owner, unlocking by a
	// non-owner and destroying while locked. It is the only supported type
	TypeErrorCheck Type = iota + 1
)

func (t Type) String() string {
	if t == TypeErrorCheck {
		return "errorcheck"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// attrType is what New configures every attribute with
var attrType = TypeErrorCheck

// initAttr is swapped in tests to reach the init failure path
var initAttr = (*attr).init

// attr is the transient descriptor used while a Mutex is being created
type attr struct {
	typ         Type
	initialized bool
	alloc       alloc.Allocator
}

// newAttr allocates an attribute and configures it for error checking.
// On failure it reports once to sink and releases what it allocated
func newAttr(a alloc.Allocator, sink diag.Sink) (*attr, error) {
	if err := a.Alloc(alloc.KindAttr); err != nil {
		report(sink, syscall.ENOMEM, "could not allocate memory for attribute")
		return nil, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}

	at := &attr{alloc: a}
	if err := initAttr(at); err != nil {
		report(sink, Code(err), "could not initialize attribute")
		a.Free(alloc.KindAttr)
		return nil, err
	}

	if err := at.setType(attrType); err != nil {
		report(sink, Code(err), "could not set attribute type")
		a.Free(alloc.KindAttr)
		return nil, err
	}

	return at, nil
}

func (at *attr) init() error {
	if at.initialized {
		return fmt.Errorf("%w: already initialized", ErrAttrInit)
	}
	at.initialized = true
	return nil
}

func (at *attr) setType(t Type) error {
	if !at.initialized {
		return fmt.Errorf("%w: attribute not initialized", ErrAttrType)
	}
	if t != TypeErrorCheck {
		return fmt.Errorf("%w: %s", ErrAttrType, t)
	}
	at.typ = t
	return nil
}

// destroy tears the attribute down and returns its memory.
// A failed destroy leaves the memory accounted as live
func (at *attr) destroy(sink diag.Sink) error {
	if at == nil {
		report(sink, 0, "could not destroy attribute as it is nil")
		return fmt.Errorf("%w: attribute is nil", ErrAttrInit)
	}
	if !at.initialized {
		report(sink, syscall.EINVAL, "could not destroy attribute")
		return fmt.Errorf("%w: attribute not initialized", ErrAttrInit)
	}

	at.initialized = false
	at.alloc.Free(alloc.KindAttr)
	return nil
}
