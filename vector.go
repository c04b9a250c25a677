// Package vector implements a contiguous, growable sequence container on top
// of a pluggable allocator. Typical usage: create one vector per owner with
// New, fill it with Append or InsertAt, and release it with Reset when done.
package vector

import (
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
)

// Vector is a growable contiguous sequence of T. Not goroutine-safe.
//
// A Vector must not be copied by value after first use: the copy would
// share the buffer. Use Clone for an independent copy.
type Vector[T any] struct {
	buf  []T // len(buf) is the capacity
	size int
	gen  uint64
	id   uint64 // owner of the handles this vector issues

	alloc  Allocator[T]
	growth GrowthPolicy
	log    *zap.Logger
	traits Traits[T]
	ready  bool

	grows        uint64
	growFailures uint64
	shrinks      uint64
}

// New creates a vector configured by opts. It fails only when the element
// traits are unsafe; a failed initial allocation from WithCapacity leaves
// the vector empty with capacity 0.
func New[T any](opts ...Option[T]) (*Vector[T], error) {
	var s settings[T]
	for _, opt := range opts {
		opt(&s)
	}
	v := &Vector[T]{}
	if err := v.setup(&s); err != nil {
		return nil, err
	}
	if s.capacity > 0 {
		buf, err := v.alloc.Allocate(s.capacity)
		if err != nil {
			v.growFailures++
			v.log.Warn("initial allocation failed",
				zap.Int("capacity", s.capacity), zap.Error(err))
		} else {
			v.buf = buf
		}
	}
	return v, nil
}

// vectorIDs numbers vectors from 1, so the zero Handle matches none.
var vectorIDs atomic.Uint64

// MustNew is like New but panics on error.
func MustNew[T any](opts ...Option[T]) *Vector[T] {
	v, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// setup resolves the traits and fills in defaults.
func (v *Vector[T]) setup(s *settings[T]) error {
	tr := ResolveTraits[T]()
	if s.traits != nil {
		tr = *s.traits
	}
	for _, edit := range s.edits {
		edit(&tr)
	}
	if err := tr.Validate(); err != nil {
		return err
	}
	v.traits = tr

	v.alloc = s.alloc
	if v.alloc == nil {
		v.alloc = HeapAllocator[T]{}
	}
	v.growth = s.growth
	if v.growth == nil {
		v.growth = GrowByOne()
	}
	v.log = s.logger
	if v.log == nil {
		v.log = zap.NewNop()
	}
	v.id = vectorIDs.Add(1)
	v.ready = true
	return nil
}

// lazyInit makes the zero Vector usable with default settings.
func (v *Vector[T]) lazyInit() {
	if v.ready {
		return
	}
	if err := v.setup(&settings[T]{}); err != nil {
		// Only reachable for types whose resolved traits are invalid,
		// which ResolveTraits never produces.
		panic(err)
	}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

// Traits returns the lifecycle policies the vector dispatches on.
func (v *Vector[T]) Traits() Traits[T] {
	v.lazyInit()
	return v.traits
}

// Growth returns the growth policy in use.
func (v *Vector[T]) Growth() GrowthPolicy {
	v.lazyInit()
	return v.growth
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
