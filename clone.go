package vector

import (
	"fmt"

	"go.uber.org/zap"
)

// Clone returns an independent vector with the same elements, allocator,
// growth policy, logger and traits. Capacity of the clone equals Len().
//
// Elements are duplicated with the copy hook when the type has one, and by
// plain assignment for bitwise types. Types that can only be moved, and
// types with teardown but no copy hook, fail with ErrNotCopyable.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.lazyInit()
	tr := v.traits
	if tr.Copy == nil && (tr.Relocation != BitwiseCopy || tr.Destructor == Invoke) {
		return nil, ErrNotCopyable
	}

	c := &Vector[T]{
		id:     vectorIDs.Add(1),
		alloc:  v.alloc,
		growth: v.growth,
		log:    v.log,
		traits: tr,
		ready:  true,
	}
	if v.size == 0 {
		return c, nil
	}
	buf, err := c.alloc.Allocate(v.size)
	if err != nil {
		v.log.Warn("clone allocation failed", zap.Int("size", v.size), zap.Error(err))
		return nil, fmt.Errorf("vector: clone of %d elements: %w", v.size, err)
	}
	if tr.Copy != nil {
		for i := 0; i < v.size; i++ {
			tr.Copy(&buf[i], &v.buf[i])
		}
	} else {
		copy(buf, v.buf[:v.size])
	}
	c.buf = buf
	c.size = v.size
	return c, nil
}
