package vector

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ensure makes room for extra more elements, taking one growth step through
// the policy if the buffer is full.
func (v *Vector[T]) ensure(extra int) error {
	required := v.size + extra
	if required <= len(v.buf) {
		return nil
	}
	newCap := max(v.growth.Grow(len(v.buf), required), required)
	return v.resize(newCap, "grow")
}

// Reserve grows capacity to at least Len()+n in a single step. It never
// shrinks. On failure the vector is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	v.lazyInit()
	if n < 0 {
		return fmt.Errorf("%w: reserve %d", ErrIndexOutOfRange, n)
	}
	if n > math.MaxInt-v.size {
		return fmt.Errorf("%w: reserve %d beyond %d live elements", ErrOutOfMemory, n, v.size)
	}
	if v.size+n <= len(v.buf) {
		return nil
	}
	return v.resize(v.size+n, "reserve")
}

// Fit shrinks capacity to exactly Len(). An empty vector releases its
// buffer. On failure the vector is unchanged.
func (v *Vector[T]) Fit() error {
	v.lazyInit()
	if len(v.buf) == v.size {
		return nil
	}
	return v.resize(v.size, "fit")
}

// resize moves the live elements into a buffer of exactly newCap slots.
// newCap is never below size. The vector's fields are only updated once the
// allocator has succeeded.
func (v *Vector[T]) resize(newCap int, reason string) error {
	oldCap := len(v.buf)

	if newCap == 0 {
		v.alloc.Free(v.buf)
		v.buf = nil
		v.shrinks++
		v.gen++
		v.log.Debug("buffer released", zap.String("reason", reason), zap.Int("old_capacity", oldCap))
		return nil
	}

	var buf []T
	var err error
	if v.traits.Relocation == BitwiseCopy {
		// Trailing slots are already zero, so the byte-preserving resize
		// leaves no stale values behind.
		buf, err = v.alloc.Reallocate(v.buf, newCap)
	} else {
		buf, err = v.alloc.Allocate(newCap)
		if err == nil {
			v.traits.transfer(buf[:v.size], v.buf[:v.size])
			v.alloc.Free(v.buf)
		}
	}
	if err != nil {
		v.growFailures++
		v.log.Warn("allocation failed",
			zap.String("reason", reason),
			zap.Int("size", v.size),
			zap.Int("capacity", oldCap),
			zap.Int("requested", newCap),
			zap.Error(err))
		return fmt.Errorf("vector: %s to %d slots: %w", reason, newCap, err)
	}

	v.buf = buf
	v.gen++
	if newCap > oldCap {
		v.grows++
	} else {
		v.shrinks++
	}
	v.log.Debug("buffer resized",
		zap.String("reason", reason),
		zap.String("policy", PolicyName(v.growth)),
		zap.Int("size", v.size),
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", newCap))
	return nil
}
