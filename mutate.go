package vector

import "fmt"

// InsertAt inserts val at index i, shifting [i, Len()) one slot right.
// i must be in [0, Len()]. If growth fails the vector is unchanged.
func (v *Vector[T]) InsertAt(i int, val T) error {
	return v.EmplaceAt(i, func(slot *T) { v.traits.construct(slot, &val) })
}

// Append adds val after the last element.
func (v *Vector[T]) Append(val T) error {
	return v.InsertAt(v.size, val)
}

// EmplaceAt opens a zeroed slot at index i and lets init construct the
// element in place. i must be in [0, Len()].
func (v *Vector[T]) EmplaceAt(i int, init func(slot *T)) error {
	v.lazyInit()
	if i < 0 || i > v.size {
		return fmt.Errorf("%w: insert at %d, len %d", ErrIndexOutOfRange, i, v.size)
	}
	if err := v.ensure(1); err != nil {
		return err
	}
	v.traits.shift(v.buf, i+1, i, v.size-i)
	init(&v.buf[i])
	v.size++
	v.gen++
	return nil
}

// Emplace constructs a new last element in place.
func (v *Vector[T]) Emplace(init func(slot *T)) error {
	return v.EmplaceAt(v.size, init)
}

// Set replaces the element at i, tearing down the old value first.
func (v *Vector[T]) Set(i int, val T) error {
	v.lazyInit()
	if i < 0 || i >= v.size {
		return fmt.Errorf("%w: set %d, len %d", ErrIndexOutOfRange, i, v.size)
	}
	v.traits.teardown(v.buf[i : i+1])
	v.traits.construct(&v.buf[i], &val)
	v.gen++
	return nil
}

// RemoveAt tears down the element at i. With ordered set the tail shifts
// left and order is kept; otherwise the last element is moved into slot i.
func (v *Vector[T]) RemoveAt(i int, ordered bool) error {
	v.lazyInit()
	if i < 0 || i >= v.size {
		return fmt.Errorf("%w: remove at %d, len %d", ErrIndexOutOfRange, i, v.size)
	}
	v.removeAt(i, ordered)
	return nil
}

func (v *Vector[T]) removeAt(i int, ordered bool) {
	v.traits.teardown(v.buf[i : i+1])
	last := v.size - 1
	switch {
	case i == last:
	case ordered:
		v.traits.shift(v.buf, i, i+1, last-i)
	default:
		v.traits.relocate(&v.buf[i], &v.buf[last])
	}
	v.size--
	v.gen++
}

// RemoveRange tears down the closed range [i, j] and closes the gap in one
// pass. Requires 0 <= i <= j < Len().
func (v *Vector[T]) RemoveRange(i, j int) error {
	v.lazyInit()
	if i < 0 || i > j || j >= v.size {
		return fmt.Errorf("%w: remove range [%d, %d], len %d", ErrIndexOutOfRange, i, j, v.size)
	}
	v.traits.teardown(v.buf[i : j+1])
	v.traits.shift(v.buf, i, j+1, v.size-j-1)
	v.size -= j - i + 1
	v.gen++
	return nil
}

// Remove removes the first element equal to val and reports whether one
// was found. It fails with ErrNoEquality when T has no equality or when ==
// meets dynamic values that are not comparable.
func (v *Vector[T]) Remove(val T, ordered bool) (bool, error) {
	i, err := v.find(&val)
	if err != nil || i == NotFound {
		return false, err
	}
	v.removeAt(i, ordered)
	return true, nil
}

// RemoveRef removes the element p points at. p must have come from Ref or
// Slice with no mutation since; a stale pointer matches nothing and
// RemoveRef returns false.
func (v *Vector[T]) RemoveRef(p *T, ordered bool) bool {
	i := v.IndexOfRef(p)
	if i == NotFound {
		return false
	}
	v.lazyInit()
	v.removeAt(i, ordered)
	return true
}

// Pop moves the last element out to the caller.
func (v *Vector[T]) Pop() (T, error) {
	v.lazyInit()
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	v.size--
	v.gen++
	return v.traits.take(&v.buf[v.size]), nil
}

// Clear tears down every element. Capacity is kept.
func (v *Vector[T]) Clear() {
	if v.size == 0 {
		return
	}
	v.lazyInit()
	v.traits.teardown(v.buf[:v.size])
	v.size = 0
	v.gen++
}

// Reset clears the vector and releases its buffer.
func (v *Vector[T]) Reset() {
	v.Clear()
	if v.buf == nil {
		return
	}
	v.alloc.Free(v.buf)
	v.buf = nil
	v.gen++
}
