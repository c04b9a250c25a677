package vector

import (
	"fmt"
	"iter"
)

// At returns the element at i. It panics if i is out of range, like slice
// indexing; use Get for a checked lookup.
func (v *Vector[T]) At(i int) T {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d]", i, v.size))
	}
	return v.buf[i]
}

// Get returns the element at i or ErrIndexOutOfRange.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, fmt.Errorf("%w: get %d, len %d", ErrIndexOutOfRange, i, v.size)
	}
	return v.buf[i], nil
}

// Ref returns the address of the element at i. The pointer is only valid
// until the next mutating call. It panics if i is out of range.
func (v *Vector[T]) Ref(i int) *T {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d]", i, v.size))
	}
	return &v.buf[i]
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[0], nil
}

// Back returns the last element.
func (v *Vector[T]) Back() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[v.size-1], nil
}

// Slice returns the live elements as a slice sharing the vector's buffer.
// It is only valid until the next mutating call.
func (v *Vector[T]) Slice() []T {
	return v.buf[:v.size:v.size]
}

// All yields index/value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// IndexOf returns the index of the first element equal to val, or NotFound.
// It returns NotFound when the element type has no equality, including
// interface-holding types whose stored dynamic values cannot be compared
// with ==; use Contains or Lookup's error to tell the cases apart.
func (v *Vector[T]) IndexOf(val T) int {
	i, _ := v.find(&val)
	return i
}

// Contains reports whether an element equal to val is present.
func (v *Vector[T]) Contains(val T) (bool, error) {
	i, err := v.find(&val)
	return i != NotFound, err
}

// IndexOfRef returns the index of the live slot p points at, or NotFound.
func (v *Vector[T]) IndexOfRef(p *T) int {
	if p == nil {
		return NotFound
	}
	for i := 0; i < v.size; i++ {
		if &v.buf[i] == p {
			return i
		}
	}
	return NotFound
}

func (v *Vector[T]) find(val *T) (idx int, err error) {
	v.lazyInit()
	eq := v.traits.Equal
	if eq == nil {
		return NotFound, ErrNoEquality
	}
	defer func() {
		if r := recover(); r != nil {
			u, ok := r.(uncomparable)
			if !ok {
				panic(r)
			}
			idx, err = NotFound, fmt.Errorf("%w: %v", ErrNoEquality, u.cause)
		}
	}()
	for i := 0; i < v.size; i++ {
		if eq(&v.buf[i], val) {
			return i, nil
		}
	}
	return NotFound, nil
}
