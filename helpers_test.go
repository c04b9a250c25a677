package vector

import "fmt"

// faultyAllocator is a HeapAllocator that fails its failAt-th allocation
// request (1-based). Zero never fails.
type faultyAllocator[T any] struct {
	failAt int
	calls  int
	frees  int
}

func (f *faultyAllocator[T]) fail() bool {
	f.calls++
	return f.calls == f.failAt
}

func (f *faultyAllocator[T]) Allocate(n int) ([]T, error) {
	if f.fail() {
		return nil, fmt.Errorf("%w: injected at call %d", ErrOutOfMemory, f.calls)
	}
	return HeapAllocator[T]{}.Allocate(n)
}

func (f *faultyAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	if f.fail() {
		return buf, fmt.Errorf("%w: injected at call %d", ErrOutOfMemory, f.calls)
	}
	return HeapAllocator[T]{}.Reallocate(buf, n)
}

func (f *faultyAllocator[T]) Free(buf []T) {
	if buf != nil {
		f.frees++
	}
}

// ledger records lifecycle hook calls of the test element types.
type ledger struct {
	destroyed map[int]int
	live      int
	copies    int
	moves     int
}

func newLedger() *ledger {
	return &ledger{destroyed: map[int]int{}}
}

// resource has teardown but no copy or move hook.
type resource struct {
	id int
	l  *ledger
}

func (r *resource) Destroy() { r.l.destroyed[r.id]++ }

// deep owns a buffer that must be duplicated on copy.
type deep struct {
	id   int
	data []int
	l    *ledger
}

func newDeep(l *ledger, id int, data ...int) deep {
	l.live++
	return deep{id: id, data: data, l: l}
}

func (d *deep) CopyTo(dst *deep) {
	d.l.live++
	d.l.copies++
	*dst = deep{id: d.id, data: append([]int(nil), d.data...), l: d.l}
}

func (d *deep) Destroy() {
	d.l.live--
	d.l.destroyed[d.id]++
}

func (d *deep) Equal(o *deep) bool { return d.id == o.id }

// unique can only be moved.
type unique struct {
	id int
	l  *ledger
}

func (u *unique) MoveTo(dst *unique) {
	u.l.moves++
	*dst = *u
	*u = unique{}
}

// point is plain data.
type point struct {
	X, Y int32
}

func ints(v *Vector[int]) []int {
	return append([]int(nil), v.Slice()...)
}

func fill(v *Vector[int], vals ...int) {
	for _, x := range vals {
		if err := v.Append(x); err != nil {
			panic(err)
		}
	}
}
