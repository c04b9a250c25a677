package vector

import "fmt"

// Handle names a live element of one vector by index together with the
// mutation generation it was taken at. Any mutation of the vector
// invalidates every outstanding handle, even if the element did not move,
// and a handle is never valid on another vector.
type Handle struct {
	owner uint64
	index int
	gen   uint64
}

// Index returns the index the handle was taken at.
func (h Handle) Index() int {
	return h.index
}

// HandleAt returns a handle for the element at i.
func (v *Vector[T]) HandleAt(i int) (Handle, error) {
	if i < 0 || i >= v.size {
		return Handle{}, fmt.Errorf("%w: handle at %d, len %d", ErrIndexOutOfRange, i, v.size)
	}
	return Handle{owner: v.id, index: i, gen: v.gen}, nil
}

// Lookup returns a handle for the first element equal to val.
func (v *Vector[T]) Lookup(val T) (Handle, bool, error) {
	i, err := v.find(&val)
	if err != nil || i == NotFound {
		return Handle{}, false, err
	}
	return Handle{owner: v.id, index: i, gen: v.gen}, true, nil
}

// Valid reports whether h still names a live element.
func (v *Vector[T]) Valid(h Handle) bool {
	return v.ready && h.owner == v.id && h.gen == v.gen && h.index >= 0 && h.index < v.size
}

// Resolve returns the address of the element h names. Like Ref, the pointer
// is only valid until the next mutating call.
func (v *Vector[T]) Resolve(h Handle) (*T, error) {
	if !v.Valid(h) {
		return nil, ErrStaleHandle
	}
	return &v.buf[h.index], nil
}

// RemoveHandle removes the element h names.
func (v *Vector[T]) RemoveHandle(h Handle, ordered bool) error {
	if !v.Valid(h) {
		return ErrStaleHandle
	}
	v.lazyInit()
	v.removeAt(h.index, ordered)
	return nil
}
