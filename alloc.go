package vector

import (
	"fmt"
	"reflect"
	"strconv"
	"unsafe"

	"github.com/pavanmanishd/vector/arena"
)

// Allocator supplies the slot buffers a vector stores its elements in.
//
// Allocate returns a buffer of exactly n zeroed slots. Reallocate resizes
// buf to n slots preserving the first min(len(buf), n) slots bit for bit
// without running any element logic; on error buf must be left intact.
// Free returns a buffer obtained from this allocator.
//
// Failures should wrap ErrOutOfMemory.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Reallocate(buf []T, n int) ([]T, error)
	Free(buf []T)
}

// HeapAllocator allocates slots on the Go heap.
// A positive Limit caps the number of slots a single buffer may have.
type HeapAllocator[T any] struct {
	Limit int
}

// Allocate returns n zeroed slots.
func (h HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if h.Limit > 0 && n > h.Limit {
		return nil, fmt.Errorf("%w: %d slots exceeds limit %d", ErrOutOfMemory, n, h.Limit)
	}
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Reallocate copies buf into a fresh buffer of n slots.
func (h HeapAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	nb, err := h.Allocate(n)
	if err != nil {
		return buf, err
	}
	copy(nb, buf)
	return nb, nil
}

// Free drops the buffer; the garbage collector reclaims it.
func (HeapAllocator[T]) Free([]T) {}

// ArenaAllocator carves slot buffers out of an arena.Region. Growing the
// most recently allocated buffer extends it in place, so a vector that grows
// one slot at a time costs no copies while it is the region's only user.
//
// Region memory is not scanned by the garbage collector, so T must be
// pointer free.
type ArenaAllocator[T any] struct {
	region *arena.Region
}

// NewArenaAllocator returns an allocator over r. It fails with ErrPointerElem
// when T contains pointers.
func NewArenaAllocator[T any](r *arena.Region) (*ArenaAllocator[T], error) {
	if t := reflect.TypeFor[T](); hasPointers(t) {
		return nil, fmt.Errorf("%w: %v", ErrPointerElem, t)
	}
	return &ArenaAllocator[T]{region: r}, nil
}

// Region returns the underlying region.
func (a *ArenaAllocator[T]) Region() *arena.Region {
	return a.region
}

// Allocate returns n zeroed slots from the region.
func (a *ArenaAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	size, align := layout[T]()
	if size == 0 {
		return make([]T, n), nil
	}
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	b, err := a.region.Alloc(size*n, align)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	// Region.Reset hands out previously used bytes.
	clear(b)
	return asSlots[T](b, n), nil
}

// Reallocate resizes buf, in place when the region allows it.
func (a *ArenaAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	size, align := layout[T]()
	if size == 0 {
		nb := make([]T, n)
		return nb, nil
	}
	if err := checkSlots[T](n); err != nil {
		return buf, err
	}
	old := len(buf)
	b, err := a.region.Realloc(asBytes(buf), size*n, align)
	if err != nil {
		return buf, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	if n <= 0 {
		return nil, nil
	}
	if n > old {
		clear(b[size*old:])
	}
	return asSlots[T](b, n), nil
}

// Free hands buf back to the region.
func (a *ArenaAllocator[T]) Free(buf []T) {
	size, _ := layout[T]()
	if size == 0 || len(buf) == 0 {
		return
	}
	a.region.Free(asBytes(buf))
}

// maxAllocBytes bounds a single buffer. Larger requests fail with
// ErrOutOfMemory instead of reaching make or overflowing size*n.
const maxAllocBytes = 1<<min(48, strconv.IntSize-1) - 1

// checkSlots rejects slot counts whose byte size no buffer can have.
func checkSlots[T any](n int) error {
	size, _ := layout[T]()
	if size > 0 && n > maxAllocBytes/size {
		return fmt.Errorf("%w: %d slots of %d bytes", ErrOutOfMemory, n, size)
	}
	return nil
}

func layout[T any]() (size, align int) {
	var zero T
	return int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))
}

func asSlots[T any](b []byte, n int) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func asBytes[T any](buf []T) []byte {
	if len(buf) == 0 {
		return nil
	}
	size, _ := layout[T]()
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), size*len(buf))
}

// hasPointers reports whether values of t hold references the garbage
// collector must see.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.String, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
