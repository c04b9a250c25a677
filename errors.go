package vector

import "errors"

// NotFound is returned by the index lookups when no element matches.
const NotFound = -1

var (
	// ErrOutOfMemory is returned when the allocator cannot supply the
	// requested slots. The vector is left exactly as it was before the call.
	ErrOutOfMemory = errors.New("vector: out of memory")

	// ErrIndexOutOfRange is returned for an index outside the live range.
	ErrIndexOutOfRange = errors.New("vector: index out of range")

	// ErrEmpty is returned by Front, Back and Pop on an empty vector.
	ErrEmpty = errors.New("vector: empty")

	// ErrStaleHandle is returned when a Handle is used after the vector
	// has been mutated since the handle was acquired.
	ErrStaleHandle = errors.New("vector: stale handle")

	// ErrUnsafeTraits is returned when a Traits combination would let two
	// live copies of an element with teardown logic exist at once.
	ErrUnsafeTraits = errors.New("vector: unsafe traits")

	// ErrNoEquality is returned by equality based lookups when the element
	// type has neither an Equal method, a comparator option, nor ==.
	ErrNoEquality = errors.New("vector: element type has no equality")

	// ErrNotCopyable is returned by Clone for element types that can only
	// be moved.
	ErrNotCopyable = errors.New("vector: element type is not copyable")

	// ErrPointerElem is returned when an element type containing pointers
	// is placed in memory the garbage collector does not scan.
	ErrPointerElem = errors.New("vector: element type contains pointers")
)
