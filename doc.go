// Package vector implements a contiguous, growable sequence container on top
// of a pluggable allocator.
//
// # Overview
//
// Vector[T] keeps its elements in one buffer obtained from an Allocator and
// manages that buffer itself instead of relying on append. This gives the
// caller control over:
//
//   - How capacity grows (GrowByOne, GrowDoubling, GrowByBlock or a custom
//     GrowthPolicy)
//   - Where memory comes from (the Go heap, or an arena.Region)
//   - What happens when memory runs out (every operation fails cleanly and
//     leaves the vector untouched)
//   - Which per-element lifecycle logic runs on removal and relocation
//
// # Basic Usage
//
//	v, err := vector.New[int](vector.WithGrowth[int](vector.GrowDoubling()))
//	if err != nil {
//		return err
//	}
//	defer v.Reset()
//
//	_ = v.Append(1)
//	_ = v.Append(3)
//	_ = v.InsertAt(1, 2)        // [1 2 3]
//	_ = v.RemoveAt(0, true)     // [2 3]   order kept
//	_ = v.RemoveAt(0, false)    // [3]     swap-erase
//
// The zero Vector is ready to use with default settings.
//
// # Growth
//
// The default policy adds exactly one slot per growth step. It keeps
// capacity tight but reallocates on every append once reserved space is
// used up; call Reserve before bulk appends, or pick GrowDoubling.
// Fit shrinks capacity to the number of live elements.
//
// # Element Lifecycle
//
// Two policies are resolved per element type when the vector is set up:
//
//   - DestructorPolicy: Skip, or Invoke the type's Destroy method exactly
//     once when an element is removed, cleared or reset
//   - RelocationPolicy: BitwiseCopy, ConstructorCopy (CopyTo) or
//     ConstructorMove (MoveTo) when elements change slot
//
// Types implementing none of Destroyer, Copier and Mover are relocated by
// raw copy. Options such as WithDestructor and WithMove override the
// resolved policies; Invoke together with BitwiseCopy is rejected.
//
// # Addresses and Handles
//
// Growth and shrink may move the buffer, so pointers from Ref, Slice and
// Resolve are valid only until the next mutating call. Indices stay valid.
// A Handle pins an index to the vector's mutation generation and refuses to
// resolve after any mutation.
//
// # Thread Safety
//
// Vector is not goroutine-safe. Confine each vector to one goroutine or
// guard it externally.
//
// # Metrics
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Growth steps: %d\n", m.Grows)
package vector
