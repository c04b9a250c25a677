// Package arena implements a chunked region allocator used as backing
// storage for vectors of plain data.
//
// # Overview
//
// A Region hands out byte blocks from large chunks with a bump pointer.
// Unlike a plain bump allocator it remembers the most recent block of the
// current chunk, so that block can grow or shrink in place:
//
//	r := arena.NewRegion(0, 0) // default chunk size, no limit
//	defer r.Release()
//
//	b, _ := r.Alloc(64, 8)
//	b, _ = r.Realloc(b, 72, 8) // same memory, extended by 8 bytes
//
// This matches the access pattern of a vector that grows one slot at a
// time: each growth step is a Realloc of the vector's buffer, and as long as
// nothing else was allocated in between the step costs no copy.
//
// # Limits
//
// A region may be given a byte limit. Once the sum of chunk sizes would
// exceed it, Alloc and Realloc return ErrExhausted and leave existing blocks
// untouched, which makes the region usable for exercising out-of-memory
// paths.
//
// # Important Notes
//
//   - Blocks are only valid while the region exists and until Reset
//   - Free reclaims only the most recent block; everything else is
//     reclaimed in bulk by Reset or Release
//   - Chunk memory is a []byte and is not scanned by the garbage collector
//     for pointers; store only pointer-free data in it
//   - Region is not goroutine-safe
//
// # Metrics
//
//	m := r.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("In-place reallocs: %d\n", m.InPlaceReallocs)
package arena
