package arena

import (
	"errors"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for new regions (64 KiB).
const DefaultChunkSize = 1 << 16

// ErrExhausted is returned when a region cannot take another chunk without
// exceeding its byte limit.
var ErrExhausted = errors.New("arena: region exhausted")

// chunk is a single memory chunk within a region.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // bump offset within buf
	last   uintptr // start of the most recent block; == offset when none
}

// Region is a chunked bump allocator whose most recent block can be resized
// in place. Not goroutine-safe.
type Region struct {
	chunks    []chunk
	chunkSize int
	limit     int
	current   *chunk
	ci        int // index of current

	inPlace uint64
	moved   uint64
}

// NewRegion creates a Region with the given chunk size and byte limit.
// If chunkSize <= 0, DefaultChunkSize is used. A limit <= 0 means unlimited;
// otherwise the sum of all chunk sizes never exceeds limit.
func NewRegion(chunkSize, limit int) *Region {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if limit < 0 {
		limit = 0
	}
	r := &Region{chunkSize: chunkSize, limit: limit, chunks: []chunk{}}
	// With a limit below one chunk the first chunk takes the whole limit.
	first := min(chunkSize, r.room())
	_ = r.grow(first, first)
	return r
}

// Alloc returns n bytes aligned to align. The block's capacity equals its
// length so appends cannot spill into neighbouring blocks.
// Returns nil if n <= 0.
func (r *Region) Alloc(n, align int) ([]byte, error) {
	r.panicIfReleased()
	if n <= 0 {
		return nil, nil
	}
	align = normAlign(align)

	if c := r.current; c != nil {
		if b, ok := c.bump(n, align); ok {
			return b, nil
		}
	}
	return r.allocSlow(n, align)
}

// allocSlow moves on to the next chunk kept by Reset, or opens a new chunk
// large enough for n bytes at the given alignment.
func (r *Region) allocSlow(n, align int) ([]byte, error) {
	for i := r.ci + 1; i < len(r.chunks); i++ {
		if b, ok := r.chunks[i].bump(n, align); ok {
			r.ci = i
			r.current = &r.chunks[i]
			return b, nil
		}
	}
	if err := r.grow(n, n+align-1); err != nil {
		return nil, err
	}
	b, ok := r.current.bump(n, align)
	if !ok {
		// a limit-trimmed chunk left no room for alignment padding
		return nil, ErrExhausted
	}
	return b, nil
}

// Realloc resizes b to n bytes. When b is the most recent block of the
// current chunk and the chunk has room, the block is resized in place and the
// returned slice shares b's memory. Otherwise a new block is allocated and
// min(len(b), n) bytes are copied; the old block stays dead until Reset.
// On error b is untouched and still valid.
func (r *Region) Realloc(b []byte, n, align int) ([]byte, error) {
	r.panicIfReleased()
	if len(b) == 0 {
		return r.Alloc(n, align)
	}
	if n <= 0 {
		r.Free(b)
		return nil, nil
	}

	if c := r.current; c != nil {
		if start, ok := c.lastBlock(b); ok && start+uintptr(n) <= uintptr(len(c.buf)) {
			c.offset = start + uintptr(n)
			r.inPlace++
			return c.buf[start : start+uintptr(n) : start+uintptr(n)], nil
		}
	}

	nb, err := r.Alloc(n, align)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	r.moved++
	return nb, nil
}

// Free returns b to the region if it is the most recent block of the
// current chunk. Any other block is reclaimed only by Reset.
func (r *Region) Free(b []byte) {
	if r.chunks == nil || len(b) == 0 {
		return
	}
	if c := r.current; c != nil {
		if start, ok := c.lastBlock(b); ok {
			c.offset = start
			c.last = start
		}
	}
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Every block handed out before Reset must no longer be used.
func (r *Region) Reset() {
	r.panicIfReleased()
	for i := range r.chunks {
		r.chunks[i].offset = 0
		r.chunks[i].last = 0
	}
	if len(r.chunks) > 0 {
		r.ci = 0
		r.current = &r.chunks[0]
	}
}

// Release drops all chunks and makes the region unusable.
// Any subsequent allocation panics.
func (r *Region) Release() {
	r.chunks = nil
	r.current = nil
	r.ci = 0
}

// grow appends a new chunk of at least need bytes, preferring want bytes,
// honouring the limit.
func (r *Region) grow(need, want int) error {
	if need <= 0 {
		return nil
	}
	size := max(r.chunkSize, want)
	if r.limit > 0 {
		room := r.room()
		if need > room {
			return ErrExhausted
		}
		size = min(size, room)
	}
	r.chunks = append(r.chunks, chunk{buf: make([]byte, size)})
	r.ci = len(r.chunks) - 1
	r.current = &r.chunks[r.ci]
	return nil
}

// room reports how many bytes may still be taken as new chunks.
func (r *Region) room() int {
	if r.limit <= 0 {
		return r.chunkSize
	}
	return r.limit - r.Capacity()
}

func (r *Region) panicIfReleased() {
	if r.chunks == nil {
		panic("arena: use after Release()")
	}
}

// bump carves n aligned bytes out of the chunk.
func (c *chunk) bump(n, align int) ([]byte, bool) {
	off := alignAddr(c.base(), c.offset, uintptr(align))
	end := off + uintptr(n)
	if end > uintptr(len(c.buf)) {
		return nil, false
	}
	c.last = off
	c.offset = end
	return c.buf[off:end:end], true
}

// lastBlock reports whether b is the chunk's most recent block and returns
// its start offset.
func (c *chunk) lastBlock(b []byte) (uintptr, bool) {
	if len(c.buf) == 0 || c.last == c.offset {
		return 0, false
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	base := c.base()
	if p < base || p >= base+uintptr(len(c.buf)) {
		return 0, false
	}
	start := p - base
	if start != c.last || start+uintptr(len(b)) != c.offset {
		return 0, false
	}
	return start, true
}

func (c *chunk) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
}

// alignAddr returns the smallest offset >= off whose absolute address is a
// multiple of align.
func alignAddr(base, off, align uintptr) uintptr {
	mask := align - 1
	return ((base + off + mask) &^ mask) - base
}

func normAlign(align int) int {
	if align <= 0 {
		return int(unsafe.Sizeof(uintptr(0)))
	}
	if align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}
	return align
}
