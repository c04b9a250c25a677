package arena

// SizeInUse returns the number of bytes handed out since the last Reset,
// including alignment padding and blocks abandoned by a moving Realloc.
func (r *Region) SizeInUse() int {
	if r.chunks == nil {
		return 0
	}
	sum := 0
	for _, c := range r.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the region.
func (r *Region) NumChunks() int {
	return len(r.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the region.
func (r *Region) Capacity() int {
	sum := 0
	for _, c := range r.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the region has no capacity.
func (r *Region) Utilization() float64 {
	capacity := r.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(r.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this region.
func (r *Region) ChunkSize() int {
	return r.chunkSize
}

// Limit returns the byte limit, or 0 when the region is unlimited.
func (r *Region) Limit() int {
	return r.limit
}

// Metrics returns a snapshot of region statistics.
func (r *Region) Metrics() RegionMetrics {
	return RegionMetrics{
		SizeInUse:       r.SizeInUse(),
		Capacity:        r.Capacity(),
		NumChunks:       r.NumChunks(),
		ChunkSize:       r.ChunkSize(),
		Limit:           r.Limit(),
		Utilization:     r.Utilization(),
		InPlaceReallocs: r.inPlace,
		MovedReallocs:   r.moved,
	}
}

// RegionMetrics contains statistical information about a region.
type RegionMetrics struct {
	SizeInUse       int     // Bytes currently allocated
	Capacity        int     // Total capacity in bytes
	NumChunks       int     // Number of chunks
	ChunkSize       int     // Default chunk size
	Limit           int     // Byte limit, 0 if unlimited
	Utilization     float64 // Ratio of used to total capacity (0.0-1.0)
	InPlaceReallocs uint64  // Reallocs that resized the last block in place
	MovedReallocs   uint64  // Reallocs that copied into a new block
}
