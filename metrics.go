package vector

// BytesInUse returns the bytes occupied by live elements.
func (v *Vector[T]) BytesInUse() int {
	return v.size * elemSize[T]()
}

// BytesCapacity returns the bytes of the allocated buffer.
func (v *Vector[T]) BytesCapacity() int {
	return len(v.buf) * elemSize[T]()
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	if len(v.buf) == 0 {
		return 0
	}
	return float64(v.size) / float64(len(v.buf))
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() Metrics {
	return Metrics{
		Len:           v.size,
		Cap:           len(v.buf),
		ElemSize:      elemSize[T](),
		BytesInUse:    v.BytesInUse(),
		BytesCapacity: v.BytesCapacity(),
		Utilization:   v.Utilization(),
		Grows:         v.grows,
		GrowFailures:  v.growFailures,
		Shrinks:       v.shrinks,
	}
}

// Metrics contains statistical information about a vector.
type Metrics struct {
	Len           int     // Live elements
	Cap           int     // Allocated slots
	ElemSize      int     // Bytes per slot
	BytesInUse    int     // Bytes held by live elements
	BytesCapacity int     // Bytes of the whole buffer
	Utilization   float64 // Ratio of live elements to slots (0.0-1.0)
	Grows         uint64  // Successful capacity increases
	GrowFailures  uint64  // Allocation failures
	Shrinks       uint64  // Successful capacity decreases
}
