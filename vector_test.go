package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option[int]
		wantCap int
	}{
		{"empty", nil, 0},
		{"pre-sized", []Option[int]{WithCapacity[int](8)}, 8},
		{"negative capacity", []Option[int]{WithCapacity[int](-3)}, 0},
		{"failed pre-size", []Option[int]{
			WithCapacity[int](8),
			WithAllocator[int](HeapAllocator[int]{Limit: 4}),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(tt.opts...)
			require.NoError(t, err)
			assert.Zero(t, v.Len())
			assert.Equal(t, tt.wantCap, v.Cap())
		})
	}
}

func TestNewFailedPreSizeIsCounted(t *testing.T) {
	v, err := New(WithCapacity[int](8), WithAllocator[int](HeapAllocator[int]{Limit: 4}))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Metrics().GrowFailures)
}

func TestZeroValueVector(t *testing.T) {
	var v Vector[int]
	require.NoError(t, v.Append(1))
	require.NoError(t, v.Append(2))
	assert.Equal(t, []int{1, 2}, ints(&v))
	assert.Equal(t, "one", PolicyName(v.Growth()))
	assert.Equal(t, 1, v.IndexOf(2))
}

func TestAppendKeepsOrder(t *testing.T) {
	v := MustNew[int]()
	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, v.Append(i))
	}
	assert.Equal(t, n, v.Len())
	for i := 0; i < n; i++ {
		assert.Equal(t, i, v.At(i))
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name string
		at   int
		want []int
	}{
		{"front", 0, []int{9, 1, 2, 3}},
		{"middle", 2, []int{1, 2, 9, 3}},
		{"end", 3, []int{1, 2, 3, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustNew[int]()
			fill(v, 1, 2, 3)
			require.NoError(t, v.InsertAt(tt.at, 9))
			assert.Equal(t, 9, v.At(tt.at))
			assert.Equal(t, tt.want, ints(v))
		})
	}
}

func TestInsertAtOutOfRange(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)
	for _, i := range []int{-1, 3, 100} {
		err := v.InsertAt(i, 0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
	assert.Equal(t, []int{1, 2}, ints(v))
}

func TestEmplace(t *testing.T) {
	v := MustNew[point]()
	require.NoError(t, v.Emplace(func(p *point) { p.X, p.Y = 1, 2 }))
	require.NoError(t, v.EmplaceAt(0, func(p *point) {
		assert.Equal(t, point{}, *p, "slot must be zeroed")
		p.X = 7
	}))
	assert.Equal(t, []point{{7, 0}, {1, 2}}, v.Slice())
}

func TestSet(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3)
	require.NoError(t, v.Set(1, 20))
	assert.Equal(t, []int{1, 20, 3}, ints(v))
	assert.ErrorIs(t, v.Set(3, 0), ErrIndexOutOfRange)
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name    string
		at      int
		ordered bool
		want    []int
	}{
		{"ordered", 1, true, []int{'a', 'c', 'd'}},
		{"swap erase", 1, false, []int{'a', 'd', 'c'}},
		{"ordered last", 3, true, []int{'a', 'b', 'c'}},
		{"swap erase last", 3, false, []int{'a', 'b', 'c'}},
		{"ordered first", 0, true, []int{'b', 'c', 'd'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustNew[int]()
			fill(v, 'a', 'b', 'c', 'd')
			require.NoError(t, v.RemoveAt(tt.at, tt.ordered))
			assert.Equal(t, tt.want, ints(v))
			assert.Equal(t, 4, v.Cap(), "removal keeps capacity")
		})
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	v := MustNew[int]()
	assert.ErrorIs(t, v.RemoveAt(0, true), ErrIndexOutOfRange)
	fill(v, 1)
	assert.ErrorIs(t, v.RemoveAt(1, false), ErrIndexOutOfRange)
	assert.ErrorIs(t, v.RemoveAt(-1, false), ErrIndexOutOfRange)
}

func TestRemoveRange(t *testing.T) {
	tests := []struct {
		name string
		i, j int
		want []int
	}{
		{"inner", 1, 3, []int{'a', 'e'}},
		{"single", 2, 2, []int{'a', 'b', 'd', 'e'}},
		{"head", 0, 1, []int{'c', 'd', 'e'}},
		{"tail", 3, 4, []int{'a', 'b', 'c'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustNew[int]()
			fill(v, 'a', 'b', 'c', 'd', 'e')
			require.NoError(t, v.RemoveRange(tt.i, tt.j))
			assert.Equal(t, tt.want, ints(v))
		})
	}

	t.Run("everything", func(t *testing.T) {
		v := MustNew[int]()
		fill(v, 1, 2, 3)
		require.NoError(t, v.RemoveRange(0, 2))
		assert.Zero(t, v.Len())
	})
}

func TestRemoveRangeInvalid(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3)
	for _, r := range [][2]int{{2, 1}, {-1, 1}, {1, 3}, {3, 3}} {
		assert.ErrorIs(t, v.RemoveRange(r[0], r[1]), ErrIndexOutOfRange, "range %v", r)
	}
	assert.Equal(t, []int{1, 2, 3}, ints(v))
}

func TestRemoveByValue(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3, 2, 4)

	found, err := v.Remove(2, true)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 3, 2, 4}, ints(v), "only the first match is removed")

	found, err = v.Remove(1, false)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{4, 3, 2}, ints(v))

	found, err = v.Remove(42, true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveByValueWithoutEquality(t *testing.T) {
	v := MustNew[[]int]()
	require.NoError(t, v.Append([]int{1}))

	found, err := v.Remove([]int{1}, true)
	assert.ErrorIs(t, err, ErrNoEquality)
	assert.False(t, found)
	assert.Equal(t, NotFound, v.IndexOf([]int{1}))
}

func TestRemoveRef(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3, 4)

	assert.True(t, v.RemoveRef(v.Ref(1), true))
	assert.Equal(t, []int{1, 3, 4}, ints(v))

	assert.True(t, v.RemoveRef(v.Ref(0), false))
	assert.Equal(t, []int{4, 3}, ints(v))

	outside := 3
	assert.False(t, v.RemoveRef(&outside, true), "equal value elsewhere is not the same element")
	assert.False(t, v.RemoveRef(nil, true))
}

func TestRemoveRefStaleAfterGrowth(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3)
	p := v.Ref(1)

	require.NoError(t, v.Append(4)) // GrowByOne: buffer moves
	assert.Equal(t, NotFound, v.IndexOfRef(p))
	assert.False(t, v.RemoveRef(p, true))
	assert.Equal(t, []int{1, 2, 3, 4}, ints(v))
}

func TestPop(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)
	before := v.Len()

	require.NoError(t, v.Append(7))
	got, err := v.Pop()
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, before, v.Len())

	// A single element can be popped.
	_, _ = v.Pop()
	got, err = v.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = v.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFrontBack(t *testing.T) {
	v := MustNew[int]()

	_, err := v.Front()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = v.Back()
	assert.ErrorIs(t, err, ErrEmpty)

	fill(v, 5)
	front, err := v.Front()
	require.NoError(t, err)
	back, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, 5, front, "one element is enough")
	assert.Equal(t, 5, back)

	fill(v, 6, 7)
	front, _ = v.Front()
	back, _ = v.Back()
	assert.Equal(t, 5, front)
	assert.Equal(t, 7, back)
}

func TestClear(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3)
	capBefore := v.Cap()

	v.Clear()
	assert.Zero(t, v.Len())
	assert.Equal(t, capBefore, v.Cap())

	gen := v.gen
	v.Clear()
	assert.Equal(t, gen, v.gen, "second Clear is a no-op")

	grows := v.Metrics().Grows
	require.NoError(t, v.Append(9))
	assert.Equal(t, grows, v.Metrics().Grows, "append after Clear reuses capacity")
}

func TestReset(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2, 3)

	v.Reset()
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.Nil(t, v.buf)

	require.NoError(t, v.Append(1))
	assert.Equal(t, []int{1}, ints(v))
}

func TestAtAndGet(t *testing.T) {
	v := MustNew[int]()
	fill(v, 10, 20)

	assert.Equal(t, 20, v.At(1))
	assert.Panics(t, func() { v.At(2) })
	assert.Panics(t, func() { v.At(-1) })
	assert.Panics(t, func() { v.Ref(2) })

	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
	_, err = v.Get(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIndexOf(t *testing.T) {
	v := MustNew[int]()
	fill(v, 4, 5, 6, 5)

	assert.Equal(t, 1, v.IndexOf(5))
	assert.Equal(t, NotFound, v.IndexOf(7))
	assert.Equal(t, 2, v.IndexOfRef(v.Ref(2)))

	ok, err := v.Contains(6)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = v.Contains(0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSliceIsBoundedView(t *testing.T) {
	v := MustNew[int](WithCapacity[int](8))
	fill(v, 1, 2)
	s := v.Slice()
	assert.Len(t, s, 2)
	assert.Equal(t, 2, cap(s), "appending to the view must not write into spare slots")
}

func TestAll(t *testing.T) {
	v := MustNew[int]()
	fill(v, 3, 4, 5)

	var idx, vals []int
	for i, x := range v.All() {
		idx = append(idx, i)
		vals = append(vals, x)
		if x == 4 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, idx)
	assert.Equal(t, []int{3, 4}, vals)
}

func TestEqualityOnUncomparableDynamicValues(t *testing.T) {
	v := MustNew[any]()
	require.NoError(t, v.Append(1))
	require.NoError(t, v.Append([]int{1}))

	assert.Equal(t, 0, v.IndexOf(1), "different dynamic types compare unequal")

	var found bool
	var err error
	require.NotPanics(t, func() { found, err = v.Contains([]int{1}) })
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrNoEquality)

	removed, err := v.Remove([]int{1}, true)
	assert.False(t, removed)
	assert.ErrorIs(t, err, ErrNoEquality)
	assert.Equal(t, 2, v.Len())

	type tagged struct{ V any }
	w := MustNew[tagged]()
	require.NoError(t, w.Append(tagged{V: map[int]int{}}))
	_, _, err = w.Lookup(tagged{V: map[int]int{}})
	assert.ErrorIs(t, err, ErrNoEquality)
}

func TestEqualHookPanicsPropagate(t *testing.T) {
	v := MustNew(WithEqual(func(a, b *int) bool { panic("boom") }))
	fill(v, 1)
	assert.PanicsWithValue(t, "boom", func() { _ = v.IndexOf(1) })
}
