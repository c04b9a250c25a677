package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy GrowthPolicy
		caps   []int // capacity after each of 5 appends
	}{
		{"one", GrowByOne(), []int{1, 2, 3, 4, 5}},
		{"double", GrowDoubling(), []int{1, 2, 4, 4, 8}},
		{"block", GrowByBlock(3), []int{3, 3, 3, 6, 6}},
		{"custom", GrowthFunc(func(c, r int) int { return c + 2 }), []int{2, 2, 4, 4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustNew(WithGrowth[int](tt.policy))
			var caps []int
			for i := 0; i < 5; i++ {
				require.NoError(t, v.Append(i))
				caps = append(caps, v.Cap())
			}
			assert.Equal(t, tt.caps, caps)
			assert.Equal(t, []int{0, 1, 2, 3, 4}, ints(v))
		})
	}
}

func TestGrowthPolicyNeverUndershoots(t *testing.T) {
	shrink := GrowthFunc(func(c, r int) int { return 0 })
	v := MustNew(WithGrowth[int](shrink))
	fill(v, 1, 2, 3)
	assert.Equal(t, 3, v.Cap())
}

func TestGrowByBlockClampsBlock(t *testing.T) {
	assert.Equal(t, 1, GrowByBlock(0).Grow(0, 1))
	assert.Equal(t, 8, GrowByBlock(4).Grow(4, 5))
	assert.Equal(t, 12, GrowByBlock(4).Grow(4, 9))
}

func TestParseGrowthPolicy(t *testing.T) {
	tests := []struct {
		name, policy string
		block        int
		want         string
		wantErr      bool
	}{
		{"default", "", 0, "one", false},
		{"one", "one", 0, "one", false},
		{"double", "Double", 0, "double", false},
		{"block", "block", 16, "block(16)", false},
		{"block without size", "block", 0, "", true},
		{"unknown", "triple", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseGrowthPolicy(tt.policy, tt.block)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, PolicyName(p))
		})
	}
	assert.Equal(t, "custom", PolicyName(GrowthFunc(func(c, r int) int { return r })))
}

func TestReserve(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)

	require.NoError(t, v.Reserve(10))
	assert.Equal(t, 12, v.Cap())
	grows := v.Metrics().Grows

	for i := 0; i < 10; i++ {
		require.NoError(t, v.Append(i))
	}
	assert.Equal(t, grows, v.Metrics().Grows, "reserved appends do not grow")

	require.NoError(t, v.Reserve(0))
	assert.Equal(t, 12, v.Cap(), "reserve never shrinks")
	assert.ErrorIs(t, v.Reserve(-1), ErrIndexOutOfRange)
}

func TestFit(t *testing.T) {
	v := MustNew(WithGrowth[int](GrowDoubling()))
	fill(v, 1, 2, 3, 4, 5)
	require.Equal(t, 8, v.Cap())

	require.NoError(t, v.RemoveAt(0, true))
	require.NoError(t, v.Fit())
	assert.Equal(t, v.Len(), v.Cap())
	assert.Equal(t, []int{2, 3, 4, 5}, ints(v))
	assert.Equal(t, uint64(1), v.Metrics().Shrinks)

	v.Clear()
	require.NoError(t, v.Fit())
	assert.Zero(t, v.Cap())
	assert.Nil(t, v.buf)

	empty := MustNew[int]()
	require.NoError(t, empty.Fit())
	assert.Zero(t, empty.Cap())
}

func TestFitNonBitwise(t *testing.T) {
	l := newLedger()
	v := MustNew[unique](WithGrowth[unique](GrowDoubling()))
	for i := 1; i <= 5; i++ {
		require.NoError(t, v.Append(unique{id: i, l: l}))
	}
	require.NoError(t, v.Fit())
	assert.Equal(t, 5, v.Cap())
	last, _ := v.Back()
	assert.Equal(t, 5, last.id)
}

func TestGrowthFailureLeavesStateUnchanged(t *testing.T) {
	for failAt := 1; failAt <= 4; failAt++ {
		a := &faultyAllocator[int]{failAt: failAt}
		v := MustNew(WithAllocator[int](a))

		var failed bool
		for i := 0; i < 6; i++ {
			lenBefore, capBefore := v.Len(), v.Cap()
			before := ints(v)

			err := v.InsertAt(0, i)
			if err != nil {
				failed = true
				assert.ErrorIs(t, err, ErrOutOfMemory)
				assert.Equal(t, lenBefore, v.Len(), "failAt %d", failAt)
				assert.Equal(t, capBefore, v.Cap(), "failAt %d", failAt)
				assert.Equal(t, before, ints(v), "failAt %d", failAt)
			}
		}
		assert.True(t, failed, "failAt %d never failed", failAt)
		assert.Equal(t, uint64(1), v.Metrics().GrowFailures)
	}
}

func TestGrowthFailureNonBitwise(t *testing.T) {
	l := newLedger()
	a := &faultyAllocator[resource]{failAt: 3}
	v := MustNew(WithAllocator[resource](a))

	require.NoError(t, v.Append(resource{id: 1, l: l}))
	require.NoError(t, v.Append(resource{id: 2, l: l}))
	err := v.Append(resource{id: 3, l: l})
	require.ErrorIs(t, err, ErrOutOfMemory)

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.Cap())
	assert.Empty(t, l.destroyed, "failed growth tears nothing down")
	first, _ := v.Front()
	assert.Equal(t, 1, first.id)

	// The next attempt succeeds and the old buffer is handed back.
	require.NoError(t, v.Append(resource{id: 3, l: l}))
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 2, a.frees)
}

func TestReserveAndFitFailure(t *testing.T) {
	a := &faultyAllocator[int]{failAt: 4}
	v := MustNew(WithAllocator[int](a), WithGrowth[int](GrowDoubling()))
	fill(v, 1, 2, 3) // calls 1..3

	err := v.Reserve(100) // call 4
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 4, v.Cap())

	a.failAt = 5
	err = v.Fit()
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 4, v.Cap())
	assert.Equal(t, []int{1, 2, 3}, ints(v))
}

func TestHandlesInvalidatedByGrowth(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)
	h, err := v.HandleAt(1)
	require.NoError(t, err)
	require.NoError(t, v.Reserve(4))
	assert.False(t, v.Valid(h))
}

func TestReserveOverflow(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)

	err := v.Reserve(math.MaxInt)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, []int{1, 2}, ints(v))
}

func TestReserveBeyondAddressSpace(t *testing.T) {
	v := MustNew[int]()
	fill(v, 1, 2)
	h, err := v.HandleAt(0)
	require.NoError(t, err)

	require.NotPanics(t, func() { err = v.Reserve(1 << 60) })
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, uint64(1), v.Metrics().GrowFailures)
	assert.True(t, v.Valid(h), "a failed reserve is not a mutation")

	require.NoError(t, v.Append(3))
	assert.Equal(t, []int{1, 2, 3}, ints(v))
}
