package pagedarray

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
)

func TestArrayBasic(t *testing.T) {
	var my Array[uint32, int32]

	// already empty
	require.NoError(t, my.Resize(0))

	require.NoError(t, my.Resize(1))
	*my.At(0) = 77
	require.Equal(t, int32(77), *my.At(0))

	// grow, zero the new part
	require.NoError(t, my.Resize(99))
	my.Zero(1, 98)
	require.Equal(t, int32(0), my.Get(57))
	my.Set(98, 23)
	require.Equal(t, int32(23), my.Get(98))

	p, err := my.Append()
	require.NoError(t, err)
	*p = 8
	require.Equal(t, uint32(100), my.Len())
	p, err = my.Append()
	require.NoError(t, err)
	*p = 9
	require.Equal(t, uint32(101), my.Len())
	require.Equal(t, int32(8), my.Get(99))
	require.Equal(t, int32(9), my.Get(100))
	require.Equal(t, int32(77), my.Get(0))

	my.Free()
	require.Equal(t, uint32(0), my.Len())
	require.Nil(t, my.root)
}

func TestAppendReturnsOldLengthSlot(t *testing.T) {
	a := New[uint64, string]()
	for i := 0; i < 1000; i++ {
		p, err := a.Append()
		require.NoError(t, err)
		require.Equal(t, "", *p)
		require.Same(t, a.At(uint64(i)), p)
		require.Equal(t, uint64(i+1), a.Len())
		*p = string(rune('a' + i%26))
	}
	require.Equal(t, "a", a.Get(0))
	require.Equal(t, string(rune('a'+999%26)), a.Get(999))
	requireCoverage(t, a)
}

func TestAppendAtMaximumLength(t *testing.T) {
	// the length is set directly, a real tree of that size is 4GiB
	a := &Array[uint32, byte]{length: ^uint32(0)}
	p, err := a.Append()
	require.ErrorIs(t, err, ErrLengthOverflow)
	require.Nil(t, p)
	require.Equal(t, ^uint32(0), a.Len())
}

func TestGrowthIsZeroed(t *testing.T) {
	a := New[uint32, int32]()
	require.NoError(t, a.Resize(16))
	for i := uint32(0); i < 16; i++ {
		a.Set(i, -1)
	}

	// 9 and 16 both round up to a leaf of 16, the buffer is kept
	require.NoError(t, a.Resize(9))
	require.NoError(t, a.Resize(16))
	for i := uint32(9); i < 16; i++ {
		require.Equal(t, int32(0), a.Get(i), "index %d", i)
	}
	for i := uint32(0); i < 9; i++ {
		require.Equal(t, int32(-1), a.Get(i), "index %d", i)
	}

	// and across leaves
	require.NoError(t, a.Resize(1000))
	a.CopyIn(0, repeat(int32(3), 1000))
	require.NoError(t, a.Resize(300))
	require.NoError(t, a.Resize(1000))
	out := make([]int32, 700)
	a.CopyOut(out, 300)
	require.Equal(t, repeat(int32(0), 700), out)
}

func TestContractViolationsPanic(t *testing.T) {
	a := New[uint32, int32]()
	require.NoError(t, a.Resize(300))

	tests := []struct {
		name string
		f    func()
	}{
		{"At at length", func() { a.At(300) }},
		{"Get beyond length", func() { a.Get(1 << 20) }},
		{"Set at length", func() { a.Set(300, 1) }},
		{"Zero past the end", func() { a.Zero(299, 2) }},
		{"Zero offset past the end", func() { a.Zero(301, 0) }},
		{"Zero wrapping count", func() { a.Zero(1, ^uint32(0)) }},
		{"CopyIn past the end", func() { a.CopyIn(250, make([]int32, 51)) }},
		{"CopyOut past the end", func() { a.CopyOut(make([]int32, 301), 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Panics(t, tt.f)
		})
	}

	var empty Array[uint64, int32]
	require.Panics(t, func() { empty.At(0) })
	// an empty range at the end is in bounds
	require.NotPanics(t, func() { a.Zero(300, 0) })
	require.NotPanics(t, func() { empty.CopyOut(nil, 0) })
}

func TestResizeRefusedLeavesArrayUnchanged(t *testing.T) {
	// 1024 fills four leaves exactly, one more needs a fifth leaf
	budget := NewBudget(Footprint[uint32, int32](1024))
	a := New[uint32, int32](WithAllocator(budget))

	require.NoError(t, a.Resize(1024))
	a.Set(1023, 5)
	require.Equal(t, a.Footprint(), budget.InUse())

	err := a.Resize(1025)
	require.ErrorIs(t, err, ErrAllocation)
	require.Equal(t, uint32(1024), a.Len())
	require.Equal(t, int32(5), a.Get(1023))
	requireCoverage(t, a)
	require.Equal(t, uint64(1), budget.Failures())

	_, err = a.Append()
	require.ErrorIs(t, err, ErrAllocation)
	require.Equal(t, uint32(1024), a.Len())

	// shrinking releases, after which growth fits again
	require.NoError(t, a.Resize(10))
	require.Equal(t, Footprint[uint32, int32](10), budget.InUse())
	require.NoError(t, a.Resize(1000))
	require.Equal(t, Footprint[uint32, int32](1000), budget.InUse())
	require.Equal(t, Footprint[uint32, int32](1024), budget.Peak())
	require.Equal(t, uint64(2), budget.Failures())

	a.Free()
	require.Equal(t, uint64(0), budget.InUse())
}

func TestBudgetSharedBetweenArrays(t *testing.T) {
	budget := NewBudget(0)
	a := New[uint32, int64](WithAllocator(budget))
	b := New[uint64, byte](WithAllocator(budget))

	require.NoError(t, a.Resize(70000))
	require.NoError(t, b.Resize(70000))
	require.Equal(t, a.Footprint()+b.Footprint(), budget.InUse())
	require.Equal(t, treeBytes(a)+treeBytes(b), budget.InUse())

	a.Free()
	require.Equal(t, b.Footprint(), budget.InUse())
	b.Free()
	require.Equal(t, uint64(0), budget.InUse())
	require.Equal(t, uint64(0), budget.Limit())
}

func TestBudgetOverRelease(t *testing.T) {
	budget := NewBudget(0)
	require.NoError(t, budget.Reserve(10))
	require.Panics(t, func() { budget.Release(11) })
}

func TestResizeLogs(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	a := New[uint32, int32](
		WithLogger(logger.Sugar.WithServiceName("pagedarray")),
		WithAllocator(NewBudget(64)))
	require.NoError(t, a.Resize(4))
	require.ErrorIs(t, a.Resize(1<<10), ErrAllocation)
	a.Free()
}

func repeat[T any](v T, n int) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = v
	}
	return s
}
