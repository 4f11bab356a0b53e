package pagedarray

import (
	"fmt"
	"sync/atomic"
)

// Allocator accounts for the bytes of node storage held by arrays.
//
// Reserve is called before a resize touches the tree. If it returns an error
// the resize is abandoned and the array is left exactly as it was. Release
// is called after a shrink has freed its nodes.
type Allocator interface {
	Reserve(nbytes uint64) error
	Release(nbytes uint64)
}

// Budget is an Allocator enforcing an upper bound on the bytes in use. A
// zero limit is unbounded. A Budget may be shared by many arrays, including
// arrays owned by different go routines.
type Budget struct {
	limit    uint64
	inUse    atomic.Uint64
	peak     atomic.Uint64
	failures atomic.Uint64
}

func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Reserve(nbytes uint64) error {
	for {
		cur := b.inUse.Load()
		next := satAdd(cur, nbytes)
		if b.limit != 0 && next > b.limit {
			b.failures.Add(1)
			return fmt.Errorf(
				"%w: %d bytes requested, %d of %d in use", ErrAllocation, nbytes, cur, b.limit)
		}
		if b.inUse.CompareAndSwap(cur, next) {
			b.notePeak(next)
			return nil
		}
	}
}

func (b *Budget) Release(nbytes uint64) {
	for {
		cur := b.inUse.Load()
		if nbytes > cur {
			panic("pagedarray: budget released more than was reserved")
		}
		if b.inUse.CompareAndSwap(cur, cur-nbytes) {
			return
		}
	}
}

func (b *Budget) notePeak(v uint64) {
	for {
		p := b.peak.Load()
		if v <= p || b.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

func (b *Budget) Limit() uint64    { return b.limit }
func (b *Budget) InUse() uint64    { return b.inUse.Load() }
func (b *Budget) Peak() uint64     { return b.peak.Load() }
func (b *Budget) Failures() uint64 { return b.failures.Load() }
