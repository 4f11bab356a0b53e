package pagedarray

// Array is a resizable array of T indexed by L, stored as a four level tree
// of power of two sized nodes. Resizing only touches the nodes whose
// coverage changes; elements that stay in range are never moved between
// leaves.
//
// The zero value is an empty array ready for use. An Array is not safe for
// concurrent use.
type Array[L Length, T any] struct {
	length L
	root   *node[T]
	opts   Options
}

// New returns an empty array configured by opts.
func New[L Length, T any](opts ...Option) *Array[L, T] {
	a := &Array[L, T]{}
	for _, o := range opts {
		o(&a.opts)
	}
	return a
}

func (a *Array[L, T]) Len() L {
	return a.length
}

// Footprint returns the bytes of node storage held for the current length.
func (a *Array[L, T]) Footprint() uint64 {
	return Footprint[L, T](a.length)
}

// Resize sets the length of the array to n.
//
// Elements below min(Len(), n) are preserved. Elements gained by growing are
// the zero value of T, including slots that were previously shrunk away.
// Pointers returned by At must not be held across a Resize.
//
// If an allocator is configured and refuses the additional storage, Resize
// returns an error wrapping ErrAllocation and the array is unchanged.
// Shrinking never fails.
func (a *Array[L, T]) Resize(n L) error {
	old := a.length
	if n == old {
		return nil
	}

	alloc, log := a.opts.allocator, a.opts.log
	var before, after uint64
	if alloc != nil || log != nil {
		before = Footprint[L, T](old)
		after = Footprint[L, T](n)
	}

	if alloc != nil && after > before {
		if err := alloc.Reserve(after - before); err != nil {
			if log != nil {
				log.Infof("resize %d -> %d refused: %v", old, n, err)
			}
			return err
		}
	}

	realloc[L, T](0, old, n, &a.root)
	a.length = n

	if alloc != nil && after < before {
		alloc.Release(before - after)
	}
	if log != nil {
		log.Debugf("resize %d -> %d: footprint %d -> %d bytes", old, n, before, after)
	}
	return nil
}

// Free releases all storage, leaving an empty array.
func (a *Array[L, T]) Free() {
	// shrinking makes no reservation so can not fail
	_ = a.Resize(0)
}

// Append extends the array by one zero valued element and returns its
// address.
func (a *Array[L, T]) Append() (*T, error) {
	i := a.length
	if i == ^L(0) {
		return nil, ErrLengthOverflow
	}
	if err := a.Resize(i + 1); err != nil {
		return nil, err
	}
	return a.At(i), nil
}
