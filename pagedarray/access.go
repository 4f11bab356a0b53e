package pagedarray

import "fmt"

// At returns the address of element i. i must be less than Len(); anything
// else is a programming error and panics.
//
// The walk is always four levels deep. The coverage maintained by Resize
// guarantees every node on the path exists, so there are no checks beyond
// the bound on i.
func (a *Array[L, T]) At(i L) *T {
	if i >= a.length {
		panic(fmt.Sprintf("pagedarray: index %d out of range [0:%d]", i, a.length))
	}
	return &a.leaf(i)[i&levelMask[L]()]
}

func (a *Array[L, T]) Get(i L) T {
	return *a.At(i)
}

func (a *Array[L, T]) Set(i L, v T) {
	*a.At(i) = v
}

// leaf returns the element storage of the leaf holding index i. The caller
// guarantees i < Len().
func (a *Array[L, T]) leaf(i L) []T {
	d := levelShift[L]()
	m := levelMask[L]()
	return a.root.
		children[i>>(3*d)].
		children[(i>>(2*d))&m].
		children[(i>>d)&m].
		items
}
