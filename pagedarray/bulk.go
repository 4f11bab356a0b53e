package pagedarray

import "fmt"

// Zero sets the elements [offset, offset+count) to the zero value of T.
func (a *Array[L, T]) Zero(offset, count L) {
	a.runs(offset, count, func(_ L, run []T) {
		clear(run)
	})
}

// CopyIn overwrites the elements [offset, offset+len(src)) with src.
func (a *Array[L, T]) CopyIn(offset L, src []T) {
	a.runs(offset, sliceLen[L](src), func(done L, run []T) {
		copy(run, src[done:])
	})
}

// CopyOut fills dst from the elements [offset, offset+len(dst)).
func (a *Array[L, T]) CopyOut(dst []T, offset L) {
	a.runs(offset, sliceLen[L](dst), func(done L, run []T) {
		copy(dst[done:], run)
	})
}

// runs calls fn for each maximal run of [offset, offset+count) held by a
// single leaf, in index order. done is the number of elements visited by
// earlier calls.
func (a *Array[L, T]) runs(offset, count L, fn func(done L, run []T)) {
	if offset > a.length || count > a.length-offset {
		panic(fmt.Sprintf(
			"pagedarray: range [%d:%d+%d] out of range [0:%d]", offset, offset, count, a.length))
	}
	leafLen := LeafLen[L]()
	m := levelMask[L]()
	var done L
	for count > 0 {
		lo := offset & m
		n := min(leafLen-lo, count)
		fn(done, a.leaf(offset)[lo:lo+n])
		done += n
		offset += n
		count -= n
	}
}

func sliceLen[L Length, T any](s []T) L {
	if uint64(len(s)) > uint64(^L(0)) {
		panic(fmt.Sprintf("pagedarray: slice length %d exceeds the index range", len(s)))
	}
	return L(len(s))
}
