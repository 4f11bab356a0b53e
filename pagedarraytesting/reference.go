package pagedarraytesting

// Reference is a flat, slice backed array with the same operations as a
// paged array. It is the oracle the soak compares against.
type Reference[T any] struct {
	items []T
}

func (r *Reference[T]) Len() int { return len(r.items) }

// Resize preserves the common prefix; grown elements are zero.
func (r *Reference[T]) Resize(n int) {
	if n <= cap(r.items) {
		old := len(r.items)
		r.items = r.items[:n]
		if n > old {
			clear(r.items[old:])
		}
		return
	}
	items := make([]T, n)
	copy(items, r.items)
	r.items = items
}

func (r *Reference[T]) Get(i int) T           { return r.items[i] }
func (r *Reference[T]) Set(i int, v T)        { r.items[i] = v }
func (r *Reference[T]) Zero(i, n int)         { clear(r.items[i : i+n]) }
func (r *Reference[T]) CopyIn(i int, src []T) { copy(r.items[i:], src) }

func (r *Reference[T]) CopyOut(dst []T, i int) { copy(dst, r.items[i:]) }
