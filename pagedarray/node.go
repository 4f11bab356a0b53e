package pagedarray

// node is one buffer of the tree. Internal nodes (levels 0 to 2) use
// children, leaves (level 3) use items. len() of the buffer in use is the
// allocated capacity, always a power of two or zero.
type node[T any] struct {
	children []*node[T]
	items    []T
}

// setNodeCap replaces the buffer held at slot with one of newCap entries,
// keeping the entries that fit. An empty slot gets a fresh node, a newCap of
// zero frees the node and clears the slot.
func setNodeCap[T any](slot **node[T], level int, newCap int) {
	if newCap == 0 {
		*slot = nil
		return
	}
	n := *slot
	if n == nil {
		n = &node[T]{}
		*slot = n
	}
	if level < leafLevel {
		children := make([]*node[T], newCap)
		copy(children, n.children)
		n.children = children
		return
	}
	items := make([]T, newCap)
	copy(items, n.items)
	n.items = items
}
