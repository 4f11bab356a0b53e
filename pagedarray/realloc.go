package pagedarray

import "fmt"

// realloc grows or shrinks the sub tree at slot, rooted at level, so that it
// covers newLen indices, given that it currently covers exactly oldLen.
//
// Order matters. A node is grown before its children are visited, so that
// a child has a parent slot to store itself in. A node is shrunk only after
// its children are visited, so that children being dropped are still
// reachable and release their own descendants first.
func realloc[L Length, T any](level int, oldLen, newLen L, slot **node[T]) {
	if level > leafLevel {
		panic(fmt.Sprintf("pagedarray: realloc level %d exceeds tree depth", level))
	}
	if oldLen == newLen {
		return
	}

	entryLen := EntryLen[L](level)

	// oldN, newN <= 2^D because a level 0 entry covers 2^(3D) indices
	oldN := HowMany(oldLen, entryLen)
	newN := HowMany(newLen, entryLen)
	oldCap := int(CeilPow2(oldN))
	newCap := int(CeilPow2(newN))

	if newCap > oldCap {
		setNodeCap(slot, level, newCap)
	}

	if level < leafLevel {
		n := *slot
		for i := L(0); i < max(oldN, newN); i++ {
			oldSub := min(oldLen, entryLen)
			newSub := min(newLen, entryLen)
			realloc(level+1, oldSub, newSub, &n.children[i])
			oldLen -= oldSub
			newLen -= newSub
		}
		if oldLen != 0 || newLen != 0 {
			panic(fmt.Sprintf(
				"pagedarray: realloc level %d left %d old and %d new indices unassigned",
				level, oldLen, newLen))
		}
	} else if newLen < oldLen && newCap != 0 {
		// A kept leaf, or the part of it that survives a shrink, must read
		// as zero where it is grown into again.
		clear((*slot).items[newLen:oldLen])
	}

	if newCap < oldCap {
		setNodeCap(slot, level, newCap)
	}
}
