package pagedarray

import "unsafe"

// Length is the index and capacity type of an array. The choice of 32 or 64
// bits is made once, by the type argument, and fixes the tree geometry.
type Length interface {
	~uint32 | ~uint64
}

// Levels is the fixed depth of the node tree. Levels 0 to 2 hold child
// pointers, level 3 holds elements.
const Levels = 4

const leafLevel = Levels - 1

// width is the bit width W of L.
func width[L Length]() uint {
	return uint(unsafe.Sizeof(L(0))) * 8
}

// levelShift is D, the number of index bits consumed per level.
func levelShift[L Length]() uint {
	return width[L]() / Levels
}

// LeafLen is the maximum number of elements (2^D) held by one leaf node, and
// equally the maximum number of children of an internal node.
func LeafLen[L Length]() L {
	return L(1) << levelShift[L]()
}

func levelMask[L Length]() L {
	return LeafLen[L]() - 1
}

// EntryLen is the index range covered by one child of a node at level:
// 2^(D*(3-level)).
func EntryLen[L Length](level int) L {
	if level < 0 || level > leafLevel {
		panic("pagedarray: level out of range")
	}
	return L(1) << (levelShift[L]() * uint(leafLevel-level))
}
