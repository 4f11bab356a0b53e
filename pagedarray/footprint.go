package pagedarray

import "unsafe"

var ptrBytes = uint64(unsafe.Sizeof(uintptr(0)))

// Footprint returns the bytes of node storage a tree of length n holds: the
// pointer slots of internal nodes plus the element storage of leaves, each
// at its power of two capacity. Per node bookkeeping is not included.
//
// The result saturates at MaxUint64.
func Footprint[L Length, T any](n L) uint64 {
	var zero T
	return footprint(0, n, uint64(unsafe.Sizeof(zero)))
}

func footprint[L Length](level int, n L, elemBytes uint64) uint64 {
	if n == 0 {
		return 0
	}
	entryLen := EntryLen[L](level)
	children := HowMany(n, entryLen)

	if level == leafLevel {
		return satMul(uint64(CeilPow2(children)), elemBytes)
	}
	total := satMul(uint64(CeilPow2(children)), ptrBytes)

	// every child but the last is full
	full := children - 1
	if full > 0 {
		total = satAdd(total, satMul(uint64(full), footprint(level+1, entryLen, elemBytes)))
	}
	return satAdd(total, footprint(level+1, n-full*entryLen, elemBytes))
}
