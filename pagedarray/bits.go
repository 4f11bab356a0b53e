package pagedarray

import "math/bits"

// HowMany returns the number of d sized units needed to hold v, ceil(v/d).
//
// It does not overflow for any v, unlike the more usual (v+d-1)/d.
func HowMany[L Length](v, d L) L {
	n := v / d
	if v%d != 0 {
		n++
	}
	return n
}

// RoundUp returns the smallest multiple of d that is >= v.
//
// The result wraps if that multiple is not representable in L.
func RoundUp[L Length](v, d L) L {
	return HowMany(v, d) * d
}

// CeilPow2 returns the smallest power of two >= v.
//
// 0, 1 and 2 are returned unchanged: 0 means no allocation, 1 a single slot
// and 2 is already a power of two. Values above the largest power of two
// representable in L return 0.
func CeilPow2[L Length](v L) L {
	if v <= 2 {
		return v
	}
	// 1 << (W - clz(v-1)), counted in 64 bits so both widths share the trick.
	// Go shifts of 64 or more produce 0 which gives the documented overflow.
	return L(uint64(1) << (64 - bits.LeadingZeros64(uint64(v-1))))
}

// IsPow2 reports whether v is a perfect power of two.
func IsPow2[L Length](v L) bool {
	return v != 0 && v&(v-1) == 0
}

// satMul and satAdd saturate at MaxUint64 rather than wrap. Footprints of
// 64 bit lengths exceed the byte range of the machine.
func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}

func satAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}
