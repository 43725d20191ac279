// bitutil.go implements the handful of bit tricks the rest of the package
// builds on: locating the least/most significant set bit of a word and
// counting set bits.

package engine

import "math/bits"

// lsb returns the zero-based index of the least significant set bit of bb.
// The result is undefined if bb is zero.
func lsb(bb uint64) int {
	return bits.TrailingZeros64(bb)
}

// msb returns the zero-based index of the most significant set bit of bb.
// The result is undefined if bb is zero.
func msb(bb uint64) int {
	return 63 - bits.LeadingZeros64(bb)
}

// popcount returns the number of set bits in bb.
func popcount(bb uint64) int {
	return bits.OnesCount64(bb)
}

// max returns the maximum of a and b.
func max(a, b int) int {
	if a >= b {
		return a
	}
	return b
}

// min returns the minimum of a and b.
func min(a, b int) int {
	if a <= b {
		return a
	}
	return b
}
