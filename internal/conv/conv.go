// Package conv provides checked integer conversions for program counters.
//
// Narrowing a program counter into a caller-chosen width must never wrap:
// a wrapped counter would silently alias another instruction. Overflow here
// indicates a programming error (program too large for its PC type), so the
// helpers either report it or panic.
package conv

import "math"

// Unsigned is the set of integer types usable as program counters.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// ToUnsigned converts n to P, reporting false if n is negative or does not
// fit in P.
func ToUnsigned[P Unsigned](n int) (P, bool) {
	if n < 0 {
		return 0, false
	}
	p := P(n)
	if uint64(p) != uint64(n) {
		return 0, false
	}
	return p, true
}

// ToInt widens a program counter to int. Values beyond math.MaxInt saturate;
// they are past the end of any addressable program either way.
//
//go:inline
func ToInt[P Unsigned](p P) int {
	if uint64(p) > math.MaxInt {
		return math.MaxInt
	}
	return int(p)
}

// Bits returns the width of P in bits.
func Bits[P Unsigned]() int {
	var p P
	p--
	n := 0
	for u := uint64(p); u != 0; u >>= 1 {
		n++
	}
	return n
}

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
