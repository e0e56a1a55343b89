// Package keyset provides a 128-bit key-set weight for the vm package.
//
// A Set holds candidate keys 0..127. Concatenation intersects the candidates
// observed along a path, merging unions alternatives, so evaluating a program
// whose steps map each symbol to the keys consistent with it yields exactly
// the keys consistent with the whole input.
//
// Shift is such a step for Caesar ciphers over the 7-bit alphabet: given a
// ciphertext symbol C it returns every key K with C = P + K (mod 128) for a
// plaintext symbol P in its range.
package keyset

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Size is the number of distinct keys a Set can hold.
const Size = 128

// Set is a set of keys in [0, Size). The zero value is the empty set, which
// is never produced by a successful Concat.
type Set struct {
	lo, hi uint64 // keys 0-63 and 64-127
}

// All returns the set of every key.
func All() Set {
	return Set{lo: ^uint64(0), hi: ^uint64(0)}
}

// Key returns the set holding only k. Panics if k is out of range.
func Key(k int) Set {
	if k < 0 || k >= Size {
		panic("keyset: key " + strconv.Itoa(k) + " out of range")
	}
	if k < 64 {
		return Set{lo: 1 << k}
	}
	return Set{hi: 1 << (k - 64)}
}

// Success returns the set of all keys: before any symbol is seen, every key
// is a candidate.
func (Set) Success() Set {
	return All()
}

// Concat intersects the candidates, failing when none are left.
func (s Set) Concat(other Set) (Set, bool) {
	out := Set{lo: s.lo & other.lo, hi: s.hi & other.hi}
	return out, !out.IsEmpty()
}

// Merge unions the candidates of two alternatives.
func (s Set) Merge(other Set) Set {
	return Set{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

// Has reports whether k is in the set.
func (s Set) Has(k int) bool {
	switch {
	case k < 0 || k >= Size:
		return false
	case k < 64:
		return s.lo&(1<<k) != 0
	default:
		return s.hi&(1<<(k-64)) != 0
	}
}

// IsEmpty reports whether the set has no keys.
func (s Set) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Len returns the number of keys in the set.
func (s Set) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// Keys returns the keys in ascending order.
func (s Set) Keys() []int {
	keys := make([]int, 0, s.Len())
	for w, base := range [2]uint64{s.lo, s.hi} {
		for ; base != 0; base &= base - 1 {
			keys = append(keys, w*64+bits.TrailingZeros64(base))
		}
	}
	return keys
}

// String formats the set as {k1 k2 ...}.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(k))
	}
	sb.WriteByte('}')
	return sb.String()
}

// rotateLeft rotates the 128-bit set left by k positions: key i becomes key
// (i+k) mod Size.
func (s Set) rotateLeft(k int) Set {
	k %= Size
	if k < 0 {
		k += Size
	}
	lo, hi := s.lo, s.hi
	if k >= 64 {
		lo, hi = hi, lo
		k -= 64
	}
	if k == 0 {
		return Set{lo: lo, hi: hi}
	}
	return Set{
		lo: lo<<k | hi>>(64-k),
		hi: hi<<k | lo>>(64-k),
	}
}

// span returns the set {0, ..., n-1}.
func span(n int) Set {
	switch {
	case n <= 0:
		return Set{}
	case n >= Size:
		return All()
	case n >= 64:
		return Set{lo: ^uint64(0), hi: 1<<(n-64) - 1}
	default:
		return Set{lo: 1<<n - 1}
	}
}

// Shift is a Caesar-cipher step over 7-bit symbols. For a ciphertext symbol
// it returns the keys that map some plaintext symbol in [Lo, Hi] onto it.
// Lo must not exceed Hi; both are interpreted modulo 128.
type Shift struct {
	Lo, Hi byte
}

// Step returns the candidate keys for the ciphertext symbol c. Since
// K = C - P (mod 128) and P ranges over [Lo, Hi], the keys form the run of
// Hi-Lo+1 consecutive values starting at C - Hi.
func (s Shift) Step(c byte) (Set, bool) {
	n := int(s.Hi) - int(s.Lo) + 1
	start := int((c - s.Hi) % Size)
	keys := span(n).rotateLeft(start)
	return keys, !keys.IsEmpty()
}

// String returns the plaintext range of the step.
func (s Shift) String() string {
	return fmt.Sprintf("shift[%q-%q]", s.Lo, s.Hi)
}

// Encrypt shifts every symbol of plaintext by key within the 7-bit alphabet.
func Encrypt(plaintext []byte, key int) []byte {
	out := make([]byte, len(plaintext))
	for i, p := range plaintext {
		out[i] = byte(((int(p)+key)%Size + Size) % Size)
	}
	return out
}
