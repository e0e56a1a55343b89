// Package prefilter provides fast candidate filtering over literal prefixes
// extracted from byte programs.
//
// A prefilter rejects input that cannot possibly match before the virtual
// machine runs: when every match must start with one of a set of literals,
// an input starting with none of them has no match, and an unanchored search
// only needs to try offsets where a literal occurs.
//
// The package selects the strategy from the extracted literals:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	prefixes := literal.ExtractPrefixes(prog, literal.DefaultConfig())
//	pf := prefilter.New(prefixes)
//	if pf != nil && !pf.MatchPrefix(input) {
//	    return // no match possible
//	}
package prefilter

import (
	"github.com/coregx/weightvm/literal"
)

// Prefilter finds positions where a match may start.
//
// A candidate position is one where some literal occurs. This does NOT
// guarantee a match; the caller must verify it with the virtual machine.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if no candidate exists.
	Find(haystack []byte, start int) int

	// MatchPrefix reports whether haystack starts with one of the literals.
	MatchPrefix(haystack []byte) bool

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int

	// String names the strategy, for diagnostics.
	String() string
}

// New builds the best prefilter for the given prefix literals, or returns
// nil if seq is empty.
func New(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0])
		}
		return newMemmemPrefilter(lit.Bytes)
	}

	pf, err := newAhoCorasickPrefilter(seq)
	if err != nil {
		return nil
	}
	return pf
}
