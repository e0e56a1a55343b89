package prefilter

import (
	"bytes"
	"fmt"
)

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle byte
}

func newMemchrPrefilter(needle byte) *memchrPrefilter {
	return &memchrPrefilter{needle: needle}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	pos := bytes.IndexByte(haystack[start:], p.needle)
	if pos == -1 {
		return -1
	}
	return start + pos
}

// MatchPrefix implements Prefilter.MatchPrefix.
func (p *memchrPrefilter) MatchPrefix(haystack []byte) bool {
	return len(haystack) > 0 && haystack[0] == p.needle
}

// HeapBytes returns 0: the needle is stored inline.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// String implements Prefilter.String.
func (p *memchrPrefilter) String() string {
	return fmt.Sprintf("memchr(%q)", p.needle)
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle []byte
}

func newMemmemPrefilter(needle []byte) *memmemPrefilter {
	return &memmemPrefilter{needle: bytes.Clone(needle)}
}

// Find implements Prefilter.Find using bytes.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	pos := bytes.Index(haystack[start:], p.needle)
	if pos == -1 {
		return -1
	}
	return start + pos
}

// MatchPrefix implements Prefilter.MatchPrefix.
func (p *memmemPrefilter) MatchPrefix(haystack []byte) bool {
	return bytes.HasPrefix(haystack, p.needle)
}

// HeapBytes returns the size of the copied needle.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// String implements Prefilter.String.
func (p *memmemPrefilter) String() string {
	return fmt.Sprintf("memmem(%q)", p.needle)
}
