package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/weightvm/literal"
)

// ahoCorasickPrefilter searches for any of several literals at once.
//
// The automaton runs in leftmost-longest mode, so Find reports the literal
// that starts first even when a shorter literal ends earlier. MatchPrefix
// bounds the scan to the longest literal, since a literal starting at 0 must
// end within it.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns int
	maxLen   int
	bytes    int
}

func newAhoCorasickPrefilter(seq *literal.Seq) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	builder.SetMatchKind(ahocorasick.LeftmostLongest)
	total := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		total += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building Aho-Corasick automaton: %w", err)
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		patterns: seq.Len(),
		maxLen:   seq.MaxLen(),
		bytes:    total,
	}, nil
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// MatchPrefix implements Prefilter.MatchPrefix.
func (p *ahoCorasickPrefilter) MatchPrefix(haystack []byte) bool {
	if len(haystack) > p.maxLen {
		haystack = haystack[:p.maxLen]
	}
	m := p.auto.Find(haystack, 0)
	return m != nil && m.Start == 0
}

// HeapBytes returns an estimate based on the pattern bytes; the automaton's
// own tables are not exposed.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes
}

// String implements Prefilter.String.
func (p *ahoCorasickPrefilter) String() string {
	return fmt.Sprintf("aho-corasick(%d literals)", p.patterns)
}
