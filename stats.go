package weightvm

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats tracks execution statistics of a Matcher.
type Stats struct {
	// Evaluations counts virtual machine runs.
	Evaluations uint64

	// Matches counts calls that returned a weight.
	Matches uint64

	// PrefilterRejects counts Match calls rejected without running the
	// virtual machine.
	PrefilterRejects uint64

	// PrefilterCandidates counts offsets proposed by the prefilter during
	// Search.
	PrefilterCandidates uint64
}

// counters is the concurrent form of Stats. Each counter sits on its own
// cache line, since every goroutine using the Matcher bumps them.
type counters struct {
	evaluations atomic.Uint64
	_           cpu.CacheLinePad
	matches     atomic.Uint64
	_           cpu.CacheLinePad
	rejects     atomic.Uint64
	_           cpu.CacheLinePad
	candidates  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Evaluations:         c.evaluations.Load(),
		Matches:             c.matches.Load(),
		PrefilterRejects:    c.rejects.Load(),
		PrefilterCandidates: c.candidates.Load(),
	}
}

func (c *counters) reset() {
	c.evaluations.Store(0)
	c.matches.Store(0)
	c.rejects.Store(0)
	c.candidates.Store(0)
}
