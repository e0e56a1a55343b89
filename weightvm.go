// Package weightvm matches byte input against weighted programs.
//
// A Matcher wraps a vm.PikeVM over byte symbols with the pieces a caller
// needs in production: validation at compile time, a literal prefilter that
// skips the virtual machine when the input cannot match, pooled per-call
// state so one Matcher can be shared across goroutines, and counters.
//
// Basic usage:
//
//	b := vm.NewBuilder[byte, vm.Unit, uint8]()
//	b.Step(vm.InRange[vm.Unit](byte('a'), 'a'))
//	b.Step(vm.InRange[vm.Unit](byte('b'), 'b'))
//	prog, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := weightvm.MustCompile(prog)
//	_, ok := m.Match([]byte("ab!"))
//
// Programs over other symbol types, or callers that own their goroutines and
// state, can use the vm package directly.
package weightvm

import (
	"sync"

	"github.com/coregx/weightvm/literal"
	"github.com/coregx/weightvm/prefilter"
	"github.com/coregx/weightvm/vm"
)

// Matcher evaluates a byte program against inputs.
//
// A Matcher is safe for concurrent use by multiple goroutines.
type Matcher[W vm.Weight[W], P vm.PC] struct {
	pike   *vm.PikeVM[byte, W, P]
	pre    prefilter.Prefilter
	states sync.Pool
	stats  counters
}

// Compile validates prog and builds a Matcher with the default
// configuration.
func Compile[W vm.Weight[W], P vm.PC](prog vm.Program[byte, W, P]) (*Matcher[W, P], error) {
	return CompileWithConfig(prog, DefaultConfig())
}

// MustCompile is like Compile but panics if prog is invalid.
func MustCompile[W vm.Weight[W], P vm.PC](prog vm.Program[byte, W, P]) *Matcher[W, P] {
	m, err := Compile(prog)
	if err != nil {
		panic("weightvm: Compile: " + err.Error())
	}
	return m
}

// CompileWithConfig validates prog and builds a Matcher using config.
//
// The program is shared, not copied, and must not be modified afterwards.
func CompileWithConfig[W vm.Weight[W], P vm.PC](prog vm.Program[byte, W, P], config Config) (*Matcher[W, P], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := vm.Validate(prog); err != nil {
		return nil, err
	}

	m := &Matcher[W, P]{pike: vm.NewPikeVM(prog)}
	m.states.New = func() any {
		return m.pike.NewState()
	}

	var lits *literal.Seq
	if config.EnablePrefilter {
		lits = literal.ExtractPrefixes(prog, config.extractorConfig())
		m.pre = prefilter.New(lits)
	}

	config.logger().Debug("weightvm: compiled program",
		"instructions", len(prog),
		"literals", lits.Len(),
		"strategy", m.Strategy())
	return m, nil
}

// Program returns the program the Matcher evaluates.
func (m *Matcher[W, P]) Program() vm.Program[byte, W, P] {
	return m.pike.Program()
}

// Strategy names the prefilter in use, or "none".
func (m *Matcher[W, P]) Strategy() string {
	if m.pre == nil {
		return "none"
	}
	return m.pre.String()
}

// Match evaluates the program anchored at the start of b and returns the
// resulting weight. ok is false when nothing matched.
//
// The weight is that of the latest position at which some thread completed,
// merged across threads completing there in priority order.
func (m *Matcher[W, P]) Match(b []byte) (w W, ok bool) {
	if m.pre != nil && !m.pre.MatchPrefix(b) {
		m.stats.rejects.Add(1)
		return w, false
	}

	state := m.getState()
	defer m.putState(state)

	m.stats.evaluations.Add(1)
	w, ok = m.pike.EvalWithState(state, b)
	if ok {
		m.stats.matches.Add(1)
	}
	return w, ok
}

// MatchString is like Match but takes a string.
func (m *Matcher[W, P]) MatchString(s string) (W, bool) {
	return m.Match([]byte(s))
}

// Search evaluates the program anchored at each offset of b in turn and
// returns the weight for the leftmost offset that matches.
//
// With a prefilter, offsets that do not begin with a prefix literal are
// skipped without running the virtual machine.
func (m *Matcher[W, P]) Search(b []byte) (w W, ok bool) {
	state := m.getState()
	defer m.putState(state)

	for at := 0; at < len(b); at++ {
		if m.pre != nil {
			at = m.pre.Find(b, at)
			if at < 0 {
				break
			}
			m.stats.candidates.Add(1)
		}

		m.stats.evaluations.Add(1)
		if w, ok = m.pike.EvalWithState(state, b[at:]); ok {
			m.stats.matches.Add(1)
			return w, true
		}
	}
	var zero W
	return zero, false
}

// SearchString is like Search but takes a string.
func (m *Matcher[W, P]) SearchString(s string) (W, bool) {
	return m.Search([]byte(s))
}

// Stats returns a snapshot of the execution counters.
func (m *Matcher[W, P]) Stats() Stats {
	return m.stats.snapshot()
}

// ResetStats zeroes the execution counters.
func (m *Matcher[W, P]) ResetStats() {
	m.stats.reset()
}

func (m *Matcher[W, P]) getState() *vm.State[W, P] {
	return m.states.Get().(*vm.State[W, P])
}

func (m *Matcher[W, P]) putState(state *vm.State[W, P]) {
	m.states.Put(state)
}
