package vm

import (
	"iter"

	"github.com/coregx/weightvm/internal/conv"
	"github.com/coregx/weightvm/internal/sparse"
)

// PikeVM evaluates a Program against input sequences.
// It simulates the program by maintaining one ordered thread list per input
// position and advancing every thread in lock step, so the running time is
// bounded by len(input) * len(program) expansions.
//
// Thread safety: the program is never modified and may be shared. Eval and
// EvalSeq use internal scratch state and are NOT safe for concurrent use; a
// new evaluation must not start while another is running on the same PikeVM.
// For concurrent usage, give each goroutine its own State and use the
// *WithState methods.
type PikeVM[T any, W Weight[W], P PC] struct {
	prog Program[T, W, P]

	// internalState is used by Eval and EvalSeq.
	internalState State[W, P]
}

// State holds the mutable per-evaluation scratch buffers of a PikeVM.
// A State is cleared at the start of every evaluation and may be reused
// indefinitely, but must not be used by two evaluations at once.
type State[W any, P PC] struct {
	// threads is the thread list being built for the next input position,
	// in priority order.
	threads []thread[W, P]

	// spare holds the backing array of the previous generation so the two
	// lists can be swapped without allocating.
	spare []thread[W, P]

	// index maps a program counter to its position in threads. It is only
	// meaningful while a single symbol is being processed.
	index *sparse.SparseSet
}

// Len returns the number of live threads left by the last evaluation.
func (s *State[W, P]) Len() int {
	return len(s.threads)
}

// prepare sizes the buffers for a program of n instructions.
func (s *State[W, P]) prepare(n int) {
	capacity := conv.IntToUint32(n + 1)
	if s.index == nil {
		s.index = sparse.NewSparseSet(capacity)
	} else if s.index.Capacity() < int(capacity) {
		s.index.Resize(capacity)
	}
	clear(s.threads)
	s.threads = s.threads[:0]
}

// thread is one live continuation of the program at the current position.
type thread[W any, P PC] struct {
	pc     P
	weight W
}

// NewPikeVM creates a new PikeVM for evaluating the given program.
// The program is not validated; see Validate.
func NewPikeVM[T any, W Weight[W], P PC](prog Program[T, W, P]) *PikeVM[T, W, P] {
	p := &PikeVM[T, W, P]{
		prog: prog,
	}
	p.initState(&p.internalState)
	return p
}

// initState pre-allocates a State for this PikeVM's program.
func (p *PikeVM[T, W, P]) initState(state *State[W, P]) {
	capacity := len(p.prog) + 1
	if capacity < 16 {
		capacity = 16
	}
	state.threads = make([]thread[W, P], 0, capacity)
	state.spare = make([]thread[W, P], 0, capacity)
	state.index = sparse.NewSparseSet(conv.IntToUint32(len(p.prog) + 1))
}

// NewState returns a State sized for this PikeVM, for use with the
// *WithState methods.
func (p *PikeVM[T, W, P]) NewState() *State[W, P] {
	state := &State[W, P]{}
	p.initState(state)
	return state
}

// Program returns the program being evaluated.
func (p *PikeVM[T, W, P]) Program() Program[T, W, P] {
	return p.prog
}

// Eval runs the program over input and returns the weight of the best
// completed match, or false if nothing matched.
//
// Matches completed at a later input position always replace those completed
// earlier, so the result reflects the longest matching prefix of input.
// Evaluation stops as soon as no thread is left alive.
//
// Panics with *PCRangeError if a program counter overflows P, and with
// *ProgramError if the program loops without consuming input.
func (p *PikeVM[T, W, P]) Eval(input []T) (W, bool) {
	return p.EvalWithState(&p.internalState, input)
}

// EvalSeq is like Eval but reads symbols from an iterator. The iterator is
// abandoned once no thread is alive, so it may be unbounded.
func (p *PikeVM[T, W, P]) EvalSeq(input iter.Seq[T]) (W, bool) {
	return p.EvalSeqWithState(&p.internalState, input)
}

// EvalWithState is like Eval but uses external scratch state.
// This method is safe for concurrent use as long as each goroutine passes
// its own State.
func (p *PikeVM[T, W, P]) EvalWithState(state *State[W, P], input []T) (W, bool) {
	p.start(state)
	var result W
	found := false
	for _, sym := range input {
		if w, ok := p.advance(state, sym); ok {
			result, found = w, true
		}
		if len(state.threads) == 0 {
			break
		}
	}
	return result, found
}

// EvalSeqWithState is like EvalSeq but uses external scratch state.
func (p *PikeVM[T, W, P]) EvalSeqWithState(state *State[W, P], input iter.Seq[T]) (W, bool) {
	p.start(state)
	var result W
	found := false
	for sym := range input {
		if w, ok := p.advance(state, sym); ok {
			result, found = w, true
		}
		if len(state.threads) == 0 {
			break
		}
	}
	return result, found
}

// start resets state and seeds the single initial thread at pc 0.
func (p *PikeVM[T, W, P]) start(state *State[W, P]) {
	state.prepare(len(p.prog))
	var w W
	state.threads = append(state.threads, thread[W, P]{pc: 0, weight: w.Success()})
}

// advance feeds one symbol to every live thread in priority order. It
// rebuilds state.threads for the next position and returns the fold of all
// matches completed at this position.
func (p *PikeVM[T, W, P]) advance(state *State[W, P], sym T) (W, bool) {
	state.index.Clear()
	current := state.threads
	state.threads = state.spare[:0]
	state.spare = current

	var matched W
	found := false
	for _, t := range current {
		w, ok := p.add(state, conv.ToInt(t.pc), t.weight, sym, 0)
		matched, found = Fold(matched, found, w, ok)
	}

	clear(current)
	state.spare = current[:0]
	return matched, found
}

// add expands the thread (pc, weight) against sym. Control instructions are
// followed immediately; a Step registers a thread for the next position.
// The result is the weight of a match completed without consuming sym.
//
// depth counts the control instructions followed so far. A chain longer than
// the program must revisit an instruction with the same weight and symbol,
// which would recurse forever.
func (p *PikeVM[T, W, P]) add(state *State[W, P], pc int, weight W, sym T, depth int) (W, bool) {
	var zero W

	// Walking off the end of the program indicates a successful match.
	if pc >= len(p.prog) {
		return weight, true
	}
	if depth >= len(p.prog) {
		panic(&ProgramError{PC: pc, Err: ErrControlCycle})
	}

	inst := &p.prog[pc]
	switch inst.Op {
	case OpStep:
		cur, ok := inst.Step.Step(sym)
		if !ok {
			return zero, false
		}
		next, ok := weight.Concat(cur)
		if !ok {
			return zero, false
		}
		p.register(state, pc+1, next)
		return zero, false

	case OpJump:
		return p.add(state, conv.ToInt(inst.Target), weight, sym, depth+1)

	case OpPreferTarget:
		a, aok := p.add(state, conv.ToInt(inst.Target), weight, sym, depth+1)
		b, bok := p.add(state, pc+1, weight, sym, depth+1)
		return Fold(a, aok, b, bok)

	case OpPreferNext:
		a, aok := p.add(state, pc+1, weight, sym, depth+1)
		b, bok := p.add(state, conv.ToInt(inst.Target), weight, sym, depth+1)
		return Fold(a, aok, b, bok)

	default:
		panic(&ProgramError{PC: pc, Err: ErrInvalidOp})
	}
}

// register adds a thread at pc for the next position. If an earlier,
// higher-priority path already reached pc, the new weight is merged into it.
func (p *PikeVM[T, W, P]) register(state *State[W, P], pc int, weight W) {
	next := asPC[P](pc)
	key := conv.IntToUint32(pc)
	if idx, ok := state.index.Index(key); ok {
		t := &state.threads[idx]
		t.weight = t.weight.Merge(weight)
		return
	}
	state.index.Insert(key)
	state.threads = append(state.threads, thread[W, P]{pc: next, weight: weight})
}

// asPC narrows pc to P, panicking if it does not fit.
func asPC[P PC](pc int) P {
	v, ok := conv.ToUnsigned[P](pc)
	if !ok {
		panic(&PCRangeError{PC: pc, Bits: conv.Bits[P]()})
	}
	return v
}
