// Package vm provides a weighted, priority-ordered Pike VM.
//
// A Program is a flat sequence of four instruction kinds. The PikeVM runs a
// Program over a sequence of input symbols by advancing every live thread one
// symbol at a time, so evaluation never backtracks. Each thread carries a
// Weight accumulated along its path; completed matches are folded together
// in priority order. With the Unit weight the engine is a plain recognizer,
// while richer weights extract information from the match.
//
// Programs are assembled by the caller, directly or with a Builder. There is
// no pattern syntax.
package vm

import (
	"fmt"

	"github.com/coregx/weightvm/internal/conv"
)

// PC is the set of integer types usable as program counters. The chosen type
// must be able to represent len(program), the past-the-end position.
type PC = conv.Unsigned

// Op identifies the kind of an instruction.
type Op uint8

const (
	// OpStep tests the current symbol with the instruction's Step. On success
	// the thread continues at the next instruction with the concatenated
	// weight; otherwise it dies.
	OpStep Op = iota

	// OpJump continues at Target with the weight unchanged.
	OpJump

	// OpPreferTarget continues at Target, and adds a lower-priority thread at
	// the next instruction.
	OpPreferTarget

	// OpPreferNext continues at the next instruction, and adds a
	// lower-priority thread at Target.
	OpPreferNext
)

// String returns a human-readable representation of the Op
func (o Op) String() string {
	switch o {
	case OpStep:
		return "Step"
	case OpJump:
		return "Jump"
	case OpPreferTarget:
		return "PreferTarget"
	case OpPreferNext:
		return "PreferNext"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// Inst is a single instruction. Step is used only by OpStep; Target only by
// the control instructions.
type Inst[T, W any, P PC] struct {
	Op     Op
	Step   Step[T, W]
	Target P
}

// String returns a human-readable representation of the instruction
func (i Inst[T, W, P]) String() string {
	if i.Op == OpStep {
		return fmt.Sprintf("Step(%v)", i.Step)
	}
	return fmt.Sprintf("%s(%d)", i.Op, i.Target)
}

// StepInst returns an OpStep instruction.
func StepInst[T, W any, P PC](s Step[T, W]) Inst[T, W, P] {
	return Inst[T, W, P]{Op: OpStep, Step: s}
}

// JumpInst returns an OpJump instruction.
func JumpInst[T, W any, P PC](to P) Inst[T, W, P] {
	return Inst[T, W, P]{Op: OpJump, Target: to}
}

// PreferTargetInst returns an OpPreferTarget instruction.
func PreferTargetInst[T, W any, P PC](to P) Inst[T, W, P] {
	return Inst[T, W, P]{Op: OpPreferTarget, Target: to}
}

// PreferNextInst returns an OpPreferNext instruction.
func PreferNextInst[T, W any, P PC](to P) Inst[T, W, P] {
	return Inst[T, W, P]{Op: OpPreferNext, Target: to}
}

// Program is an ordered, 0-indexed instruction sequence. Reaching any program
// counter at or beyond len(program) completes a match.
//
// A Program is never modified by the engine and may be shared read-only by
// any number of PikeVMs and goroutines.
type Program[T, W any, P PC] []Inst[T, W, P]

// String returns one instruction per line, prefixed by its program counter.
func (p Program[T, W, P]) String() string {
	var out []byte
	for pc, inst := range p {
		out = fmt.Appendf(out, "%04d %s\n", pc, inst)
	}
	return string(out)
}
