package vm

import (
	"fmt"

	"github.com/coregx/weightvm/internal/conv"
)

// Builder assembles a Program incrementally. Each Add method appends one
// instruction and returns its program counter; forward references are
// resolved later with Patch.
//
// Example (the language A[a-z]+ repeated):
//
//	b := vm.NewBuilder[byte, vm.Unit, uint8]()
//	start := b.Step(vm.InRange[vm.Unit](byte('A'), byte('A')))
//	b.Step(vm.InRange[vm.Unit](byte('a'), byte('z')))
//	b.PreferTarget(start)
//	prog, err := b.Build()
type Builder[T any, W Weight[W], P PC] struct {
	insts []pendingInst[T, W]
}

// pendingInst is an instruction whose target has not been narrowed to P yet.
type pendingInst[T, W any] struct {
	op     Op
	step   Step[T, W]
	target int
}

// NewBuilder creates a new empty program builder
func NewBuilder[T any, W Weight[W], P PC]() *Builder[T, W, P] {
	return &Builder[T, W, P]{
		insts: make([]pendingInst[T, W], 0, 16),
	}
}

// Step appends a Step instruction and returns its pc
func (b *Builder[T, W, P]) Step(s Step[T, W]) int {
	return b.add(pendingInst[T, W]{op: OpStep, step: s})
}

// Jump appends a Jump instruction and returns its pc
func (b *Builder[T, W, P]) Jump(to int) int {
	return b.add(pendingInst[T, W]{op: OpJump, target: to})
}

// PreferTarget appends a PreferTarget instruction and returns its pc
func (b *Builder[T, W, P]) PreferTarget(to int) int {
	return b.add(pendingInst[T, W]{op: OpPreferTarget, target: to})
}

// PreferNext appends a PreferNext instruction and returns its pc
func (b *Builder[T, W, P]) PreferNext(to int) int {
	return b.add(pendingInst[T, W]{op: OpPreferNext, target: to})
}

func (b *Builder[T, W, P]) add(inst pendingInst[T, W]) int {
	b.insts = append(b.insts, inst)
	return len(b.insts) - 1
}

// Patch sets the target of the control instruction at pc.
func (b *Builder[T, W, P]) Patch(pc, to int) error {
	if pc < 0 || pc >= len(b.insts) {
		return &BuildError{
			Message: "pc out of bounds",
			PC:      pc,
		}
	}

	inst := &b.insts[pc]
	if inst.op == OpStep {
		return &BuildError{
			Message: fmt.Sprintf("cannot patch instruction of kind %s", inst.op),
			PC:      pc,
		}
	}
	inst.target = to
	return nil
}

// Len returns the number of instructions added so far, which is also the pc
// the next instruction will get
func (b *Builder[T, W, P]) Len() int {
	return len(b.insts)
}

// Build narrows every target to P and validates the result.
func (b *Builder[T, W, P]) Build() (Program[T, W, P], error) {
	prog := make(Program[T, W, P], len(b.insts))
	for pc, inst := range b.insts {
		prog[pc] = Inst[T, W, P]{Op: inst.op, Step: inst.step}
		if inst.op == OpStep {
			continue
		}
		target, ok := conv.ToUnsigned[P](inst.target)
		if !ok {
			return nil, &ProgramError{PC: pc, Err: ErrPCOutOfRange}
		}
		prog[pc].Target = target
	}
	if err := Validate(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[T, W, P]) MustBuild() Program[T, W, P] {
	prog, err := b.Build()
	if err != nil {
		panic(err)
	}
	return prog
}
