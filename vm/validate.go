package vm

import "github.com/coregx/weightvm/internal/conv"

// Validate checks that prog is well formed:
//   - len(prog) fits in P, so every reachable pc is representable
//   - every Step instruction has a Step and every Op is known
//   - no control target lies beyond the end of the program
//   - every cycle passes through at least one Step instruction
//
// The PikeVM does not require validation, but a program failing it will
// either panic or behave in ways that are rarely intended. Errors are
// returned as *ProgramError.
func Validate[T, W any, P PC](prog Program[T, W, P]) error {
	n := len(prog)
	if _, ok := conv.ToUnsigned[P](n); !ok {
		return &ProgramError{PC: -1, Err: ErrProgramTooLarge}
	}

	for pc, inst := range prog {
		switch inst.Op {
		case OpStep:
			if inst.Step == nil {
				return &ProgramError{PC: pc, Err: ErrNilStep}
			}
		case OpJump, OpPreferTarget, OpPreferNext:
			if conv.ToInt(inst.Target) > n {
				return &ProgramError{PC: pc, Err: ErrDanglingTarget}
			}
		default:
			return &ProgramError{PC: pc, Err: ErrInvalidOp}
		}
	}

	if pc := findControlCycle(prog); pc >= 0 {
		return &ProgramError{PC: pc, Err: ErrControlCycle}
	}
	return nil
}

// findControlCycle returns a pc on a cycle made only of control
// instructions, or -1. It is an iterative depth-first search over the
// control-flow edges; Step instructions and the end of the program are
// sinks.
func findControlCycle[T, W any, P PC](prog Program[T, W, P]) int {
	const (
		white = iota
		gray
		black
	)
	type frame struct {
		pc   int
		edge int
	}

	n := len(prog)
	color := make([]uint8, n)
	var stack []frame

	for root := range n {
		if color[root] != white || prog[root].Op == OpStep {
			continue
		}
		color[root] = gray
		stack = append(stack[:0], frame{pc: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ, ok := controlEdge(prog, top.pc, top.edge)
			if !ok {
				color[top.pc] = black
				stack = stack[:len(stack)-1]
				continue
			}
			top.edge++

			if succ >= n || prog[succ].Op == OpStep {
				continue
			}
			switch color[succ] {
			case gray:
				return succ
			case white:
				color[succ] = gray
				stack = append(stack, frame{pc: succ})
			}
		}
	}
	return -1
}

// controlEdge returns the edge-th non-consuming successor of pc.
func controlEdge[T, W any, P PC](prog Program[T, W, P], pc, edge int) (int, bool) {
	inst := &prog[pc]
	target := conv.ToInt(inst.Target)
	switch inst.Op {
	case OpJump:
		if edge == 0 {
			return target, true
		}
	case OpPreferTarget, OpPreferNext:
		switch edge {
		case 0:
			return target, true
		case 1:
			return pc + 1, true
		}
	}
	return 0, false
}
