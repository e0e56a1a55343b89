package vm

import (
	"errors"
	"fmt"
)

// Program errors
var (
	// ErrPCOutOfRange indicates a program counter that cannot be represented
	// in the program's PC type
	ErrPCOutOfRange = errors.New("program counter out of range")

	// ErrProgramTooLarge indicates the past-the-end position of a program
	// does not fit its PC type
	ErrProgramTooLarge = errors.New("program too large for PC type")

	// ErrDanglingTarget indicates a control instruction targets a position
	// beyond the end of the program
	ErrDanglingTarget = errors.New("jump target beyond end of program")

	// ErrControlCycle indicates a cycle made only of control instructions,
	// which would expand forever without consuming input
	ErrControlCycle = errors.New("control cycle does not pass through a step")

	// ErrNilStep indicates a Step instruction without a Step
	ErrNilStep = errors.New("step instruction has nil step")

	// ErrInvalidOp indicates an unknown instruction kind
	ErrInvalidOp = errors.New("invalid instruction")
)

// ProgramError reports a defect in a program at a specific instruction
type ProgramError struct {
	PC  int
	Err error
}

// Error implements the error interface
func (e *ProgramError) Error() string {
	if e.PC >= 0 {
		return fmt.Sprintf("vm: program error at pc %d: %v", e.PC, e.Err)
	}
	return fmt.Sprintf("vm: program error: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *ProgramError) Unwrap() error {
	return e.Err
}

// PCRangeError is the panic value raised when evaluation computes a program
// counter that does not fit the program's PC type. It always wraps
// ErrPCOutOfRange.
type PCRangeError struct {
	PC   int
	Bits int
}

// Error implements the error interface
func (e *PCRangeError) Error() string {
	return fmt.Sprintf("vm: PC %d out of range for %d-bit program counter", e.PC, e.Bits)
}

// Unwrap returns ErrPCOutOfRange
func (e *PCRangeError) Unwrap() error {
	return ErrPCOutOfRange
}

// BuildError represents an error during program construction via the Builder API
type BuildError struct {
	Message string
	PC      int
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.PC >= 0 {
		return fmt.Sprintf("vm: build error at pc %d: %s", e.PC, e.Message)
	}
	return fmt.Sprintf("vm: build error: %s", e.Message)
}
