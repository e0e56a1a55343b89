package vm

import (
	"cmp"
	"fmt"
)

// Step decides whether a single input symbol is acceptable at this point of
// the program, and with what weight. Implementations must be pure: the
// engine may call Step any number of times and in any order.
type Step[T, W any] interface {
	Step(input T) (W, bool)
}

// StepFunc adapts an ordinary function to the Step interface.
type StepFunc[T, W any] func(input T) (W, bool)

// Step returns f(input).
func (f StepFunc[T, W]) Step(input T) (W, bool) {
	return f(input)
}

// Range accepts any symbol in the inclusive range [Lo, Hi] with the Success
// weight of W.
type Range[T cmp.Ordered, W Weight[W]] struct {
	Lo, Hi T
}

// InRange returns a Range over [lo, hi]. The weight type must be given
// explicitly, e.g. InRange[Unit](byte('a'), byte('z')).
func InRange[W Weight[W], T cmp.Ordered](lo, hi T) Range[T, W] {
	return Range[T, W]{Lo: lo, Hi: hi}
}

// Step returns W.Success() if input lies within the range.
func (r Range[T, W]) Step(input T) (W, bool) {
	var w W
	if input < r.Lo || input > r.Hi {
		return w, false
	}
	return w.Success(), true
}

// Bounds returns the inclusive bounds of the range.
func (r Range[T, W]) Bounds() (lo, hi T) {
	return r.Lo, r.Hi
}

// String returns the range as "lo-hi", or "lo" when it holds a single value.
func (r Range[T, W]) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%v", r.Lo)
	}
	return fmt.Sprintf("%v-%v", r.Lo, r.Hi)
}
