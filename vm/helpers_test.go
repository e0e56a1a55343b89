package vm

// trace records the path a match took. Concat appends, Merge keeps both
// sides in priority order, so tests can observe exactly how weights were
// combined.
type trace string

func (trace) Success() trace { return "" }

func (t trace) Concat(other trace) (trace, bool) { return t + other, true }

func (t trace) Merge(other trace) trace { return "(" + t + "|" + other + ")" }

// tag accepts any symbol with the given trace.
func tag(s string) Step[byte, trace] {
	return StepFunc[byte, trace](func(byte) (trace, bool) {
		return trace(s), true
	})
}

// echo accepts any symbol and records it.
var echo = StepFunc[byte, trace](func(c byte) (trace, bool) {
	return trace(string(c)), true
})

// cost is a bounded path length: each step costs its weight, paths longer
// than maxCost die, and alternatives keep the cheaper side.
type cost int

const maxCost = 3

func (cost) Success() cost { return 0 }

func (c cost) Concat(other cost) (cost, bool) {
	sum := c + other
	if sum > maxCost {
		return 0, false
	}
	return sum, true
}

func (c cost) Merge(other cost) cost { return min(c, other) }

type unitProgram = Program[byte, Unit, uint8]

func bytesRange(lo, hi byte) Range[byte, Unit] {
	return InRange[Unit](lo, hi)
}
