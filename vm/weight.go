package vm

// Weight is the value extracted from a match, in the sense of a semiring:
// Success is "one", Concat is "multiply" and Merge is "add". Zero is never
// represented as a value; a false result from Concat means the path failed.
//
// W is used with value semantics: weights are copied whenever a thread forks,
// so implementations should not share mutable state between copies.
type Weight[W any] interface {
	// Success returns the weight a thread starts with. It is called on the
	// zero value of W.
	Success() W

	// Concat combines the weight accumulated so far (the receiver) with the
	// weight of the step that just succeeded. Even though both succeeded
	// individually they may be inconsistent together, in which case Concat
	// reports false and the thread dies.
	Concat(other W) (W, bool)

	// Merge combines the weight of a higher-priority alternative (the
	// receiver) with that of a lower-priority alternative which succeeded on
	// the same input. Both are valid matches, so Merge cannot fail, though it
	// may discard either side.
	Merge(other W) W
}

// Unit is the trivial weight: it only records that the input matched.
type Unit struct{}

// Success returns Unit{}.
func (Unit) Success() Unit { return Unit{} }

// Concat always succeeds.
func (Unit) Concat(Unit) (Unit, bool) { return Unit{}, true }

// Merge is a no-op.
func (Unit) Merge(Unit) Unit { return Unit{} }

// Fold combines two optional completed-match weights, where a has priority
// over b. If both are present the result is a.Merge(b).
func Fold[W Weight[W]](a W, aok bool, b W, bok bool) (W, bool) {
	switch {
	case aok && bok:
		return a.Merge(b), true
	case aok:
		return a, true
	case bok:
		return b, true
	}
	var zero W
	return zero, false
}
