package game

import "golang.org/x/exp/constraints"

// Score is the value produced by static evaluation. Large positive values
// favor the maximizing side, large negative values the minimizing side.
type Score interface {
	constraints.Signed | constraints.Float
}

// Rules is everything a game must supply to be searchable.
//
// Positions are treated as immutable: the positions returned by Successors
// must not share mutable memory with p or with one another.
type Rules[P any, S Score] interface {
	// Successors returns every position reachable by one legal move of the
	// maximizing side (or the minimizing side if maximizing is false).
	// Enumeration order decides which of several equally scored moves wins.
	Successors(p P, maximizing bool) []P
	// Evaluate scores p from a fixed perspective, never relative to the side
	// to move. Terminal wins and losses must be more extreme than any
	// non-terminal evaluation.
	Evaluate(p P) S
}

// TerminalDetector is implemented by rules that can recognise finished
// games without expanding them.
type TerminalDetector[P any] interface {
	Terminal(p P) bool
}

// IsTerminal reports whether p is terminal under rules. Rules without a
// TerminalDetector never report terminal positions.
func IsTerminal[P any, S Score](rules Rules[P, S], p P) bool {
	if t, ok := rules.(TerminalDetector[P]); ok {
		return t.Terminal(p)
	}
	return false
}

// Funcs bundles closures into Rules. TerminalFn may be nil.
type Funcs[P any, S Score] struct {
	SuccessorsFn func(p P, maximizing bool) []P
	EvaluateFn   func(p P) S
	TerminalFn   func(p P) bool
}

func (f Funcs[P, S]) Successors(p P, maximizing bool) []P {
	return f.SuccessorsFn(p, maximizing)
}

func (f Funcs[P, S]) Evaluate(p P) S {
	return f.EvaluateFn(p)
}

func (f Funcs[P, S]) Terminal(p P) bool {
	if f.TerminalFn == nil {
		return false
	}
	return f.TerminalFn(p)
}

// Infinity returns +Inf for floating point scores and the largest
// representable value for integer scores. -Infinity[S]() is the matching
// lower bound.
func Infinity[S Score]() S {
	var zero, one S = 0, 1
	if one/2 != zero { // Floating point
		return one / zero
	}

	hi := one
	for next := hi*2 + 1; next > hi; next = hi*2 + 1 {
		hi = next
	}
	return hi
}
