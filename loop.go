package superposition

import "fmt"

// LoopBody transforms one outcome during a QuantumFor round. The result is
// coerced exactly like a branch result: superpositions contribute their
// basis, plain values become single deterministic outcomes.
type LoopBody func(value any, iteration int) (any, error)

// ForResult carries the final state of a QuantumFor together with every
// intermediate state, including the initial one: n rounds leave n+1
// snapshots.
type ForResult struct {
	Final   *Superposition
	History []*Superposition
}

/*
QuantumFor runs n merge rounds over the state. Each round applies the body
to every current outcome and merges the weighted results, so alternatives
branch and recombine instead of iterating a single value. The input state
is cloned, never mutated.
*/
func QuantumFor(n int, initial *Superposition, body LoopBody) (*ForResult, error) {
	if n < 0 {
		return nil, fmt.Errorf(
			"%w: iteration count must be non-negative, got %d", ErrOutOfRange, n,
		)
	}
	if initial == nil {
		return nil, fmt.Errorf("%w: initial state is not a superposition", ErrInvalidArgument)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: loop body must be callable", ErrInvalidArgument)
	}

	current := initial.Clone()
	history := make([]*Superposition, 0, n+1)
	history = append(history, current.Clone())

	for i := 0; i < n; i++ {
		acc := newAccumulator()
		for _, o := range current.Outcomes() {
			result, err := body(o.Value, i)
			if err != nil {
				return nil, err
			}
			if err := mergeWeighted(acc, result, o.Amplitude); err != nil {
				return nil, err
			}
		}
		next, err := finishMerge(acc, current.sampler)
		if err != nil {
			return nil, err
		}
		current = next
		history = append(history, current.Clone())
	}

	return &ForResult{Final: current, History: history}, nil
}

// WhileResult reports how a QuantumWhile ended: the final state, how many
// rounds ran, and whether the iteration cap cut the loop short.
type WhileResult struct {
	Final                     *Superposition
	Iterations                int
	TerminatedByMaxIterations bool
}

/*
QuantumWhile keeps transforming outcomes that satisfy the condition while
letting the rest pass through unchanged, merging both groups each round.
The loop ends as soon as no outcome satisfies the condition, or after
maxIterations rounds with satisfying outcomes still present.
*/
func QuantumWhile(condition func(value any) bool, body func(value any) (any, error), initial *Superposition, maxIterations int) (*WhileResult, error) {
	if maxIterations < 0 {
		return nil, fmt.Errorf(
			"%w: maximum iterations must be non-negative, got %d", ErrOutOfRange, maxIterations,
		)
	}
	if initial == nil {
		return nil, fmt.Errorf("%w: initial state is not a superposition", ErrInvalidArgument)
	}
	if condition == nil || body == nil {
		return nil, fmt.Errorf("%w: condition and body must be callable", ErrInvalidArgument)
	}

	current := initial.Clone()
	iterations := 0

	for iterations < maxIterations {
		if !anySatisfies(current, condition) {
			break
		}

		acc := newAccumulator()
		for _, o := range current.Outcomes() {
			if !condition(o.Value) {
				if err := acc.add(o.Value, o.Amplitude); err != nil {
					return nil, err
				}
				continue
			}
			result, err := body(o.Value)
			if err != nil {
				return nil, err
			}
			if err := mergeWeighted(acc, result, o.Amplitude); err != nil {
				return nil, err
			}
		}
		next, err := finishMerge(acc, current.sampler)
		if err != nil {
			return nil, err
		}
		current = next
		iterations++
	}

	return &WhileResult{
		Final:                     current,
		Iterations:                iterations,
		TerminatedByMaxIterations: anySatisfies(current, condition),
	}, nil
}

func anySatisfies(s *Superposition, condition func(value any) bool) bool {
	for _, o := range s.Outcomes() {
		if condition(o.Value) {
			return true
		}
	}
	return false
}
