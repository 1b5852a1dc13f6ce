package superposition

import (
	"fmt"
	"math"
)

/*
BranchFunc produces the replacement for one input outcome. The result may
be a *Superposition, whose whole basis contributes, or any plain value,
which is coerced to a single outcome with amplitude (1,0). Either way the
contribution is weighted by the input outcome's amplitude before merging.
*/
type BranchFunc func(value any) (any, error)

/*
QuantumIf routes every outcome of the condition through thenFn when the
outcome is truthy and elseFn otherwise, then merges the weighted results.
Branch results landing on the same value interfere by complex addition, so
a condition {true: √0.7, false: √0.3} with constant branches yields exactly
{then: 0.7, else: 0.3}.
*/
func QuantumIf(condition *Superposition, thenFn, elseFn BranchFunc) (*Superposition, error) {
	if condition == nil {
		return nil, fmt.Errorf("%w: condition is not a superposition", ErrInvalidArgument)
	}
	if thenFn == nil || elseFn == nil {
		return nil, fmt.Errorf("%w: both branches must be callable", ErrInvalidArgument)
	}

	acc := newAccumulator()
	for _, o := range condition.Outcomes() {
		branch := elseFn
		if isTruthy(o.Value) {
			branch = thenFn
		}
		result, err := branch(o.Value)
		if err != nil {
			return nil, err
		}
		if err := mergeWeighted(acc, result, o.Amplitude); err != nil {
			return nil, err
		}
	}
	return finishMerge(acc, condition.sampler)
}

/*
QuantumSwitch selects a case function per outcome value, falling back to
defaultFn when no case matches. Outcomes with neither a case nor a default
are dropped silently and contribute nothing; if every outcome drops, the
final construction fails because a superposition cannot be empty.
*/
func QuantumSwitch(state *Superposition, cases map[any]BranchFunc, defaultFn BranchFunc) (*Superposition, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: state is not a superposition", ErrInvalidArgument)
	}
	if cases == nil {
		return nil, fmt.Errorf("%w: cases must be a non-nil map", ErrInvalidArgument)
	}

	acc := newAccumulator()
	for _, o := range state.Outcomes() {
		branch, matched := cases[o.Value]
		if !matched || branch == nil {
			branch = defaultFn
		}
		if branch == nil {
			continue
		}
		result, err := branch(o.Value)
		if err != nil {
			return nil, err
		}
		if err := mergeWeighted(acc, result, o.Amplitude); err != nil {
			return nil, err
		}
	}
	return finishMerge(acc, state.sampler)
}

// mergeWeighted folds one branch result into the accumulator, scaling each
// contributed amplitude by the input outcome's amplitude.
func mergeWeighted(acc *accumulator, result any, weight Amplitude) error {
	for _, o := range coerceOutcomes(result) {
		if err := acc.add(o.Value, o.Amplitude.Multiply(weight)); err != nil {
			return err
		}
	}
	return nil
}

// finishMerge turns the accumulated map into a normalized state. An empty
// accumulation has no outcomes to build from.
func finishMerge(acc *accumulator, sampler Sampler) (*Superposition, error) {
	if acc.empty() {
		return nil, fmt.Errorf("%w: merge produced no outcomes", ErrEmptyInput)
	}
	return NewSuperposition(acc.entries(), WithSampler(sampler))
}

// coerceOutcomes flattens a branch result into weighted outcomes: a
// superposition contributes its basis, anything else is a single
// deterministic outcome.
func coerceOutcomes(result any) []Outcome {
	if s, ok := result.(*Superposition); ok && s != nil {
		return s.Outcomes()
	}
	return []Outcome{{Value: result, Amplitude: unitAmplitude()}}
}

// isTruthy applies dynamic truthiness: nil, false, zero numerics, NaN and
// the empty string are falsy; every other value is truthy.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	default:
		return true
	}
}
