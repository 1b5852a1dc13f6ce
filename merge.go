package superposition

import (
	"fmt"
	"reflect"
)

/*
accumulator implements the weighted accumulate-by-outcome-key algebra shared
by basis construction, Interfere, and the branch/loop combinators. Entries
landing on the same outcome merge by complex addition; first-seen order is
preserved so downstream measurement walks stay deterministic.
*/
type accumulator struct {
	amps  map[any]Amplitude
	order []any
}

func newAccumulator() *accumulator {
	return &accumulator{amps: make(map[any]Amplitude)}
}

// add folds one weighted contribution into the accumulator. Outcome values
// must be Go-comparable; anything else cannot serve as a basis key.
func (ac *accumulator) add(value any, amp Amplitude) error {
	if !isComparable(value) {
		return fmt.Errorf(
			"%w: outcome value of type %T is not comparable", ErrInvalidArgument, value,
		)
	}
	existing, seen := ac.amps[value]
	if !seen {
		ac.order = append(ac.order, value)
		ac.amps[value] = amp
		return nil
	}
	ac.amps[value] = existing.Add(amp)
	return nil
}

// entries returns the accumulated outcomes in first-seen order.
func (ac *accumulator) entries() []Outcome {
	out := make([]Outcome, 0, len(ac.order))
	for _, v := range ac.order {
		out = append(out, Outcome{Value: v, Amplitude: ac.amps[v]})
	}
	return out
}

func (ac *accumulator) empty() bool {
	return len(ac.order) == 0
}

func isComparable(value any) bool {
	if value == nil {
		return true
	}
	return reflect.TypeOf(value).Comparable()
}
