package superposition

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
Interfere combines several states into one by weighted amplitude summation.
For every outcome in the union of the input bases, the combined amplitude
is Σᵢ weightᵢ·amplitudeᵢ, with absent outcomes contributing zero. Opposite
phases cancel (destructive interference) and aligned phases reinforce
(constructive), which is exactly what makes this different from averaging
probabilities.

A nil weights slice means uniform 1/√n weighting. Explicit weights are
renormalized so their squares sum to 1.
*/
func Interfere(states []*Superposition, weights []float64) (*Superposition, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: interference requires at least one state", ErrEmptyInput)
	}
	for i, s := range states {
		if s == nil {
			return nil, fmt.Errorf("%w: state %d is nil", ErrEmptyInput, i)
		}
	}

	normalized, err := normalizeWeights(len(states), weights)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator()
	for i, s := range states {
		w := normalized[i]
		for _, o := range s.Outcomes() {
			scaled, err := o.Amplitude.Scale(w)
			if err != nil {
				return nil, err
			}
			if err := acc.add(o.Value, scaled); err != nil {
				return nil, err
			}
		}
	}

	entries := make([]Outcome, 0, len(acc.order))
	for _, o := range acc.entries() {
		if o.Amplitude.Magnitude() >= PruneEpsilon {
			entries = append(entries, o)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf(
			"%w: every outcome cancelled under interference", ErrDegenerateState,
		)
	}
	return NewSuperposition(entries, WithSampler(states[0].sampler))
}

func normalizeWeights(n int, weights []float64) ([]float64, error) {
	if weights == nil {
		uniform := make([]float64, n)
		w := 1 / math.Sqrt(float64(n))
		for i := range uniform {
			uniform[i] = w
		}
		return uniform, nil
	}
	if len(weights) != n {
		return nil, fmt.Errorf(
			"%w: %d weights for %d states", ErrInvalidArgument, len(weights), n,
		)
	}

	squares := make([]float64, n)
	for i, w := range weights {
		if !isFinite(w) {
			return nil, fmt.Errorf("%w: weight %d is not finite", ErrOutOfRange, i)
		}
		squares[i] = w * w
	}
	total := floats.Sum(squares)
	if total <= degenerateFloor {
		return nil, fmt.Errorf(
			"%w: interference weights are all near zero", ErrOutOfRange,
		)
	}

	normalized := make([]float64, n)
	scale := 1 / math.Sqrt(total)
	for i, w := range weights {
		normalized[i] = w * scale
	}
	return normalized, nil
}

// InterferenceKind classifies how an outcome fared under interference.
type InterferenceKind string

const (
	Constructive InterferenceKind = "constructive"
	Destructive  InterferenceKind = "destructive"
	Neutral      InterferenceKind = "neutral"
)

// InterferenceThresholds bound the combined/average probability ratio that
// separates constructive from destructive outcomes.
type InterferenceThresholds struct {
	Constructive float64
	Destructive  float64
}

// DefaultInterferenceThresholds returns the standard 1.2 / 0.8 split.
func DefaultInterferenceThresholds() InterferenceThresholds {
	return InterferenceThresholds{Constructive: 1.2, Destructive: 0.8}
}

// OutcomePattern is the per-outcome verdict of AnalyzeInterference.
type OutcomePattern struct {
	Value    any
	Combined float64
	Average  float64
	Ratio    float64
	Kind     InterferenceKind
}

// InterferenceAnalysis pairs the combined state with per-outcome patterns.
type InterferenceAnalysis struct {
	Combined *Superposition
	Patterns []OutcomePattern
}

/*
AnalyzeInterference interferes the states, then classifies every outcome in
the union of the input bases by the ratio of its combined probability to
the average of its individual probabilities across the inputs. Outcomes
that cancelled completely are still reported: they carry zero combined
probability and a ratio of 0, the strongest destructive verdict. An
outcome nobody predicted (average ≈ 0) gets a ratio of +Inf and counts as
constructive.
*/
func AnalyzeInterference(states []*Superposition, thresholds *InterferenceThresholds) (*InterferenceAnalysis, error) {
	t := DefaultInterferenceThresholds()
	if thresholds != nil {
		t = *thresholds
	}
	if !isFinite(t.Constructive) || !isFinite(t.Destructive) || t.Destructive >= t.Constructive {
		return nil, fmt.Errorf(
			"%w: destructive threshold %v must be below constructive %v",
			ErrOutOfRange, t.Destructive, t.Constructive,
		)
	}

	combined, err := Interfere(states, nil)
	if err != nil {
		return nil, err
	}

	patterns := make([]OutcomePattern, 0, combined.Size())
	seen := make(map[any]bool)
	for _, s := range states {
		for _, o := range s.Outcomes() {
			if seen[o.Value] {
				continue
			}
			seen[o.Value] = true

			// Pruned (fully cancelled) outcomes read back as zero here.
			combinedProb := combined.Amplitude(o.Value).MagnitudeSquared()

			sum := 0.0
			for _, in := range states {
				sum += in.Amplitude(o.Value).MagnitudeSquared()
			}
			average := sum / float64(len(states))

			ratio := math.Inf(1)
			if average > degenerateFloor {
				ratio = combinedProb / average
			}

			kind := Neutral
			switch {
			case ratio > t.Constructive:
				kind = Constructive
			case ratio < t.Destructive:
				kind = Destructive
			}

			patterns = append(patterns, OutcomePattern{
				Value:    o.Value,
				Combined: combinedProb,
				Average:  average,
				Ratio:    ratio,
				Kind:     kind,
			})
		}
	}

	return &InterferenceAnalysis{Combined: combined, Patterns: patterns}, nil
}
