package superposition

import (
	"fmt"
	"math"
)

/*
Candidate is the shape a candidate-gathering collaborator hands the engine:
an outcome value plus the weight and confidence its source assigned.
Both are combined into an amplitude magnitude of √(weight·confidence) with
zero phase, so relative weights survive the Born rule intact.
*/
type Candidate struct {
	Value      any
	Weight     float64
	Confidence float64
}

// FromCandidates builds a normalized superposition from raw candidates.
func FromCandidates(candidates []Candidate, opts ...Option) (*Superposition, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates to superpose", ErrEmptyInput)
	}

	outcomes := make([]Outcome, 0, len(candidates))
	for i, c := range candidates {
		if !isFinite(c.Weight) || c.Weight < 0 || !isFinite(c.Confidence) || c.Confidence < 0 {
			return nil, fmt.Errorf(
				"%w: candidate %d has weight %v, confidence %v",
				ErrOutOfRange, i, c.Weight, c.Confidence,
			)
		}
		amp, err := AmplitudeFromPolar(math.Sqrt(c.Weight*c.Confidence), 0)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, Outcome{Value: c.Value, Amplitude: amp})
	}
	return NewSuperposition(outcomes, opts...)
}

/*
Reweight scales every outcome's amplitude magnitude by a verification score
in [0,1], retaining phase. Entries whose new magnitude falls below the
prune epsilon drop out; emptying the basis entirely is degenerate. The
change is staged before committing, so a failing score leaves the state
untouched, and the final renormalization propagates through correlations
as usual.
*/
func (s *Superposition) Reweight(score func(value any) (float64, error)) error {
	if score == nil {
		return fmt.Errorf("%w: score function must be callable", ErrInvalidArgument)
	}

	staged := make(map[any]Amplitude, len(s.order))
	stagedOrder := make([]any, 0, len(s.order))
	for _, k := range s.order {
		sc, err := score(k)
		if err != nil {
			return err
		}
		if !isFinite(sc) || sc < 0 || sc > 1 {
			return fmt.Errorf(
				"%w: verification score for %v must be in [0,1], got %v", ErrOutOfRange, k, sc,
			)
		}
		scaled := Amplitude{c: s.amps[k].c * complex(sc, 0)}
		if scaled.Magnitude() >= PruneEpsilon {
			staged[k] = scaled
			stagedOrder = append(stagedOrder, k)
		}
	}
	if len(stagedOrder) == 0 {
		return fmt.Errorf("%w: reweighting zeroed every outcome", ErrDegenerateState)
	}

	s.amps = staged
	s.order = stagedOrder
	return s.Normalize()
}
