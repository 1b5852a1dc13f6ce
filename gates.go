package superposition

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Gates are pure: each returns a freshly constructed state and leaves its
// input untouched. The returned state shares the input's sampler.

/*
Hadamard mixes a two-outcome state into (a₀+a₁)/√2 and (a₀−a₁)/√2, taken
in basis order. Applied twice it is the identity.
*/
func Hadamard(s *Superposition) (*Superposition, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: state is nil", ErrInvalidArgument)
	}
	if s.Size() != 2 {
		return nil, fmt.Errorf(
			"%w: hadamard requires exactly 2 outcomes, got %d", ErrOutOfRange, s.Size(),
		)
	}

	outcomes := s.Outcomes()
	a0, a1 := outcomes[0].Amplitude, outcomes[1].Amplitude
	invRoot2 := complex(1/math.Sqrt2, 0)

	return NewSuperposition([]Outcome{
		{Value: outcomes[0].Value, Amplitude: Amplitude{c: (a0.c + a1.c) * invRoot2}},
		{Value: outcomes[1].Value, Amplitude: Amplitude{c: (a0.c - a1.c) * invRoot2}},
	}, WithSampler(s.sampler))
}

/*
PhaseShift multiplies the target outcome's amplitude by e^{iθ}. Being a
unit rotation, it leaves every probability unchanged; only relative phase
shifts, which later interference can turn into probability differences.
*/
func PhaseShift(s *Superposition, target any, theta float64) (*Superposition, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: state is nil", ErrInvalidArgument)
	}
	if !isFinite(theta) {
		return nil, fmt.Errorf("%w: phase angle must be finite, got %v", ErrOutOfRange, theta)
	}
	if !isComparable(target) {
		return nil, fmt.Errorf("%w: target of type %T is not comparable", ErrInvalidArgument, target)
	}
	if _, member := s.amps[target]; !member {
		return nil, fmt.Errorf("%w: phase target %v", ErrNotAMember, target)
	}

	rotation := cmplx.Rect(1, theta)
	outcomes := s.Outcomes()
	for i, o := range outcomes {
		if o.Value == target {
			outcomes[i].Amplitude = Amplitude{c: o.Amplitude.c * rotation}
		}
	}
	return NewSuperposition(outcomes, WithSampler(s.sampler))
}

// Rotate applies the global phase e^{iθ} to every amplitude. Probabilities
// are untouched; the rotation only matters relative to other states under
// interference.
func Rotate(s *Superposition, theta float64) (*Superposition, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: state is nil", ErrInvalidArgument)
	}
	if !isFinite(theta) {
		return nil, fmt.Errorf("%w: rotation angle must be finite, got %v", ErrOutOfRange, theta)
	}

	rotation := cmplx.Rect(1, theta)
	outcomes := s.Outcomes()
	for i, o := range outcomes {
		outcomes[i].Amplitude = Amplitude{c: o.Amplitude.c * rotation}
	}
	return NewSuperposition(outcomes, WithSampler(s.sampler))
}

/*
Amplify scales the amplitudes of the target outcomes by factor; the
renormalization baked into construction redistributes probability mass
toward them, a blunt cousin of Grover amplification. At least one target
must be present in the basis.
*/
func Amplify(s *Superposition, targets []any, factor float64) (*Superposition, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: state is nil", ErrInvalidArgument)
	}
	if !isFinite(factor) || factor <= 0 {
		return nil, fmt.Errorf(
			"%w: amplification factor must be positive and finite, got %v", ErrOutOfRange, factor,
		)
	}

	wanted := make(map[any]bool, len(targets))
	present := 0
	for _, t := range targets {
		if !isComparable(t) {
			return nil, fmt.Errorf("%w: target of type %T is not comparable", ErrInvalidArgument, t)
		}
		wanted[t] = true
		if _, member := s.amps[t]; member {
			present++
		}
	}
	if present == 0 {
		return nil, fmt.Errorf("%w: no amplification target present in basis", ErrNotAMember)
	}

	outcomes := s.Outcomes()
	for i, o := range outcomes {
		if wanted[o.Value] {
			outcomes[i].Amplitude = Amplitude{c: o.Amplitude.c * complex(factor, 0)}
		}
	}
	return NewSuperposition(outcomes, WithSampler(s.sampler))
}
