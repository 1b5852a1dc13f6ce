package superposition

// Numeric tolerances shared across the engine. Amplitudes below
// PruneEpsilon are treated as fully cancelled and removed from a basis;
// NormTolerance bounds acceptable drift of the total probability mass.
const (
	// PruneEpsilon is the minimum amplitude magnitude kept in a basis.
	PruneEpsilon = 1e-12

	// NormTolerance is the allowed deviation of summed probabilities from 1.
	NormTolerance = 1e-9

	// degenerateFloor is the smallest total probability mass that still
	// counts as a renormalizable state.
	degenerateFloor = 1e-15

	// machineEpsilon is the float64 ulp at 1.0, used as the division floor.
	machineEpsilon = 2.220446049250313e-16

	// DefaultClassicalThreshold is the max-probability cutoff above which a
	// state is considered effectively classical.
	DefaultClassicalThreshold = 0.999999

	// DefaultAmplifyFactor is the amplification applied by Amplify when the
	// caller has no preference.
	DefaultAmplifyFactor = 1.5

	// DefaultMaxIterations caps QuantumWhile when the caller has no
	// preference.
	DefaultMaxIterations = 100
)

// Option configures a Superposition at construction time.
type Option func(*Superposition)

// WithSampler injects the randomness source used by Measure. Tests pass a
// seeded or constant sampler to make measurement deterministic.
func WithSampler(sampler Sampler) Option {
	return func(s *Superposition) {
		if sampler != nil {
			s.sampler = sampler
		}
	}
}
