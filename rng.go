package superposition

import "math/rand/v2"

/*
Sampler is the randomness source consumed by Measure. Exactly one draw
happens per uncollapsed measurement; no other operation touches randomness.
Injecting the sampler keeps measurement reproducible under test without
patching process-wide state.
*/
type Sampler interface {
	Float64() float64
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func() float64

func (f SamplerFunc) Float64() float64 {
	return f()
}

// NewSeededSampler returns a deterministic PCG-backed sampler.
func NewSeededSampler(seed uint64) Sampler {
	return rand.New(rand.NewPCG(seed, seed))
}

// defaultSampler backs states constructed without WithSampler.
var defaultSampler Sampler = SamplerFunc(rand.Float64)
