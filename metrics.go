package superposition

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

/*
CoherenceMetrics is a read-only snapshot of how "quantum" a state still is.
Entropy is base-2 Shannon entropy over the outcome probabilities, with the
0·log0 terms contributing zero; a fully collapsed state scores 0, a uniform
n-outcome state scores log2(n).
*/
type CoherenceMetrics struct {
	MaxProbability float64
	Entropy        float64
	SupportSize    int
	IsClassical    bool
}

// CoherenceMetrics computes the snapshot for the current basis.
func (s *Superposition) CoherenceMetrics() CoherenceMetrics {
	probs := make([]float64, 0, len(s.order))
	for _, k := range s.order {
		probs = append(probs, s.amps[k].MagnitudeSquared())
	}

	return CoherenceMetrics{
		MaxProbability: s.maxProbability(),
		Entropy:        stat.Entropy(probs) / math.Ln2,
		SupportSize:    len(s.order),
		IsClassical:    s.collapsed,
	}
}
