package superposition

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// Outcome pairs a basis value with its complex amplitude.
type Outcome struct {
	Value     any
	Amplitude Amplitude
}

/*
CollapseEvent is an append-only audit record of a collapse. The distribution
is the probability snapshot taken immediately before the basis was replaced,
so reporting collaborators can reconstruct what the state looked like when
it was fixed.
*/
type CollapseEvent struct {
	ID           string
	Timestamp    time.Time
	Outcome      any
	Reason       string
	Distribution map[any]float64
}

/*
Superposition is a normalized weighted set of mutually exclusive outcomes.
Each outcome carries a complex amplitude whose squared magnitude is its
probability. The basis keeps first-seen insertion order so the measurement
walk is deterministic under a seeded sampler.

A Superposition is single-actor: callers must serialize mutating calls
across a connected graph of correlated states. The engine takes no locks.
*/
type Superposition struct {
	amps           map[any]Amplitude
	order          []any
	collapsed      bool
	collapsedValue any
	history        []CollapseEvent
	sampler        Sampler

	// correlations where this state is the source / target. Non-owning;
	// Dispose on the Correlation is the only teardown.
	outgoing []*Correlation
	incoming []*Correlation
}

/*
NewSuperposition builds a normalized state from an explicit basis. Entries
sharing an outcome value accumulate by complex addition. Sub-epsilon
entries are pruned; a basis that prunes to nothing is degenerate.
*/
func NewSuperposition(outcomes []Outcome, opts ...Option) (*Superposition, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: superposition requires at least one outcome", ErrEmptyInput)
	}

	acc := newAccumulator()
	for _, o := range outcomes {
		if err := acc.add(o.Value, o.Amplitude); err != nil {
			return nil, err
		}
	}

	s := &Superposition{
		amps:    acc.amps,
		order:   acc.order,
		sampler: defaultSampler,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.prune()
	if len(s.order) == 0 {
		return nil, fmt.Errorf(
			"%w: every outcome amplitude is below the prune epsilon", ErrDegenerateState,
		)
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Singleton wraps a classical value as a fully deterministic superposition
// with amplitude (1,0). It panics only if value is not comparable.
func Singleton(value any, opts ...Option) *Superposition {
	s, err := NewSuperposition(
		[]Outcome{{Value: value, Amplitude: unitAmplitude()}}, opts...,
	)
	if err != nil {
		panic(fmt.Sprintf("superposition: singleton of %T: %v", value, err))
	}
	return s
}

/*
Normalize rescales the basis so squared magnitudes sum to 1, re-prunes, and
recomputes the collapsed flag. Every correlation sourced at this state is
re-derived afterwards, so dependent states track the new distribution.
*/
func (s *Superposition) Normalize() error {
	total := s.totalMass()
	if !isFinite(total) || total <= degenerateFloor {
		return fmt.Errorf(
			"%w: total probability mass %v is not renormalizable", ErrDegenerateState, total,
		)
	}

	factor := complex(1/math.Sqrt(total), 0)
	for _, k := range s.order {
		s.amps[k] = Amplitude{c: s.amps[k].c * factor}
	}
	s.prune()
	s.refreshCollapsed()

	for _, c := range s.outgoing {
		if !c.Active() {
			continue
		}
		if err := c.Derive(); err != nil {
			return err
		}
	}
	return nil
}

// Probabilities returns an independent snapshot of outcome probabilities.
func (s *Superposition) Probabilities() map[any]float64 {
	probs := make(map[any]float64, len(s.order))
	for _, k := range s.order {
		probs[k] = s.amps[k].MagnitudeSquared()
	}
	return probs
}

// Amplitude returns the amplitude at key, or zero when the key is absent.
// It never fails.
func (s *Superposition) Amplitude(key any) Amplitude {
	if !isComparable(key) {
		return ZeroAmplitude()
	}
	return s.amps[key]
}

/*
SetAmplitude overwrites one entry and renormalizes. The change is staged
first: if pruning the updated basis would empty it, the state is left
untouched and a degenerate-state error is returned.
*/
func (s *Superposition) SetAmplitude(key any, amp Amplitude) error {
	if !isComparable(key) {
		return fmt.Errorf(
			"%w: outcome key of type %T is not comparable", ErrInvalidArgument, key,
		)
	}

	// Stage the whole outcome before touching the basis: the surviving
	// entry count and the prospective total mass both have to pass, or the
	// state stays exactly as it was.
	total := 0.0
	surviving := 0
	if amp.Magnitude() >= PruneEpsilon {
		surviving++
		total += amp.MagnitudeSquared()
	}
	for _, k := range s.order {
		if k == key {
			continue
		}
		if s.amps[k].Magnitude() >= PruneEpsilon {
			surviving++
			total += s.amps[k].MagnitudeSquared()
		}
	}
	if surviving == 0 {
		return fmt.Errorf(
			"%w: overwriting %v would empty the basis", ErrDegenerateState, key,
		)
	}
	if !isFinite(total) || total <= degenerateFloor {
		return fmt.Errorf(
			"%w: overwriting %v leaves total probability mass %v", ErrDegenerateState, key, total,
		)
	}

	if _, seen := s.amps[key]; !seen {
		s.order = append(s.order, key)
	}
	s.amps[key] = amp
	s.prune()
	return s.Normalize()
}

/*
Measure samples one outcome by the Born rule and permanently collapses the
state to it. Already-collapsed states return the stored value without
drawing randomness, so repeated measurement is idempotent. A single uniform
sample drives a cumulative walk over the basis in insertion order; if
floating-point drift exhausts the walk, the last entry is picked
deterministically.
*/
func (s *Superposition) Measure() (any, error) {
	if s.collapsed {
		return s.collapsedValue, nil
	}

	preDist := s.Probabilities()
	sample := s.sampler.Float64()

	chosen := s.order[len(s.order)-1]
	cumulative := 0.0
	for _, k := range s.order {
		cumulative += s.amps[k].MagnitudeSquared()
		if cumulative >= sample {
			chosen = k
			break
		}
	}

	if err := s.collapse(chosen, "measurement", preDist, false); err != nil {
		return nil, err
	}
	return chosen, nil
}

/*
CollapseTo fixes the state to one of its current outcomes, recording the
given reason and the pre-collapse distribution in the audit history. Every
correlation sourced at this state is told about the collapse.
*/
func (s *Superposition) CollapseTo(key any, reason string) error {
	return s.collapse(key, reason, s.Probabilities(), false)
}

// collapse replaces the basis with {key: (1,0)}. Collapsing to the value a
// state is already fixed on is a no-op, which is what keeps correlation
// cycles from recursing forever. inject allows a key absent from the basis
// to become the sole entry (correlation-forced collapse).
func (s *Superposition) collapse(key any, reason string, preDist map[any]float64, inject bool) error {
	if !isComparable(key) {
		return fmt.Errorf(
			"%w: outcome key of type %T is not comparable", ErrInvalidArgument, key,
		)
	}
	if s.collapsed && s.collapsedValue == key {
		// The basis is already fixed, so nothing propagates: that
		// short-circuit is what terminates correlation cycles. A
		// caller-initiated repeat still leaves its audit record;
		// correlation-driven repeats stay silent.
		if !inject {
			s.history = append(s.history, CollapseEvent{
				ID:           uuid.NewString(),
				Timestamp:    time.Now(),
				Outcome:      key,
				Reason:       reason,
				Distribution: preDist,
			})
		}
		return nil
	}
	if _, member := s.amps[key]; !member && !inject {
		return fmt.Errorf("%w: cannot collapse to %v", ErrNotAMember, key)
	}

	s.amps = map[any]Amplitude{key: unitAmplitude()}
	s.order = []any{key}
	s.collapsed = true
	s.collapsedValue = key
	s.history = append(s.history, CollapseEvent{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Outcome:      key,
		Reason:       reason,
		Distribution: preDist,
	})

	for _, c := range s.outgoing {
		if !c.Active() {
			continue
		}
		if err := c.onMeasurement(s, key); err != nil {
			return err
		}
	}
	return nil
}

// forceCollapse is the correlation-driven entry point: the key is injected
// when absent instead of failing membership.
func (s *Superposition) forceCollapse(key any, reason string) error {
	return s.collapse(key, reason, s.Probabilities(), true)
}

// replaceBasis swaps in a correlation-derived basis wholesale, then
// renormalizes (which cascades to correlations chained from this state).
func (s *Superposition) replaceBasis(entries []Outcome) error {
	amps := make(map[any]Amplitude, len(entries))
	order := make([]any, 0, len(entries))
	for _, e := range entries {
		if _, seen := amps[e.Value]; !seen {
			order = append(order, e.Value)
		}
		amps[e.Value] = amps[e.Value].Add(e.Amplitude)
	}

	s.amps = amps
	s.order = order
	s.prune()
	if len(s.order) == 0 {
		return fmt.Errorf("%w: derived basis pruned to nothing", ErrDegenerateState)
	}
	return s.Normalize()
}

// Stabilize re-prunes and renormalizes, shedding accumulated drift after
// long transform chains.
func (s *Superposition) Stabilize() error {
	s.prune()
	if len(s.order) == 0 {
		return fmt.Errorf("%w: stabilize pruned the basis to nothing", ErrDegenerateState)
	}
	return s.Normalize()
}

/*
IsNearClassical reports whether one outcome holds at least threshold of the
probability mass. The threshold must lie in (0, 1]; callers without a
preference pass DefaultClassicalThreshold.
*/
func (s *Superposition) IsNearClassical(threshold float64) (bool, error) {
	if !isFinite(threshold) || threshold <= 0 || threshold > 1 {
		return false, fmt.Errorf(
			"%w: classical threshold must be in (0,1], got %v", ErrOutOfRange, threshold,
		)
	}
	return s.maxProbability() >= threshold, nil
}

/*
Clone returns a deep value copy, including audit history and the collapsed
flag. The clone shares the sampler but starts with no correlations of its
own; links never follow copies.
*/
func (s *Superposition) Clone() *Superposition {
	amps := make(map[any]Amplitude, len(s.amps))
	for k, v := range s.amps {
		amps[k] = v
	}
	order := make([]any, len(s.order))
	copy(order, s.order)

	history := make([]CollapseEvent, len(s.history))
	for i, ev := range s.history {
		dist := make(map[any]float64, len(ev.Distribution))
		for k, p := range ev.Distribution {
			dist[k] = p
		}
		ev.Distribution = dist
		history[i] = ev
	}

	return &Superposition{
		amps:           amps,
		order:          order,
		collapsed:      s.collapsed,
		collapsedValue: s.collapsedValue,
		history:        history,
		sampler:        s.sampler,
	}
}

// IsCollapsed reports whether the state has been fixed to a single outcome.
func (s *Superposition) IsCollapsed() bool {
	return s.collapsed
}

// CollapsedValue returns the fixed outcome, if any.
func (s *Superposition) CollapsedValue() (any, bool) {
	if !s.collapsed {
		return nil, false
	}
	return s.collapsedValue, true
}

// History returns a copy of the append-only collapse audit trail.
func (s *Superposition) History() []CollapseEvent {
	out := make([]CollapseEvent, len(s.history))
	copy(out, s.history)
	return out
}

// Outcomes returns the basis as an ordered snapshot.
func (s *Superposition) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, Outcome{Value: k, Amplitude: s.amps[k]})
	}
	return out
}

// Size returns the number of outcomes currently in the basis.
func (s *Superposition) Size() int {
	return len(s.order)
}

func (s *Superposition) totalMass() float64 {
	sq := make([]float64, 0, len(s.order))
	for _, k := range s.order {
		sq = append(sq, s.amps[k].MagnitudeSquared())
	}
	return floats.Sum(sq)
}

func (s *Superposition) maxProbability() float64 {
	max := 0.0
	for _, k := range s.order {
		if p := s.amps[k].MagnitudeSquared(); p > max {
			max = p
		}
	}
	return max
}

func (s *Superposition) prune() {
	kept := make([]any, 0, len(s.order))
	for _, k := range s.order {
		if s.amps[k].Magnitude() >= PruneEpsilon {
			kept = append(kept, k)
		} else {
			delete(s.amps, k)
		}
	}
	s.order = kept
}

// refreshCollapsed derives the collapsed flag from the basis: exactly one
// entry whose amplitude is approximately (1,0).
func (s *Superposition) refreshCollapsed() {
	if len(s.order) == 1 && s.amps[s.order[0]].EqualsWithin(unitAmplitude(), NormTolerance) {
		s.collapsed = true
		s.collapsedValue = s.order[0]
		return
	}
	s.collapsed = false
	s.collapsedValue = nil
}

func (s *Superposition) registerOutgoing(c *Correlation) {
	s.outgoing = append(s.outgoing, c)
}

func (s *Superposition) registerIncoming(c *Correlation) {
	s.incoming = append(s.incoming, c)
}

func (s *Superposition) removeOutgoing(c *Correlation) {
	for i, existing := range s.outgoing {
		if existing == c {
			s.outgoing = append(s.outgoing[:i], s.outgoing[i+1:]...)
			return
		}
	}
}

func (s *Superposition) removeIncoming(c *Correlation) {
	for i, existing := range s.incoming {
		if existing == c {
			s.incoming = append(s.incoming[:i], s.incoming[i+1:]...)
			return
		}
	}
}
