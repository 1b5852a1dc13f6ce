package superposition

import (
	"fmt"

	"github.com/google/uuid"
)

// MapFunc translates a source outcome into the target outcome it forces.
// Returning an error marks the mapping undefined for that value.
type MapFunc func(value any) (any, error)

/*
Correlation links two superpositions so the target's distribution and
collapse always follow the source through a deterministic mapping, the way
entangled particles share fate. The correlation holds no amplitudes of its
own: every derivation recomputes the target's basis from the source.

Both endpoints keep non-owning back-references to the correlation; Dispose
is the only teardown and breaks the cycle explicitly.
*/
type Correlation struct {
	id     string
	source *Superposition
	target *Superposition
	mapFn  MapFunc
	active bool

	// deriving latches while a derivation cascade is in flight, so a cycle
	// of correlations re-derives each link at most once.
	deriving bool
}

/*
NewCorrelation registers a correlation between two distinct states and runs
the initial derivation so the target immediately reflects the source.
*/
func NewCorrelation(source, target *Superposition, mapFn MapFunc) (*Correlation, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("%w: correlation endpoints must be non-nil", ErrInvalidArgument)
	}
	if source == target {
		return nil, fmt.Errorf("%w: cannot correlate a state with itself", ErrInvalidArgument)
	}
	if mapFn == nil {
		return nil, fmt.Errorf("%w: correlation mapping function is nil", ErrInvalidArgument)
	}

	c := &Correlation{
		id:     uuid.NewString(),
		source: source,
		target: target,
		mapFn:  mapFn,
		active: true,
	}
	source.registerOutgoing(c)
	target.registerIncoming(c)

	if err := c.Derive(); err != nil {
		c.Dispose()
		return nil, err
	}
	return c, nil
}

// ID returns the correlation's unique identifier.
func (c *Correlation) ID() string {
	return c.id
}

// Active reports whether the correlation still propagates. Disposed
// correlations ignore all further calls.
func (c *Correlation) Active() bool {
	return c != nil && c.active
}

/*
Derive recomputes the target from the source. A collapsed source forces the
target to the mapped outcome, injecting it as the sole deterministic entry
when the target's basis does not contain it. A source still in
superposition induces a full basis: every source outcome is mapped, and
mappings landing on the same target outcome merge by complex addition of
the source amplitudes. The target is then replaced wholesale and
renormalized, which cascades to correlations chained from the target.
*/
func (c *Correlation) Derive() error {
	if !c.Active() || c.deriving {
		return nil
	}
	c.deriving = true
	defer func() { c.deriving = false }()

	if value, collapsed := c.source.CollapsedValue(); collapsed {
		mapped, err := c.mapFn(value)
		if err != nil {
			return fmt.Errorf("%w: correlation mapping of %v: %v", ErrInvalidArgument, value, err)
		}
		return c.target.forceCollapse(mapped, "correlation")
	}

	induced := make([]Outcome, 0, c.source.Size())
	for _, o := range c.source.Outcomes() {
		mapped, err := c.mapFn(o.Value)
		if err != nil {
			return fmt.Errorf("%w: correlation mapping of %v: %v", ErrInvalidArgument, o.Value, err)
		}
		induced = append(induced, Outcome{Value: mapped, Amplitude: o.Amplitude})
	}
	return c.target.replaceBasis(induced)
}

// onMeasurement propagates a collapse of the source into the target.
func (c *Correlation) onMeasurement(measured *Superposition, value any) error {
	if !c.Active() || measured != c.source {
		return nil
	}
	mapped, err := c.mapFn(value)
	if err != nil {
		return fmt.Errorf("%w: correlation mapping of %v: %v", ErrInvalidArgument, value, err)
	}
	return c.target.forceCollapse(mapped, "correlation")
}

/*
Dispose deactivates the correlation and removes it from both endpoints.
This is the lifetime boundary: nothing else breaks the reference cycle
between the two states.
*/
func (c *Correlation) Dispose() {
	if c == nil || !c.active {
		return
	}
	c.active = false
	c.source.removeOutgoing(c)
	c.target.removeIncoming(c)
}
