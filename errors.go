package superposition

import "errors"

// Error kinds raised by the engine. Every failure wraps exactly one of
// these sentinels, so callers can classify with errors.Is without parsing
// messages.
var (
	// ErrInvalidArgument signals a wrong type or shape: nil states,
	// non-callable branches, non-comparable outcome keys.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange signals a numeric bound violation: negative counts,
	// non-finite angles, thresholds outside (0,1].
	ErrOutOfRange = errors.New("out of range")

	// ErrEmptyInput signals a required non-empty collection was empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrDegenerateState signals an operation that would leave zero total
	// probability mass.
	ErrDegenerateState = errors.New("degenerate state")

	// ErrNotAMember signals a reference to an outcome absent from a basis.
	ErrNotAMember = errors.New("not a member")
)
