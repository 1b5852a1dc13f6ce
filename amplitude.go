package superposition

import (
	"fmt"
	"math"
	"math/cmplx"
)

/*
Amplitude is an immutable complex value whose squared magnitude contributes
to an outcome's probability (Born rule). All arithmetic returns new values;
an Amplitude is never mutated in place.
*/
type Amplitude struct {
	c complex128
}

// NewAmplitude builds an amplitude from rectangular components. Both
// components must be finite.
func NewAmplitude(re, im float64) (Amplitude, error) {
	if !isFinite(re) || !isFinite(im) {
		return Amplitude{}, fmt.Errorf(
			"%w: amplitude components must be finite, got (%v, %v)",
			ErrInvalidArgument, re, im,
		)
	}
	return Amplitude{c: complex(re, im)}, nil
}

// AmplitudeFromPolar builds an amplitude from magnitude r and phase theta.
// The magnitude must be finite and non-negative; the phase must be finite.
func AmplitudeFromPolar(r, theta float64) (Amplitude, error) {
	if !isFinite(r) || !isFinite(theta) {
		return Amplitude{}, fmt.Errorf(
			"%w: polar components must be finite, got (%v, %v)",
			ErrOutOfRange, r, theta,
		)
	}
	if r < 0 {
		return Amplitude{}, fmt.Errorf(
			"%w: polar magnitude must be non-negative, got %v",
			ErrOutOfRange, r,
		)
	}
	return Amplitude{c: cmplx.Rect(r, theta)}, nil
}

// ZeroAmplitude returns the additive identity.
func ZeroAmplitude() Amplitude {
	return Amplitude{}
}

// unitAmplitude is the deterministic (1,0) entry a collapsed basis holds.
func unitAmplitude() Amplitude {
	return Amplitude{c: complex(1, 0)}
}

// Real returns the real component.
func (a Amplitude) Real() float64 {
	return real(a.c)
}

// Imag returns the imaginary component.
func (a Amplitude) Imag() float64 {
	return imag(a.c)
}

// Add returns a + b.
func (a Amplitude) Add(b Amplitude) Amplitude {
	return Amplitude{c: a.c + b.c}
}

// Subtract returns a - b.
func (a Amplitude) Subtract(b Amplitude) Amplitude {
	return Amplitude{c: a.c - b.c}
}

// Multiply returns the complex product a * b.
func (a Amplitude) Multiply(b Amplitude) Amplitude {
	return Amplitude{c: a.c * b.c}
}

// Divide returns a / b. Divisors with squared magnitude at or below the
// float64 machine epsilon are rejected rather than letting the quotient
// blow up.
func (a Amplitude) Divide(b Amplitude) (Amplitude, error) {
	if b.MagnitudeSquared() <= machineEpsilon {
		return Amplitude{}, fmt.Errorf(
			"%w: division by near-zero amplitude (|b|² = %v)",
			ErrOutOfRange, b.MagnitudeSquared(),
		)
	}
	return Amplitude{c: a.c / b.c}, nil
}

// Scale returns a scaled by the real factor r.
func (a Amplitude) Scale(r float64) (Amplitude, error) {
	if !isFinite(r) {
		return Amplitude{}, fmt.Errorf(
			"%w: scale factor must be finite, got %v", ErrInvalidArgument, r,
		)
	}
	return Amplitude{c: a.c * complex(r, 0)}, nil
}

// Conjugate returns the complex conjugate.
func (a Amplitude) Conjugate() Amplitude {
	return Amplitude{c: cmplx.Conj(a.c)}
}

// Magnitude returns |a| = hypot(re, im).
func (a Amplitude) Magnitude() float64 {
	return cmplx.Abs(a.c)
}

// MagnitudeSquared returns |a|², the Born-rule probability contribution.
func (a Amplitude) MagnitudeSquared() float64 {
	return real(a.c)*real(a.c) + imag(a.c)*imag(a.c)
}

// Phase returns the argument of a in (−π, π].
func (a Amplitude) Phase() float64 {
	return cmplx.Phase(a.c)
}

// Equals reports componentwise equality within the default 1e-12 epsilon.
func (a Amplitude) Equals(b Amplitude) bool {
	return a.EqualsWithin(b, 1e-12)
}

// EqualsWithin reports componentwise equality within eps.
func (a Amplitude) EqualsWithin(b Amplitude, eps float64) bool {
	return math.Abs(real(a.c)-real(b.c)) <= eps &&
		math.Abs(imag(a.c)-imag(b.c)) <= eps
}

// String renders the amplitude in rectangular form.
func (a Amplitude) String() string {
	return fmt.Sprintf("(%g%+gi)", real(a.c), imag(a.c))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
