package superposition

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHadamard(t *testing.T) {
	Convey("Given two-outcome states", t, func() {
		Convey("When applied to an equal superposition", func() {
			s, err := NewSuperposition([]Outcome{
				{Value: 0, Amplitude: amp(t, 1, 0)},
				{Value: 1, Amplitude: amp(t, 1, 0)},
			})
			So(err, ShouldBeNil)

			mixed, err := Hadamard(s)

			Convey("Then the difference arm cancels and |0⟩ takes all mass", func() {
				So(err, ShouldBeNil)
				So(mixed.Probabilities()[0], ShouldAlmostEqual, 1)
				So(mixed.Size(), ShouldEqual, 1)
			})
		})

		Convey("When applied twice to a biased state", func() {
			s, err := NewSuperposition([]Outcome{
				{Value: 0, Amplitude: amp(t, 0.8, 0)},
				{Value: 1, Amplitude: amp(t, 0.6, 0)},
			})
			So(err, ShouldBeNil)

			once, err := Hadamard(s)
			So(err, ShouldBeNil)
			twice, err := Hadamard(once)

			Convey("Then the original distribution is recovered", func() {
				So(err, ShouldBeNil)
				So(twice.Probabilities()[0], ShouldAlmostEqual, 0.64)
				So(twice.Probabilities()[1], ShouldAlmostEqual, 0.36)
			})
		})

		Convey("When the state has three outcomes", func() {
			s, err := NewSuperposition([]Outcome{
				{Value: 0, Amplitude: amp(t, 1, 0)},
				{Value: 1, Amplitude: amp(t, 1, 0)},
				{Value: 2, Amplitude: amp(t, 1, 0)},
			})
			So(err, ShouldBeNil)

			_, err = Hadamard(s)

			Convey("Then the gate fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})

		Convey("Then the input state is left untouched", func() {
			s, err := NewSuperposition([]Outcome{
				{Value: 0, Amplitude: amp(t, 1, 0)},
				{Value: 1, Amplitude: amp(t, 1, 0)},
			})
			So(err, ShouldBeNil)
			_, err = Hadamard(s)
			So(err, ShouldBeNil)
			So(s.Probabilities()[0], ShouldAlmostEqual, 0.5)
			So(s.Probabilities()[1], ShouldAlmostEqual, 0.5)
		})
	})
}

func TestPhaseShift(t *testing.T) {
	Convey("Given a two-outcome state", t, func() {
		s, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 1, 0)},
			{Value: "B", Amplitude: amp(t, 1, 0)},
		})
		So(err, ShouldBeNil)

		Convey("When shifting the phase of one outcome", func() {
			shifted, err := PhaseShift(s, "A", math.Pi/2)

			Convey("Then probabilities stay put while the phase moves", func() {
				So(err, ShouldBeNil)
				So(shifted.Probabilities()["A"], ShouldAlmostEqual, 0.5)
				So(shifted.Probabilities()["B"], ShouldAlmostEqual, 0.5)
				So(shifted.Amplitude("A").Phase(), ShouldAlmostEqual, math.Pi/2)
				So(shifted.Amplitude("B").Phase(), ShouldAlmostEqual, 0)
			})

			Convey("Then the shifted phase changes later interference", func() {
				opposite, err := PhaseShift(s, "A", math.Pi)
				So(err, ShouldBeNil)
				combined, err := Interfere([]*Superposition{s, opposite}, nil)
				So(err, ShouldBeNil)
				So(combined.Probabilities()["A"], ShouldAlmostEqual, 0)
				So(combined.Probabilities()["B"], ShouldAlmostEqual, 1)
			})
		})

		Convey("When the target is absent", func() {
			_, err := PhaseShift(s, "C", math.Pi)

			Convey("Then the gate fails as not a member", func() {
				So(errors.Is(err, ErrNotAMember), ShouldBeTrue)
			})
		})

		Convey("When the angle is not finite", func() {
			_, err := PhaseShift(s, "A", math.NaN())

			Convey("Then the gate fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})
	})
}

func TestRotate(t *testing.T) {
	Convey("Given a biased state", t, func() {
		s, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 2, 0)},
			{Value: "B", Amplitude: amp(t, 1, 0)},
		})
		So(err, ShouldBeNil)

		Convey("When applying a global rotation", func() {
			rotated, err := Rotate(s, 1.25)

			Convey("Then every probability is unchanged", func() {
				So(err, ShouldBeNil)
				So(rotated.Probabilities()["A"], ShouldAlmostEqual, 0.8)
				So(rotated.Probabilities()["B"], ShouldAlmostEqual, 0.2)
			})

			Convey("Then every phase moved by the same angle", func() {
				So(rotated.Amplitude("A").Phase(), ShouldAlmostEqual, 1.25)
				So(rotated.Amplitude("B").Phase(), ShouldAlmostEqual, 1.25)
			})
		})

		Convey("When the angle is infinite", func() {
			_, err := Rotate(s, math.Inf(1))

			Convey("Then the gate fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})
	})
}

func TestAmplify(t *testing.T) {
	Convey("Given a uniform two-outcome state", t, func() {
		s, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 1, 0)},
			{Value: "B", Amplitude: amp(t, 1, 0)},
		})
		So(err, ShouldBeNil)

		Convey("When amplifying one target by factor 2", func() {
			boosted, err := Amplify(s, []any{"A"}, 2)

			Convey("Then renormalization redistributes mass toward it", func() {
				So(err, ShouldBeNil)
				So(boosted.Probabilities()["A"], ShouldAlmostEqual, 0.8)
				So(boosted.Probabilities()["B"], ShouldAlmostEqual, 0.2)
			})
		})

		Convey("When no target is present in the basis", func() {
			_, err := Amplify(s, []any{"C", "D"}, 2)

			Convey("Then the gate fails as not a member", func() {
				So(errors.Is(err, ErrNotAMember), ShouldBeTrue)
			})
		})

		Convey("When the factor is not positive", func() {
			_, err := Amplify(s, []any{"A"}, 0)

			Convey("Then the gate fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})
	})
}
