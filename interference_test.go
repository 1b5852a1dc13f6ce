package superposition

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInterfere(t *testing.T) {
	Convey("Given states prepared for interference", t, func() {
		Convey("When interfering opposite phases on one outcome", func() {
			first, err := NewSuperposition([]Outcome{
				{Value: "A", Amplitude: amp(t, 1, 0)},
				{Value: "B", Amplitude: amp(t, 1, 0)},
			})
			So(err, ShouldBeNil)
			second, err := NewSuperposition([]Outcome{
				{Value: "A", Amplitude: amp(t, -1, 0)},
				{Value: "B", Amplitude: amp(t, 1, 0)},
			})
			So(err, ShouldBeNil)

			combined, err := Interfere([]*Superposition{first, second}, nil)

			Convey("Then the opposed outcome cancels and the aligned one wins", func() {
				So(err, ShouldBeNil)
				probs := combined.Probabilities()
				So(probs["A"], ShouldAlmostEqual, 0)
				So(probs["B"], ShouldAlmostEqual, 1)
			})
		})

		Convey("When interfering two identical single-outcome states", func() {
			combined, err := Interfere([]*Superposition{
				Singleton("X"), Singleton("X"),
			}, nil)

			Convey("Then the outcome survives with full probability", func() {
				So(err, ShouldBeNil)
				So(combined.Probabilities()["X"], ShouldAlmostEqual, 1)
			})
		})

		Convey("When every outcome cancels", func() {
			plus := Singleton("X")
			minus, err := NewSuperposition([]Outcome{
				{Value: "X", Amplitude: amp(t, -1, 0)},
			})
			So(err, ShouldBeNil)

			_, err = Interfere([]*Superposition{plus, minus}, nil)

			Convey("Then interference fails as degenerate", func() {
				So(errors.Is(err, ErrDegenerateState), ShouldBeTrue)
			})
		})

		Convey("When the state list is empty", func() {
			_, err := Interfere(nil, nil)

			Convey("Then interference fails as empty input", func() {
				So(errors.Is(err, ErrEmptyInput), ShouldBeTrue)
			})
		})

		Convey("When weights do not match the states", func() {
			_, err := Interfere([]*Superposition{Singleton("X")}, []float64{1, 2})

			Convey("Then interference fails as invalid argument", func() {
				So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			})
		})

		Convey("When every weight is near zero", func() {
			_, err := Interfere(
				[]*Superposition{Singleton("X"), Singleton("Y")},
				[]float64{0, 0},
			)

			Convey("Then interference fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When explicit weights are skewed", func() {
			heavy := Singleton("H")
			light := Singleton("L")

			combined, err := Interfere([]*Superposition{heavy, light}, []float64{3, 1})

			Convey("Then probabilities follow the renormalized squared weights", func() {
				So(err, ShouldBeNil)
				probs := combined.Probabilities()
				So(probs["H"], ShouldAlmostEqual, 0.9)
				So(probs["L"], ShouldAlmostEqual, 0.1)
			})
		})
	})
}

func TestAnalyzeInterference(t *testing.T) {
	Convey("Given states that reinforce one outcome and cancel another", t, func() {
		first, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 1, 0)},
			{Value: "B", Amplitude: amp(t, 1, 0)},
		})
		So(err, ShouldBeNil)
		second, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 1, 0)},
			{Value: "B", Amplitude: amp(t, -1, 0)},
		})
		So(err, ShouldBeNil)

		Convey("When analyzing with default thresholds", func() {
			analysis, err := AnalyzeInterference([]*Superposition{first, second}, nil)

			Convey("Then both union outcomes are classified", func() {
				So(err, ShouldBeNil)
				So(len(analysis.Patterns), ShouldEqual, 2)

				byValue := make(map[any]OutcomePattern)
				for _, p := range analysis.Patterns {
					byValue[p.Value] = p
				}

				So(byValue["A"].Combined, ShouldAlmostEqual, 1)
				So(byValue["A"].Average, ShouldAlmostEqual, 0.5)
				So(byValue["A"].Ratio, ShouldAlmostEqual, 2)
				So(byValue["A"].Kind, ShouldEqual, Constructive)
			})

			Convey("Then the fully cancelled outcome reads as destructive", func() {
				So(err, ShouldBeNil)
				byValue := make(map[any]OutcomePattern)
				for _, p := range analysis.Patterns {
					byValue[p.Value] = p
				}

				So(byValue["B"].Combined, ShouldAlmostEqual, 0)
				So(byValue["B"].Average, ShouldAlmostEqual, 0.5)
				So(byValue["B"].Ratio, ShouldAlmostEqual, 0)
				So(byValue["B"].Kind, ShouldEqual, Destructive)
			})
		})

		Convey("When thresholds are inverted", func() {
			_, err := AnalyzeInterference(
				[]*Superposition{first, second},
				&InterferenceThresholds{Constructive: 0.8, Destructive: 1.2},
			)

			Convey("Then analysis fails as out of range", func() {
				So(errors.Is(err, ErrOutOfRange), ShouldBeTrue)
			})
		})
	})

	Convey("Given states that only partially overlap", t, func() {
		first, err := NewSuperposition([]Outcome{
			{Value: "A", Amplitude: amp(t, 1, 0)},
			{Value: "B", Amplitude: amp(t, 1, 0)},
		})
		So(err, ShouldBeNil)
		second := Singleton("A")

		Convey("When analyzing", func() {
			analysis, err := AnalyzeInterference([]*Superposition{first, second}, nil)
			So(err, ShouldBeNil)

			Convey("Then the shared outcome gains mass and the lone one loses it", func() {
				byValue := make(map[any]OutcomePattern)
				for _, p := range analysis.Patterns {
					byValue[p.Value] = p
				}
				// Combined amplitudes before renormalization: A gets
				// 0.5+1/√2, B keeps 0.5; normalizing gives A ≈ 0.8536.
				So(byValue["A"].Combined, ShouldAlmostEqual, 0.853553, 1e-6)
				So(byValue["A"].Average, ShouldAlmostEqual, 0.75)
				So(byValue["A"].Kind, ShouldEqual, Neutral)
				So(byValue["B"].Combined, ShouldAlmostEqual, 0.146447, 1e-6)
				So(byValue["B"].Average, ShouldAlmostEqual, 0.25)
				So(byValue["B"].Kind, ShouldEqual, Destructive)
			})
		})
	})
}
