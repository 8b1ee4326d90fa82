package aggression_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWeights(t *testing.T) {
	Convey("Given the default weights", t, func() {
		w := aggression.DefaultWeights()

		Convey("Then they form a valid convex combination", func() {
			So(w.Validate(), ShouldBeNil)
			So(w.Throttle+w.ThrottleDelta+w.RPM+w.MAPRate, ShouldAlmostEqual, 1.0, 1e-12)
		})
	})

	Convey("Given weights that do not sum to 1", t, func() {
		w := aggression.Weights{Throttle: 0.5, ThrottleDelta: 0.5, RPM: 0.5, MAPRate: 0.5}

		Convey("Then validation rejects them", func() {
			So(errors.Is(w.Validate(), aggression.ErrInvalidWeights), ShouldBeTrue)
		})

		Convey("And the scorer constructor refuses them", func() {
			_, err := aggression.New(aggression.WithWeights(w))
			So(errors.Is(err, aggression.ErrInvalidWeights), ShouldBeTrue)
		})
	})

	Convey("Given a negative weight balanced by the others", t, func() {
		w := aggression.Weights{Throttle: -0.2, ThrottleDelta: 0.4, RPM: 0.4, MAPRate: 0.4}

		Convey("Then validation rejects it despite the unit sum", func() {
			So(errors.Is(w.Validate(), aggression.ErrInvalidWeights), ShouldBeTrue)
		})
	})
}

func TestScorer(t *testing.T) {
	ctx := context.Background()

	full := func(tps, tpsDelta, rpm, mapRate float64) model.DerivedSample {
		return model.DerivedSample{
			Sample:    model.Sample{RPM: rpm, TPS: tps},
			HasDeltas: true,
			TPSDelta:  tpsDelta,
			HasRates:  true,
			MAPRate:   mapRate,
		}
	}

	Convey("Given a scorer with default weights", t, func() {
		s, err := aggression.New()
		So(err, ShouldBeNil)

		Convey("When scoring a sample with every term saturated", func() {
			samples := []model.DerivedSample{full(100, 20, 7000, 10)}
			So(s.Run(ctx, samples, 7000), ShouldBeNil)

			Convey("Then the score reaches the maximum of 1", func() {
				So(samples[0].AggressionScore, ShouldAlmostEqual, 1.0, 1e-9)
				So(samples[0].Style, ShouldEqual, model.StyleAggressive)
			})
		})

		Convey("When scoring a gentle cruise sample", func() {
			samples := []model.DerivedSample{full(10, 0.5, 2100, 0.2)}
			So(s.Run(ctx, samples, 7000), ShouldBeNil)

			Convey("Then each term contributes its weighted share", func() {
				// 0.3*0.1 + 0.2*0.05 + 0.3*0.3 + 0.2*0.04
				So(samples[0].AggressionScore, ShouldAlmostEqual, 0.138, 1e-9)
				So(samples[0].Style, ShouldEqual, model.StyleSmooth)
			})
		})

		Convey("When the volatility terms exceed their scales", func() {
			samples := []model.DerivedSample{full(0, 50, 0, -40)}
			So(s.Run(ctx, samples, 7000), ShouldBeNil)

			Convey("Then both are clipped to 1 and signed rates use magnitude", func() {
				// 0.2*1 + 0.2*1
				So(samples[0].AggressionScore, ShouldAlmostEqual, 0.4, 1e-9)
			})
		})

		Convey("When the first sample of a session has no deltas", func() {
			samples := []model.DerivedSample{{
				Sample: model.Sample{RPM: 3500, TPS: 50},
			}}
			So(s.Run(ctx, samples, 7000), ShouldBeNil)

			Convey("Then only the level terms contribute", func() {
				// 0.3*0.5 + 0.3*0.5
				So(samples[0].AggressionScore, ShouldAlmostEqual, 0.3, 1e-9)
			})
		})

		Convey("When a sample has deltas but no valid rates", func() {
			d := full(50, 5, 3500, 99)
			d.HasRates = false
			samples := []model.DerivedSample{d}
			So(s.Run(ctx, samples, 7000), ShouldBeNil)

			Convey("Then the map-rate term is skipped, not poisoned", func() {
				// 0.3*0.5 + 0.2*0.5 + 0.3*0.5
				So(samples[0].AggressionScore, ShouldAlmostEqual, 0.4, 1e-9)
			})
		})

		Convey("When the session RPM ceiling is zero", func() {
			samples := []model.DerivedSample{full(50, 5, 3500, 1)}
			So(s.Run(ctx, samples, 0), ShouldBeNil)

			Convey("Then the RPM term drops out instead of dividing by zero", func() {
				// 0.3*0.5 + 0.2*0.5 + 0.2*0.2
				So(samples[0].AggressionScore, ShouldAlmostEqual, 0.29, 1e-9)
			})
		})
	})

	Convey("Given the classification cutoffs", t, func() {
		s, err := aggression.New()
		So(err, ShouldBeNil)

		Convey("When classifying per-sample scores", func() {
			So(s.Classify(0.1), ShouldEqual, model.StyleSmooth)
			So(s.Classify(0.3), ShouldEqual, model.StyleModerate)
			So(s.Classify(0.4), ShouldEqual, model.StyleModerate)
			So(s.Classify(0.5), ShouldEqual, model.StyleAggressive)
			So(s.Classify(0.9), ShouldEqual, model.StyleAggressive)
		})

		Convey("When classifying a session mean", func() {
			So(s.ClassifySession(0.1), ShouldEqual, model.VerdictConservative)
			So(s.ClassifySession(0.3), ShouldEqual, model.VerdictBalanced)
			So(s.ClassifySession(0.5), ShouldEqual, model.VerdictAggressive)
		})
	})

	Convey("Given custom cutoffs", t, func() {
		s, err := aggression.New(aggression.WithStyleCutoffs(0.2, 0.8))
		So(err, ShouldBeNil)

		Convey("When classifying against the wider moderate band", func() {
			So(s.Classify(0.25), ShouldEqual, model.StyleModerate)
			So(s.Classify(0.7), ShouldEqual, model.StyleModerate)
			So(s.ClassifySession(0.79), ShouldEqual, model.VerdictBalanced)
		})

		Convey("When mis-ordered cutoffs are supplied", func() {
			def, derr := aggression.New(aggression.WithStyleCutoffs(0.8, 0.2))
			So(derr, ShouldBeNil)

			Convey("Then the defaults stay in effect", func() {
				So(def.Classify(0.4), ShouldEqual, model.StyleModerate)
			})
		})
	})
}
