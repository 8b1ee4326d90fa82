package summary_test

import (
	"testing"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/summary"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	scorer, err := aggression.New()
	if err != nil {
		t.Fatal(err)
	}

	Convey("Given a scored, event-flagged sequence", t, func() {
		samples := []model.DerivedSample{
			{TimeElapsed: 0.0, VolumetricEfficiency: 40, AggressionScore: 0.1, Style: model.StyleSmooth},
			{TimeElapsed: 0.1, VolumetricEfficiency: 60, AggressionScore: 0.4, Style: model.StyleModerate, IsAccelerating: true},
			{TimeElapsed: 0.2, VolumetricEfficiency: 80, AggressionScore: 0.7, Style: model.StyleAggressive, IsAccelerating: true},
			{TimeElapsed: 0.3, VolumetricEfficiency: 60, AggressionScore: 0.4, Style: model.StyleModerate},
		}
		shifts := []model.ShiftEvent{{RPMBefore: 6000}}
		drops := model.DropReport{MissingCritical: 2, NonPositiveRPM: 1}

		Convey("When building the summary", func() {
			s := summary.Build(samples, shifts, drops, scorer)

			Convey("Then counts and duration come straight from the inputs", func() {
				So(s.SampleCount, ShouldEqual, 4)
				So(s.DroppedSamples, ShouldEqual, 3)
				So(s.ShiftCount, ShouldEqual, 1)
				So(s.DurationSeconds, ShouldAlmostEqual, 0.3, 1e-12)
			})

			Convey("Then efficiency statistics hold mean and peak", func() {
				So(s.MeanVolumetricEfficiency, ShouldAlmostEqual, 60, 1e-9)
				So(s.PeakVolumetricEfficiency, ShouldEqual, 80)
			})

			Convey("Then aggression statistics hold mean and peak", func() {
				So(s.MeanAggression, ShouldAlmostEqual, 0.4, 1e-9)
				So(s.PeakAggression, ShouldEqual, 0.7)
			})

			Convey("Then acceleration events count flagged samples", func() {
				So(s.AccelerationEvents, ShouldEqual, 2)
				So(s.AccelerationFraction, ShouldAlmostEqual, 0.5, 1e-9)
			})

			Convey("Then style fractions partition the samples", func() {
				So(s.SmoothFraction, ShouldAlmostEqual, 0.25, 1e-9)
				So(s.ModerateFraction, ShouldAlmostEqual, 0.5, 1e-9)
				So(s.AggressiveFraction, ShouldAlmostEqual, 0.25, 1e-9)
				So(s.SmoothFraction+s.ModerateFraction+s.AggressiveFraction, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("Then the session verdict follows the mean score", func() {
				So(s.DrivingStyle, ShouldEqual, model.VerdictBalanced)
			})

			Convey("Then shift quality is left for the caller to attach", func() {
				So(s.ShiftQuality, ShouldBeNil)
			})
		})
	})

	Convey("Given an empty sequence", t, func() {
		drops := model.DropReport{MissingCritical: 5}

		Convey("When building the summary", func() {
			s := summary.Build(nil, nil, drops, scorer)

			Convey("Then only the counts are populated", func() {
				So(s.SampleCount, ShouldEqual, 0)
				So(s.DroppedSamples, ShouldEqual, 5)
				So(s.MeanAggression, ShouldEqual, 0)
				So(s.DurationSeconds, ShouldEqual, 0)
			})
		})
	})
}
