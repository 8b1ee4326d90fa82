// Package summary aggregates an analyzed session into scalar statistics.
package summary

import (
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Build folds a scored, event-flagged sequence into a SessionSummary.
// The ShiftQuality field is left nil; the caller attaches it when the
// shift analysis succeeds. All means here are over non-rate fields, so
// every retained sample participates.
func Build(samples []model.DerivedSample, shifts []model.ShiftEvent, drops model.DropReport, scorer *aggression.Scorer) model.SessionSummary {
	s := model.SessionSummary{
		SampleCount:    len(samples),
		DroppedSamples: drops.Total(),
		ShiftCount:     len(shifts),
	}
	if len(samples) == 0 {
		return s
	}

	s.DurationSeconds = samples[len(samples)-1].TimeElapsed

	var veSum, aggSum float64
	var accelCount, smooth, moderate, aggressive int
	for i := range samples {
		d := &samples[i]

		veSum += d.VolumetricEfficiency
		if d.VolumetricEfficiency > s.PeakVolumetricEfficiency {
			s.PeakVolumetricEfficiency = d.VolumetricEfficiency
		}

		aggSum += d.AggressionScore
		if d.AggressionScore > s.PeakAggression {
			s.PeakAggression = d.AggressionScore
		}

		if d.IsAccelerating {
			accelCount++
		}

		switch d.Style {
		case model.StyleSmooth:
			smooth++
		case model.StyleModerate:
			moderate++
		case model.StyleAggressive:
			aggressive++
		}
	}

	n := float64(len(samples))
	s.MeanVolumetricEfficiency = veSum / n
	s.MeanAggression = aggSum / n
	s.AccelerationEvents = accelCount
	s.AccelerationFraction = float64(accelCount) / n
	s.SmoothFraction = float64(smooth) / n
	s.ModerateFraction = float64(moderate) / n
	s.AggressiveFraction = float64(aggressive) / n
	s.DrivingStyle = scorer.ClassifySession(s.MeanAggression)

	return s
}
