// Package derive computes the differential and ratio signals over a
// cleaned telemetry sequence.
//
// The scan is an explicit fold carrying the previous sample, so the
// first element's lack of a predecessor is a typed absence
// (HasDeltas=false), never an index underrun. Rate signals divide by the
// time delta; when consecutive samples share a timestamp the rates are
// marked invalid (HasRates=false) instead of becoming Inf or NaN, and
// downstream aggregates skip them.
package derive

import (
	"context"
	"fmt"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Run maps a cleaned sequence to its derived form. The input must hold at
// least one sample; an empty input returns an empty output.
func Run(ctx context.Context, samples []model.Sample) ([]model.DerivedSample, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("derive canceled: %w", err)
	}

	start := samples[0].Timestamp
	out := make([]model.DerivedSample, len(samples))

	var prev *model.DerivedSample
	for i, s := range samples {
		d := model.DerivedSample{
			Sample:               s,
			TimeElapsed:          s.Timestamp - start,
			VolumetricEfficiency: volumetricEfficiency(s),
			PowerIndex:           powerIndex(s),
		}

		if prev != nil {
			d.HasDeltas = true
			d.RPMDelta = s.RPM - prev.RPM
			d.TPSDelta = s.TPS - prev.TPS
			d.MAPDelta = s.MAP - prev.MAP
			d.TimeDelta = d.TimeElapsed - prev.TimeElapsed

			if d.TimeDelta > 0 {
				d.HasRates = true
				d.AccelerationRate = d.RPMDelta / d.TimeDelta
				d.MAPRate = d.MAPDelta / d.TimeDelta
			}
		}

		out[i] = d
		prev = &out[i]
	}
	return out, nil
}

// volumetricEfficiency is manifold pressure over ambient pressure as a
// percentage, a proxy for engine breathing.
func volumetricEfficiency(s model.Sample) float64 {
	if s.Barometer == 0 {
		return 0
	}
	return s.MAP / s.Barometer * 100
}

// powerIndex estimates instantaneous power output from RPM, manifold
// pressure, and throttle position.
func powerIndex(s model.Sample) float64 {
	return (s.RPM / 1000) * (s.MAP / 10) * (s.TPS / 100)
}

// RPMMax returns the session-wide RPM ceiling used to normalize the
// aggression score. Computed once over the whole sequence, then passed
// into per-sample scoring explicitly.
func RPMMax(samples []model.DerivedSample) float64 {
	var m float64
	for i := range samples {
		if samples[i].RPM > m {
			m = samples[i].RPM
		}
	}
	return m
}
