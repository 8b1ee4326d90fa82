// Package detect classifies per-sample driving events on a derived
// telemetry sequence.
//
// Both predicates are stateless per-sample checks; there is no debounce
// or hysteresis, so consecutive flagged samples count individually. A
// genuine upshift shows as a sharp RPM drop while still on-throttle,
// which separates it from coasting where the throttle is near zero.
package detect

import (
	"context"
	"fmt"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Default detection thresholds.
const (
	defaultAccelRPMThreshold = 100.0
	defaultAccelTPSThreshold = 50.0
	defaultShiftRPMThreshold = -500.0
	defaultShiftTPSFloor     = 30.0
)

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithAccelThresholds sets the RPM-delta and throttle thresholds for
// acceleration events.
func WithAccelThresholds(rpmDelta, tps float64) Option {
	return func(d *Detector) {
		d.accelRPMThreshold = rpmDelta
		d.accelTPSThreshold = tps
	}
}

// WithShiftThresholds sets the RPM-drop threshold and the throttle floor
// for shift candidates. The drop threshold is negative.
func WithShiftThresholds(rpmDelta, tpsFloor float64) Option {
	return func(d *Detector) {
		if rpmDelta < 0 {
			d.shiftRPMThreshold = rpmDelta
		}
		d.shiftTPSFloor = tpsFloor
	}
}

// Detector flags acceleration and gear-shift events.
type Detector struct {
	accelRPMThreshold float64
	accelTPSThreshold float64
	shiftRPMThreshold float64
	shiftTPSFloor     float64
}

// New creates a Detector with default thresholds.
func New(opts ...Option) *Detector {
	d := &Detector{
		accelRPMThreshold: defaultAccelRPMThreshold,
		accelTPSThreshold: defaultAccelTPSThreshold,
		shiftRPMThreshold: defaultShiftRPMThreshold,
		shiftTPSFloor:     defaultShiftTPSFloor,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run sets the event flags on the sequence in place and returns one
// ShiftEvent per flagged shift candidate. Samples without deltas (the
// first of a sequence) can trigger neither predicate.
func (d *Detector) Run(ctx context.Context, samples []model.DerivedSample) ([]model.ShiftEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("detect canceled: %w", err)
	}

	var shifts []model.ShiftEvent
	for i := range samples {
		s := &samples[i]
		if !s.HasDeltas {
			continue
		}

		s.IsAccelerating = s.RPMDelta > d.accelRPMThreshold && s.TPS > d.accelTPSThreshold
		s.IsShiftCandidate = s.RPMDelta < d.shiftRPMThreshold && s.TPS > d.shiftTPSFloor

		if s.IsShiftCandidate {
			shifts = append(shifts, model.ShiftEvent{
				Index:       i,
				TimeElapsed: s.TimeElapsed,
				RPMBefore:   s.RPM - s.RPMDelta,
				RPMAfter:    s.RPM,
				RPMDelta:    s.RPMDelta,
				TPSAtShift:  s.TPS,
			})
		}
	}
	return shifts, nil
}
