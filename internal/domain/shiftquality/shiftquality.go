// Package shiftquality compares observed shift behavior against the
// session's optimal shift point.
//
// The optimal shift RPM is the lowest RPM among samples whose power
// index exceeds the session's high quantile: the point below which
// shifting gives up available power. This is a whole-sequence statistic
// and runs as an explicit two-phase scan (quantile first, minimum
// second).
package shiftquality

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Defaults for the analysis.
const (
	defaultPowerQuantile = 0.9
	defaultEarlyMargin   = 500.0
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithPowerQuantile sets the power-index quantile defining the top
// power-producing band. Must lie strictly between 0 and 1.
func WithPowerQuantile(q float64) Option {
	return func(a *Analyzer) {
		if q > 0 && q < 1 {
			a.powerQuantile = q
		}
	}
}

// WithEarlyMargin sets how many RPM below optimal the average shift must
// sit before the session is flagged as shifting early.
func WithEarlyMargin(margin float64) Option {
	return func(a *Analyzer) {
		if margin >= 0 {
			a.earlyMargin = margin
		}
	}
}

// Analyzer produces the shift-quality verdict for a session.
type Analyzer struct {
	powerQuantile float64
	earlyMargin   float64
}

// New creates an Analyzer with default settings.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		powerQuantile: defaultPowerQuantile,
		earlyMargin:   defaultEarlyMargin,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run computes the optimal shift RPM and compares the observed average.
// It fails with ErrInsufficientEvents when there are no shift events or
// no samples above the power quantile; the caller keeps the rest of the
// session analysis either way.
func (a *Analyzer) Run(ctx context.Context, samples []model.DerivedSample, shifts []model.ShiftEvent) (model.ShiftQuality, error) {
	if err := ctx.Err(); err != nil {
		return model.ShiftQuality{}, fmt.Errorf("shiftquality canceled: %w", err)
	}

	if len(shifts) == 0 {
		return model.ShiftQuality{}, fmt.Errorf("no shift events in session: %w", ErrInsufficientEvents)
	}

	optimal, err := a.optimalShiftRPM(samples)
	if err != nil {
		return model.ShiftQuality{}, err
	}

	var sum float64
	for _, s := range shifts {
		sum += s.RPMBefore
	}
	avg := sum / float64(len(shifts))

	q := model.ShiftQuality{
		OptimalShiftRPM: optimal,
		AvgShiftRPM:     avg,
		Verdict:         model.VerdictTimingAcceptable,
	}
	if avg < optimal-a.earlyMargin {
		q.Verdict = model.VerdictShiftingEarly
		q.EarlyByRPM = optimal - avg
	}
	return q, nil
}

// optimalShiftRPM is the minimum RPM over samples whose power index
// strictly exceeds the session quantile.
func (a *Analyzer) optimalShiftRPM(samples []model.DerivedSample) (float64, error) {
	indices := make([]float64, 0, len(samples))
	for i := range samples {
		indices = append(indices, samples[i].PowerIndex)
	}
	if len(indices) == 0 {
		return 0, fmt.Errorf("no samples to rank: %w", ErrInsufficientEvents)
	}

	threshold := quantile(indices, a.powerQuantile)

	minRPM := math.Inf(1)
	found := false
	for i := range samples {
		if samples[i].PowerIndex > threshold && samples[i].RPM < minRPM {
			minRPM = samples[i].RPM
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("no samples above power quantile %.2f: %w", a.powerQuantile, ErrInsufficientEvents)
	}
	return minRPM, nil
}

// quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. values must be non-empty; it is not modified.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
