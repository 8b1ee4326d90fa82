// Package normalize cleans a raw telemetry sequence before derivation.
//
// Cleaning drops unrecoverable readings (missing critical channels,
// non-positive RPM) and forward-fills missing non-critical channels from
// the nearest preceding retained sample. Input ordering is preserved;
// duplicate timestamps pass through untouched.
package normalize

import (
	"context"
	"fmt"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithCriticalFields overrides the set of channels whose absence drops a
// sample. An empty set leaves the default in place.
func WithCriticalFields(fields []model.Field) Option {
	return func(n *Normalizer) {
		if len(fields) > 0 {
			n.critical = make(map[model.Field]bool, len(fields))
			for _, f := range fields {
				n.critical[f] = true
			}
		}
	}
}

// Normalizer validates and cleans raw sample sequences.
type Normalizer struct {
	critical map[model.Field]bool
}

// New creates a Normalizer with the default critical-field set.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{critical: map[model.Field]bool{}}
	for _, f := range model.DefaultCriticalFields() {
		n.critical[f] = true
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// channels lists every telemetry field with an accessor pair so the fill
// loop can treat them uniformly.
var channels = []struct {
	field model.Field
	raw   func(model.RawSample) *float64
	set   func(*model.Sample, float64)
}{
	{model.FieldRPM, func(r model.RawSample) *float64 { return r.RPM }, func(s *model.Sample, v float64) { s.RPM = v }},
	{model.FieldTPS, func(r model.RawSample) *float64 { return r.TPS }, func(s *model.Sample, v float64) { s.TPS = v }},
	{model.FieldMAP, func(r model.RawSample) *float64 { return r.MAP }, func(s *model.Sample, v float64) { s.MAP = v }},
	{model.FieldBarometer, func(r model.RawSample) *float64 { return r.Barometer }, func(s *model.Sample, v float64) { s.Barometer = v }},
	{model.FieldLambda, func(r model.RawSample) *float64 { return r.Lambda }, func(s *model.Sample, v float64) { s.Lambda = v }},
}

// Run cleans raw into an ordered []model.Sample and accounts for every
// dropped row. Drops are not errors; only a result too short to derive
// signals from (fewer than 2 samples) escalates to ErrInsufficientData,
// as does a first retained sample with a missing non-critical channel
// and no prior value to forward-fill from.
func (n *Normalizer) Run(ctx context.Context, raw []model.RawSample) ([]model.Sample, model.DropReport, error) {
	var report model.DropReport

	cleaned := make([]model.Sample, 0, len(raw))
	last := make(map[model.Field]float64, len(channels))

	for _, r := range raw {
		if err := ctx.Err(); err != nil {
			return nil, report, fmt.Errorf("normalize canceled: %w", err)
		}

		// A sample without a timestamp cannot be placed on the series.
		if r.Timestamp == nil {
			report.MissingCritical++
			continue
		}
		if n.missingCritical(r) {
			report.MissingCritical++
			continue
		}
		if r.RPM != nil && *r.RPM <= 0 {
			report.NonPositiveRPM++
			continue
		}

		s := model.Sample{Timestamp: *r.Timestamp}
		for _, ch := range channels {
			if v := ch.raw(r); v != nil {
				ch.set(&s, *v)
				last[ch.field] = *v
				continue
			}
			// Missing non-critical channel: forward-fill.
			v, ok := last[ch.field]
			if !ok {
				return nil, report, fmt.Errorf(
					"first retained sample at t=%v missing %s with no prior value: %w",
					s.Timestamp, ch.field, ErrInsufficientData)
			}
			ch.set(&s, v)
		}

		cleaned = append(cleaned, s)
	}

	if len(cleaned) < minSamples {
		return nil, report, fmt.Errorf(
			"%d samples after cleaning, need at least %d: %w",
			len(cleaned), minSamples, ErrInsufficientData)
	}
	return cleaned, report, nil
}

// minSamples is the shortest sequence the derivation stage can work with.
const minSamples = 2

func (n *Normalizer) missingCritical(r model.RawSample) bool {
	for f := range n.critical {
		if r.Missing(f) {
			return true
		}
	}
	return false
}
