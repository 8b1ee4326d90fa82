// Package aggression computes the per-sample driving-aggression score
// and style classification.
//
// The score is a weighted composite of throttle level, throttle
// volatility, RPM level, and manifold-pressure volatility, each term
// normalized into [0,1]. Weights must sum to 1 so the score itself stays
// in [0,1].
package aggression

import (
	"context"
	"fmt"
	"math"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Default scoring configuration.
const (
	defaultThrottleWeight      = 0.3
	defaultThrottleDeltaWeight = 0.2
	defaultRPMWeight           = 0.3
	defaultMAPRateWeight       = 0.2

	defaultSmoothCutoff     = 0.3
	defaultAggressiveCutoff = 0.5

	// Normalizers for the volatility terms before clipping to [0,1].
	throttleDeltaScale = 10.0
	mapRateScale       = 5.0

	weightSumTolerance = 1e-9
)

// Weights are the four composite-score weights. They must sum to 1.
type Weights struct {
	Throttle      float64 `koanf:"throttle" json:"throttle"`
	ThrottleDelta float64 `koanf:"throttle_delta" json:"throttle_delta"`
	RPM           float64 `koanf:"rpm" json:"rpm"`
	MAPRate       float64 `koanf:"map_rate" json:"map_rate"`
}

// DefaultWeights returns the standard 0.3/0.2/0.3/0.2 split.
func DefaultWeights() Weights {
	return Weights{
		Throttle:      defaultThrottleWeight,
		ThrottleDelta: defaultThrottleDeltaWeight,
		RPM:           defaultRPMWeight,
		MAPRate:       defaultMAPRateWeight,
	}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	sum := w.Throttle + w.ThrottleDelta + w.RPM + w.MAPRate
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights sum to %v, want 1.0: %w", sum, ErrInvalidWeights)
	}
	if w.Throttle < 0 || w.ThrottleDelta < 0 || w.RPM < 0 || w.MAPRate < 0 {
		return fmt.Errorf("negative weight: %w", ErrInvalidWeights)
	}
	return nil
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the composite-score weights. Invalid weights are
// rejected by New.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithStyleCutoffs sets the smooth and aggressive score cutoffs. Values
// are kept only when ordered as 0 < smooth < aggressive.
func WithStyleCutoffs(smooth, aggressive float64) Option {
	return func(s *Scorer) {
		if smooth > 0 && aggressive > smooth {
			s.smoothCutoff = smooth
			s.aggressiveCutoff = aggressive
		}
	}
}

// Scorer computes aggression scores over a derived sequence.
type Scorer struct {
	weights          Weights
	smoothCutoff     float64
	aggressiveCutoff float64
}

// New creates a Scorer, validating the configured weights.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		weights:          DefaultWeights(),
		smoothCutoff:     defaultSmoothCutoff,
		aggressiveCutoff: defaultAggressiveCutoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run scores every sample in place. rpmMax is the session-wide RPM
// ceiling, computed once by the caller; a sample with an invalid map
// rate contributes zero to that term rather than invalidating the score.
func (s *Scorer) Run(ctx context.Context, samples []model.DerivedSample, rpmMax float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("aggression canceled: %w", err)
	}

	for i := range samples {
		d := &samples[i]
		d.AggressionScore = s.score(d, rpmMax)
		d.Style = s.Classify(d.AggressionScore)
	}
	return nil
}

func (s *Scorer) score(d *model.DerivedSample, rpmMax float64) float64 {
	score := s.weights.Throttle * (d.TPS / 100)

	if d.HasDeltas {
		score += s.weights.ThrottleDelta * clip01(math.Abs(d.TPSDelta)/throttleDeltaScale)
	}
	if rpmMax > 0 {
		score += s.weights.RPM * (d.RPM / rpmMax)
	}
	if d.HasRates {
		score += s.weights.MAPRate * clip01(math.Abs(d.MAPRate)/mapRateScale)
	}
	return score
}

// Classify maps a score to a per-sample style bucket.
func (s *Scorer) Classify(score float64) model.Style {
	switch {
	case score < s.smoothCutoff:
		return model.StyleSmooth
	case score < s.aggressiveCutoff:
		return model.StyleModerate
	default:
		return model.StyleAggressive
	}
}

// ClassifySession maps a session's mean score to the session verdict,
// using the same cutoffs as the per-sample buckets.
func (s *Scorer) ClassifySession(meanScore float64) model.StyleVerdict {
	switch {
	case meanScore < s.smoothCutoff:
		return model.VerdictConservative
	case meanScore < s.aggressiveCutoff:
		return model.VerdictBalanced
	default:
		return model.VerdictAggressive
	}
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
