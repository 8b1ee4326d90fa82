package app

import (
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the analysis job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the session-id idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithCriticalFields sets the channels whose absence drops a sample.
func WithCriticalFields(fields []string) Option {
	return func(s *Service) {
		if len(fields) == 0 {
			return
		}
		converted := make([]model.Field, len(fields))
		for i, f := range fields {
			converted[i] = model.Field(f)
		}
		s.criticalFields = converted
	}
}

// WithAccelThresholds sets the acceleration-event thresholds.
func WithAccelThresholds(rpmDelta, tps float64) Option {
	return func(s *Service) {
		s.accelRPM = rpmDelta
		s.accelTPS = tps
	}
}

// WithShiftThresholds sets the gear-shift detection thresholds.
func WithShiftThresholds(rpmDelta, tpsFloor float64) Option {
	return func(s *Service) {
		s.shiftRPM = rpmDelta
		s.shiftTPSFloor = tpsFloor
	}
}

// WithEarlyShiftMargin sets the early-shift verdict margin.
func WithEarlyShiftMargin(margin float64) Option {
	return func(s *Service) {
		if margin >= 0 {
			s.earlyMargin = margin
		}
	}
}

// WithPowerQuantile sets the power-index quantile.
func WithPowerQuantile(q float64) Option {
	return func(s *Service) {
		if q > 0 && q < 1 {
			s.powerQuantile = q
		}
	}
}

// WithAggressionWeights sets the composite-score weights.
func WithAggressionWeights(w aggression.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithStyleCutoffs sets the smooth and aggressive score cutoffs.
func WithStyleCutoffs(smooth, aggressive float64) Option {
	return func(s *Service) {
		if smooth > 0 && aggressive > smooth {
			s.smoothCutoff = smooth
			s.aggressiveCut = aggressive
		}
	}
}
