package testdrive

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/ingest"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
)

// Stats collects what happened over a run.
type Stats struct {
	SessionsSubmitted int
	SessionsCompleted int
	SessionsFailed    int
	ShiftsReported    int
	StartTime         time.Time
	Duration          time.Duration
}

// Run generates synthetic sessions, submits them, waits for the
// results and verifies the analysis against the known signal shape.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("testdrive")

	log.Info(ctx, "starting telemetry test drive",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.Sessions),
		logger.Int("samplesPerSession", cfg.SamplesPerSession),
		logger.Any("seed", cfg.Seed))

	c := newClient(cfg.BaseURL, cfg.Timeout)
	if err := c.checkHealth(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}
	log.Info(ctx, "service is healthy")

	if cfg.LogFile != "" {
		return runLogFile(ctx, c, cfg, log)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	ids := make(map[string]GeneratedSession, cfg.Sessions)
	for i := 0; i < cfg.Sessions; i++ {
		gen := Generate(rng, cfg.SamplesPerSession)
		id := uuid.NewString()

		ack, err := c.submit(ctx, id, gen.Samples)
		if err != nil {
			return fmt.Errorf("submitting session %d: %w", i, err)
		}
		if ack.Duplicate {
			return fmt.Errorf("fresh session %s reported as duplicate", id)
		}
		ids[ack.SessionID] = gen
		stats.SessionsSubmitted++
	}
	log.Info(ctx, "all sessions submitted", logger.Int("count", stats.SessionsSubmitted))

	for id, gen := range ids {
		res, err := c.fetchResult(ctx, id, cfg.PollInterval, cfg.PollAttempts)
		if err != nil {
			return fmt.Errorf("fetching result for %s: %w", id, err)
		}
		if res.Status != types.StatusCompleted {
			stats.SessionsFailed++
			log.Error(ctx, "session did not complete",
				logger.String("sessionID", id),
				logger.String("status", string(res.Status)),
				logger.String("error", res.Error))
			continue
		}
		if err := verifyResult(res, gen); err != nil {
			return fmt.Errorf("verifying session %s: %w", id, err)
		}
		stats.SessionsCompleted++
		if res.Summary != nil {
			stats.ShiftsReported += res.Summary.ShiftCount
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "test drive finished",
		logger.Int("submitted", stats.SessionsSubmitted),
		logger.Int("completed", stats.SessionsCompleted),
		logger.Int("failed", stats.SessionsFailed),
		logger.Int("shiftsReported", stats.ShiftsReported),
		logger.String("duration", stats.Duration.String()))

	if stats.SessionsFailed > 0 {
		return fmt.Errorf("%d of %d sessions failed", stats.SessionsFailed, stats.SessionsSubmitted)
	}
	return nil
}

// runLogFile submits a recorded CSV telemetry log as one session and
// reports the analysis. Recorded logs have no known event counts, so
// only completion and summary shape are checked.
func runLogFile(ctx context.Context, c *client, cfg *Config, log logger.Logger) error {
	samples, err := ingest.ReadFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("reading telemetry log: %w", err)
	}
	log.Info(ctx, "telemetry log loaded",
		logger.String("file", cfg.LogFile),
		logger.Int("samples", len(samples)))

	id := uuid.NewString()
	ack, err := c.submit(ctx, id, samples)
	if err != nil {
		return fmt.Errorf("submitting log session: %w", err)
	}

	res, err := c.fetchResult(ctx, ack.SessionID, cfg.PollInterval, cfg.PollAttempts)
	if err != nil {
		return fmt.Errorf("fetching log result: %w", err)
	}
	if res.Status != types.StatusCompleted {
		return fmt.Errorf("log session %s ended %s: %s", ack.SessionID, res.Status, res.Error)
	}
	if res.Summary == nil {
		return fmt.Errorf("completed log session has no summary")
	}

	log.Info(ctx, "log session analyzed",
		logger.String("sessionID", ack.SessionID),
		logger.Int("samples", res.Summary.SampleCount),
		logger.Int("dropped", res.Summary.DroppedSamples),
		logger.Int("shifts", res.Summary.ShiftCount),
		logger.Float64("meanAggression", res.Summary.MeanAggression),
		logger.String("style", string(res.Summary.DrivingStyle)))
	return nil
}

// verifyResult checks a completed result against the generated shape.
// The generator knows exactly how many upshifts it produced, so the
// detected count must match. Summary fractions must be well formed.
func verifyResult(res types.SessionResult, gen GeneratedSession) error {
	if res.Summary == nil {
		return fmt.Errorf("completed result has no summary")
	}
	sum := res.Summary

	if sum.ShiftCount != gen.ExpectedShifts {
		return fmt.Errorf("shift count %d, generator produced %d", sum.ShiftCount, gen.ExpectedShifts)
	}
	if sum.SampleCount <= 0 {
		return fmt.Errorf("summary has no samples")
	}

	frac := sum.SmoothFraction + sum.ModerateFraction + sum.AggressiveFraction
	if math.Abs(frac-1) > 1e-9 {
		return fmt.Errorf("style fractions sum to %v", frac)
	}
	if sum.AccelerationFraction < 0 || sum.AccelerationFraction > 1 {
		return fmt.Errorf("acceleration fraction %v out of range", sum.AccelerationFraction)
	}
	if math.IsNaN(sum.MeanAggression) || math.IsInf(sum.MeanAggression, 0) {
		return fmt.Errorf("mean aggression is not finite")
	}
	return nil
}
