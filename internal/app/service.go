// Package app provides the core service that wires the analysis
// pipeline to the queue, worker pool, and result store, and implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	jobqueue "github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/mq/queue"
	workerpool "github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/mq/worker"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/repository"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/dedupe"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/derive"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/detect"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/normalize"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/shiftquality"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/summary"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/metrics"
)

// Service runs the telemetry analysis pipeline for submitted sessions.
type Service struct {
	mu sync.RWMutex

	// Pipeline stages
	normalizer    *normalize.Normalizer
	detector      *detect.Detector
	shiftAnalyzer *shiftquality.Analyzer
	scorer        *aggression.Scorer

	// Infrastructure
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue jobqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	criticalFields []model.Field
	accelRPM       float64
	accelTPS       float64
	shiftRPM       float64
	shiftTPSFloor  float64
	earlyMargin    float64
	powerQuantile  float64
	weights        aggression.Weights
	smoothCutoff   float64
	aggressiveCut  float64

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU(),
		queueSize:      1024,
		dedupeSize:     10_000,
		criticalFields: model.DefaultCriticalFields(),
		accelRPM:       100,
		accelTPS:       50,
		shiftRPM:       -500,
		shiftTPSFloor:  30,
		earlyMargin:    500,
		powerQuantile:  0.9,
		weights:        aggression.DefaultWeights(),
		smoothCutoff:   0.3,
		aggressiveCut:  0.5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pipeline stages and launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	scorer, err := aggression.New(
		aggression.WithWeights(s.weights),
		aggression.WithStyleCutoffs(s.smoothCutoff, s.aggressiveCut),
	)
	if err != nil {
		return fmt.Errorf("building aggression scorer: %w", err)
	}
	s.scorer = scorer
	s.normalizer = normalize.New(normalize.WithCriticalFields(s.criticalFields))
	s.detector = detect.New(
		detect.WithAccelThresholds(s.accelRPM, s.accelTPS),
		detect.WithShiftThresholds(s.shiftRPM, s.shiftTPSFloor),
	)
	s.shiftAnalyzer = shiftquality.New(
		shiftquality.WithPowerQuantile(s.powerQuantile),
		shiftquality.WithEarlyMargin(s.earlyMargin),
	)

	s.store = repository.NewSessionStore()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s.store,
		workerpool.WithLogger(s.logger.Named("worker")))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop drains the worker pool and closes the queue.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "analysis service stopped")
}

// SeenAndRecord atomically checks and records a session id.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSessionDuplicate()
	}
	return seen
}

// Unrecord forgets a session id so it can be resubmitted.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Submit registers a pending result and enqueues the session for
// analysis. Returns false on backpressure; the pending marker is rolled
// back so a retry can succeed.
func (s *Service) Submit(ctx context.Context, sessionID string, samples []model.RawSample) bool {
	job := model.AnalysisJob{
		SessionID:   sessionID,
		Samples:     samples,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.store.Put(ctx, types.SessionResult{
		SessionID:   sessionID,
		Status:      types.StatusPending,
		SubmittedAt: job.SubmittedAt,
	}); err != nil {
		s.logger.Error(ctx, "marking session pending failed",
			logger.String("session", sessionID), logger.Error(err))
		return false
	}

	if !s.jobQueue.Enqueue(ctx, job) {
		return false
	}
	metrics.RecordSessionSubmitted()
	return true
}

// Result returns the stored result for a session id.
func (s *Service) Result(ctx context.Context, id string) (types.SessionResult, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return types.SessionResult{}, fmt.Errorf("fetching session: %w", err)
	}
	return res, nil
}

// Analyze runs the full pipeline for one session. Stage failures are
// reported on the returned result; a non-nil error means the run itself
// could not proceed (cancellation). The pipeline is deterministic: the
// same samples and configuration produce an identical summary.
func (s *Service) Analyze(ctx context.Context, job workerpool.Job) (types.SessionResult, error) {
	start := time.Now()
	res := types.SessionResult{
		SessionID:   job.SessionID,
		SubmittedAt: job.SubmittedAt,
	}

	cleaned, drops, err := s.normalizer.Run(ctx, job.Samples)
	res.Dropped = drops
	metrics.AddSamplesDropped(drops.Total())
	if err != nil {
		return s.failed(ctx, res, fmt.Errorf("normalize: %w", err))
	}

	derived, err := derive.Run(ctx, cleaned)
	if err != nil {
		return s.failed(ctx, res, fmt.Errorf("derive: %w", err))
	}

	shifts, err := s.detector.Run(ctx, derived)
	if err != nil {
		return s.failed(ctx, res, fmt.Errorf("detect: %w", err))
	}
	metrics.AddShiftEvents(len(shifts))

	if err := s.scorer.Run(ctx, derived, derive.RPMMax(derived)); err != nil {
		return s.failed(ctx, res, fmt.Errorf("aggression: %w", err))
	}

	sum := summary.Build(derived, shifts, drops, s.scorer)
	metrics.AddAccelEvents(sum.AccelerationEvents)

	// Shift analysis can fail on a degenerate session without discarding
	// the rest of the results.
	quality, err := s.shiftAnalyzer.Run(ctx, derived, shifts)
	if err != nil {
		if ctx.Err() != nil {
			return res, fmt.Errorf("shiftquality: %w", err)
		}
		res.ShiftAnalysisError = fmt.Sprintf("shiftquality: %v", err)
		s.logger.Warn(ctx, "shift analysis unavailable",
			logger.String("session", job.SessionID), logger.Error(err))
	} else {
		sum.ShiftQuality = &quality
	}

	res.Status = types.StatusCompleted
	res.CompletedAt = time.Now().UTC()
	res.Summary = &sum
	res.Shifts = shifts
	res.Derived = derived

	metrics.RecordSessionCompleted()
	metrics.ObservePipelineDuration(time.Since(start).Seconds())
	s.logger.Debug(ctx, "session analyzed",
		logger.String("session", job.SessionID),
		logger.Int("samples", sum.SampleCount),
		logger.Int("shifts", sum.ShiftCount),
		logger.Float64("meanAggression", sum.MeanAggression),
	)
	return res, nil
}

func (s *Service) failed(ctx context.Context, res types.SessionResult, err error) (types.SessionResult, error) {
	if ctx.Err() != nil {
		return res, err
	}
	res.Status = types.StatusFailed
	res.CompletedAt = time.Now().UTC()
	res.Error = err.Error()
	metrics.RecordSessionFailed()
	s.logger.Warn(ctx, "pipeline failed",
		logger.String("session", res.SessionID), logger.Error(err))
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["storedSessions"] = s.store.Count(ctx)
		stats["trackedIDs"] = s.deduper.Size()
	}
	return stats
}
