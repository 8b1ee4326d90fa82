// Package worker runs the analysis pipeline over queued session jobs.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/mq/queue"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/metrics"
)

// Job is the payload workers read off the queue.
type Job = queue.Job

// Analyzer runs the full pipeline for one session.
type Analyzer interface {
	Analyze(ctx context.Context, job Job) (types.SessionResult, error)
}

// Sink stores a finished session result.
type Sink interface {
	Put(ctx context.Context, res types.SessionResult) error
}

// Source defines how workers receive jobs.
type Source interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Pool runs a fixed number of workers consuming from one source.
type Pool struct {
	source   Source
	analyzer Analyzer
	sink     Sink
	count    int

	wg     sync.WaitGroup
	cancel context.CancelFunc
	logger logger.Logger
}

// NewPool creates a worker pool with configuration options.
func NewPool(count int, source Source, analyzer Analyzer, sink Sink, opts ...Option) *Pool {
	p := &Pool{
		source:   source,
		analyzer: analyzer,
		sink:     sink,
		count:    count,
	}
	if p.count < 1 {
		p.count = 1
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Named("worker")
	}
	return p
}

// Start launches the workers. They run until Stop is called or ctx is
// canceled.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	metrics.UpdateWorkerCount(p.count)

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.count))
}

// Stop cancels the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, id int) {
	name := fmt.Sprintf("worker-%d", id)
	jobs := p.source.Dequeue(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			p.process(ctx, name, job)
		}
	}
}

func (p *Pool) process(ctx context.Context, name string, job Job) {
	res, err := p.analyzer.Analyze(ctx, job)
	if err != nil {
		// The analyzer reports pipeline failures inside the result; an
		// error here means the run itself could not proceed.
		p.logger.Error(ctx, "analysis failed",
			logger.String("worker", name),
			logger.String("session", job.SessionID),
			logger.Error(err),
		)
		metrics.RecordErrorByComponent("worker", "analyze")
		res = types.SessionResult{
			SessionID:   job.SessionID,
			Status:      types.StatusFailed,
			SubmittedAt: job.SubmittedAt,
			Error:       err.Error(),
		}
	}

	if err := p.sink.Put(ctx, res); err != nil {
		p.logger.Error(ctx, "storing result failed",
			logger.String("worker", name),
			logger.String("session", job.SessionID),
			logger.Error(err),
		)
		metrics.RecordErrorByComponent("worker", "store")
	}
}
