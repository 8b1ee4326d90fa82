package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/mq/queue"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/mq/worker"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// stubAnalyzer completes every job, failing the ids listed in failFor.
type stubAnalyzer struct {
	failFor map[string]bool
}

func (a *stubAnalyzer) Analyze(_ context.Context, job worker.Job) (types.SessionResult, error) {
	if a.failFor[job.SessionID] {
		return types.SessionResult{}, errors.New("analyzer exploded")
	}
	return types.SessionResult{
		SessionID: job.SessionID,
		Status:    types.StatusCompleted,
	}, nil
}

// memSink records every stored result and signals on a channel.
type memSink struct {
	mu      sync.Mutex
	results map[string]types.SessionResult
	stored  chan string
}

func newMemSink(capacity int) *memSink {
	return &memSink{
		results: make(map[string]types.SessionResult),
		stored:  make(chan string, capacity),
	}
}

func (s *memSink) Put(_ context.Context, res types.SessionResult) error {
	s.mu.Lock()
	s.results[res.SessionID] = res
	s.mu.Unlock()
	s.stored <- res.SessionID
	return nil
}

func (s *memSink) get(id string) (types.SessionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}

func waitFor(t *testing.T, s *memSink, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.stored:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d results", n)
		}
	}
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool consuming from a queue", t, func() {
		q := queue.NewInMemoryQueue()
		sink := newMemSink(16)
		pool := worker.NewPool(2, q, &stubAnalyzer{}, sink)

		pool.Start(ctx)
		Reset(func() {
			q.Close()
			pool.Stop()
		})

		Convey("When jobs are enqueued", func() {
			So(q.Enqueue(ctx, worker.Job{SessionID: "s-1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Job{SessionID: "s-2"}), ShouldBeTrue)
			waitFor(t, sink, 2)

			Convey("Then every job lands in the sink completed", func() {
				for _, id := range []string{"s-1", "s-2"} {
					res, ok := sink.get(id)
					So(ok, ShouldBeTrue)
					So(res.Status, ShouldEqual, types.StatusCompleted)
				}
			})
		})
	})

	Convey("Given an analyzer that fails one session", t, func() {
		q := queue.NewInMemoryQueue()
		sink := newMemSink(16)
		pool := worker.NewPool(1, q, &stubAnalyzer{failFor: map[string]bool{"s-bad": true}}, sink)

		pool.Start(ctx)
		Reset(func() {
			q.Close()
			pool.Stop()
		})

		Convey("When a failing and a healthy job run", func() {
			submitted := time.Now()
			So(q.Enqueue(ctx, worker.Job{SessionID: "s-bad", SubmittedAt: submitted}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Job{SessionID: "s-ok"}), ShouldBeTrue)
			waitFor(t, sink, 2)

			Convey("Then the failure is stored as a failed result", func() {
				res, ok := sink.get("s-bad")
				So(ok, ShouldBeTrue)
				So(res.Status, ShouldEqual, types.StatusFailed)
				So(res.Error, ShouldContainSubstring, "analyzer exploded")
				So(res.SubmittedAt, ShouldEqual, submitted)
			})

			Convey("Then the healthy job is unaffected", func() {
				res, ok := sink.get("s-ok")
				So(ok, ShouldBeTrue)
				So(res.Status, ShouldEqual, types.StatusCompleted)
			})
		})
	})

	Convey("Given a stopped pool", t, func() {
		q := queue.NewInMemoryQueue()
		sink := newMemSink(16)
		pool := worker.NewPool(4, q, &stubAnalyzer{}, sink)

		pool.Start(ctx)
		pool.Stop()

		Convey("Then Stop returns with no workers running", func() {
			// Stop blocks on the waitgroup, so reaching here is the assertion.
			So(q.Close(), ShouldBeNil)
		})
	})
}
