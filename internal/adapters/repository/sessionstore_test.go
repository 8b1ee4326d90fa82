package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/repository"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty session store", t, func() {
		store := repository.NewSessionStore()

		Convey("When storing and fetching a result", func() {
			res := types.SessionResult{SessionID: "s-1", Status: types.StatusPending}
			So(store.Put(ctx, res), ShouldBeNil)

			got, err := store.Get(ctx, "s-1")

			Convey("Then the stored result comes back intact", func() {
				So(err, ShouldBeNil)
				So(got.SessionID, ShouldEqual, "s-1")
				So(got.Status, ShouldEqual, types.StatusPending)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When replacing a pending result with a completed one", func() {
			So(store.Put(ctx, types.SessionResult{SessionID: "s-1", Status: types.StatusPending}), ShouldBeNil)
			So(store.Put(ctx, types.SessionResult{SessionID: "s-1", Status: types.StatusCompleted}), ShouldBeNil)

			got, err := store.Get(ctx, "s-1")

			Convey("Then the replacement wins and the count stays at one", func() {
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, types.StatusCompleted)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When fetching an unknown id", func() {
			_, err := store.Get(ctx, "missing")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When storing a result without an id", func() {
			err := store.Put(ctx, types.SessionResult{})

			Convey("Then the put is rejected", func() {
				So(errors.Is(err, repository.ErrEmptySessionID), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store with a single shard", t, func() {
		store := repository.NewSessionStore(repository.WithShardCount(1))

		Convey("When several results land on it", func() {
			for i := 0; i < 10; i++ {
				id := fmt.Sprintf("s-%d", i)
				So(store.Put(ctx, types.SessionResult{SessionID: id}), ShouldBeNil)
			}

			Convey("Then all are retrievable", func() {
				So(store.Count(ctx), ShouldEqual, 10)
				got, err := store.Get(ctx, "s-7")
				So(err, ShouldBeNil)
				So(got.SessionID, ShouldEqual, "s-7")
			})
		})
	})

	Convey("Given concurrent writers across shards", t, func() {
		store := repository.NewSessionStore()

		Convey("When many goroutines store disjoint sessions", func() {
			const workers = 8
			const perWorker = 50

			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						id := fmt.Sprintf("w%d-s%d", w, i)
						_ = store.Put(ctx, types.SessionResult{SessionID: id})
					}
				}(w)
			}
			wg.Wait()

			Convey("Then every session is present", func() {
				So(store.Count(ctx), ShouldEqual, workers*perWorker)
			})
		})
	})

	Convey("Given a canceled context", t, func() {
		store := repository.NewSessionStore()
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When putting or getting", func() {
			putErr := store.Put(canceled, types.SessionResult{SessionID: "s-1"})
			_, getErr := store.Get(canceled, "s-1")

			Convey("Then both respect cancellation", func() {
				So(errors.Is(putErr, context.Canceled), ShouldBeTrue)
				So(errors.Is(getErr, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
