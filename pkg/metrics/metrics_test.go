package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given the metrics manager", t, func() {
		Convey("When creating with an isolated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it registers its collectors there", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
			})
		})

		Convey("When creating with custom naming", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then metric names carry the namespace and subsystem", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "testns_testsub_sessions_submitted_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager from package init", t, func() {
		So(globalManager, ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When recording through the package-level helpers", func() {
			RecordSessionSubmitted()
			RecordSessionDuplicate()
			RecordSessionCompleted()
			RecordSessionFailed()
			AddSamplesDropped(3)
			AddShiftEvents(2)
			AddAccelEvents(5)
			ObservePipelineDuration(0.05)
			UpdateQueueSize(4)
			UpdateQueueCapacity(64)
			UpdateQueueUtilization(0.0625)
			RecordQueueEnqueueError()
			UpdateWorkerCount(2)
			UpdateStoredSessions(7)
			RecordHTTPRequest("sessions", "POST", "202")
			ObserveHTTPRequestDuration("sessions", "POST", 0.01)
			RecordErrorByComponent("queue", "queue_full")

			Convey("Then the custom registry gathers without errors", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
			})
		})
	})
}
