package ingest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/adapters/ingest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadCSV(t *testing.T) {
	Convey("Given a well-formed telemetry log", t, func() {
		log := strings.Join([]string{
			"timestamp,rpm,tps,map,barometer,lambda",
			"0.0,2000,20,40,101.3,0.98",
			"0.1,2100,22,42,101.3,0.97",
		}, "\n")

		Convey("When parsing", func() {
			samples, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then every row becomes a fully populated sample", func() {
				So(err, ShouldBeNil)
				So(samples, ShouldHaveLength, 2)
				So(*samples[0].Timestamp, ShouldEqual, 0.0)
				So(*samples[0].RPM, ShouldEqual, 2000)
				So(*samples[1].Barometer, ShouldEqual, 101.3)
				So(*samples[1].Lambda, ShouldEqual, 0.97)
			})
		})
	})

	Convey("Given a log with blank cells", t, func() {
		log := strings.Join([]string{
			"timestamp,rpm,tps,map,barometer,lambda",
			"0.0,2000,20,40,,0.98",
			"0.1,,22,42,101.3,0.97",
		}, "\n")

		Convey("When parsing", func() {
			samples, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then blanks arrive as explicitly missing values", func() {
				So(err, ShouldBeNil)
				So(samples[0].Barometer, ShouldBeNil)
				So(samples[0].RPM, ShouldNotBeNil)
				So(samples[1].RPM, ShouldBeNil)
			})
		})
	})

	Convey("Given a log with shuffled and extra columns", t, func() {
		log := strings.Join([]string{
			"Lambda,RPM,extra,TPS,MAP,Barometer,Timestamp",
			"0.98,2000,junk,20,40,101.3,0.0",
		}, "\n")

		Convey("When parsing", func() {
			samples, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then matching is case-insensitive and positional-free", func() {
				So(err, ShouldBeNil)
				So(samples, ShouldHaveLength, 1)
				So(*samples[0].RPM, ShouldEqual, 2000)
				So(*samples[0].Timestamp, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given a short row", t, func() {
		log := strings.Join([]string{
			"timestamp,rpm,tps,map,barometer,lambda",
			"0.0,2000,20",
		}, "\n")

		Convey("When parsing", func() {
			samples, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then the absent trailing cells are missing values", func() {
				So(err, ShouldBeNil)
				So(samples, ShouldHaveLength, 1)
				So(*samples[0].TPS, ShouldEqual, 20)
				So(samples[0].MAP, ShouldBeNil)
				So(samples[0].Lambda, ShouldBeNil)
			})
		})
	})

	Convey("Given a header missing a required column", t, func() {
		log := "timestamp,rpm,tps,map,barometer\n0.0,2000,20,40,101.3\n"

		Convey("When parsing", func() {
			_, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then the header is rejected up front", func() {
				So(errors.Is(err, ingest.ErrBadHeader), ShouldBeTrue)
			})
		})
	})

	Convey("Given a non-numeric cell", t, func() {
		log := strings.Join([]string{
			"timestamp,rpm,tps,map,barometer,lambda",
			"0.0,garbage,20,40,101.3,0.98",
		}, "\n")

		Convey("When parsing", func() {
			_, err := ingest.ReadCSV(strings.NewReader(log))

			Convey("Then the error names the line and column", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "line 2")
				So(err.Error(), ShouldContainSubstring, "rpm")
			})
		})
	})

	Convey("Given an empty reader", t, func() {
		Convey("When parsing", func() {
			_, err := ingest.ReadCSV(strings.NewReader(""))

			Convey("Then the missing header is an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
