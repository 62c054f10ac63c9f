package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given an isolated registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager against it", func() {
			m := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the manager registers its collectors there", func() {
				So(m, ShouldNotBeNil)
				m.rankingRequests.WithLabelValues("all").Inc()

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
			})
		})

		Convey("When overriding namespace and subsystem", func() {
			m := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("testing"),
				WithSubsystem("boards"),
			)
			m.rankingErrors.Inc()

			families, err := registry.Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "testing_boards_ranking_errors_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("When overriding histogram buckets", func() {
			m := NewManager(
				WithPrometheusRegistry(registry),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			So(m.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("When recording through every helper", func() {
			So(func() {
				RecordRankingRequest("weekly")
				RecordRankingDuration(12.5)
				RecordRankingError()
				RecordLeaderboardBuildDuration("overall", 3.2)
				RecordStoreQueryLatency(1.1)
				RecordStoreError()
				UpdateContributorsTotal(42)
				RecordHTTPRequest("rankings", "GET", "200")
				RecordHTTPRequestDuration("rankings", "GET", "200", 8.0)
				RecordErrorByComponent("http", "client_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(17)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("When gathering from the shared registry", func() {
			families, err := GetRegistry().Gather()

			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
