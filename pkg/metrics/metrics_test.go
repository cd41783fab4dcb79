package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx"),
				WithHTTPBuckets([]float64{0.1, 0.5, 1.0}),
				WithUpstreamBuckets([]float64{100, 1000}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(manager.httpBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.upstreamBuckets, ShouldResemble, []float64{100, 1000})
			})

			Convey("And metric names should carry the prefix and labels", func() {
				manager.upstreamRequests.WithLabelValues(OutcomeOK).Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_namespace_test_subsystem_pfx_upstream_requests_total" {
						found = true
						labels := mf.GetMetric()[0].GetLabel()
						names := make([]string, 0, len(labels))
						for _, l := range labels {
							names = append(names, l.GetName())
						}
						So(names, ShouldContain, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When passing empty or invalid option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHTTPBuckets(nil),
				WithUpstreamBuckets(nil),
				WithRefreshInterval(-time.Second),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "adgenius")
				So(manager.subsystem, ShouldEqual, "relay")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
				So(manager.httpBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.upstreamBuckets, ShouldResemble, defaultUpstreamBuckets)
				So(manager.constLabels, ShouldBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		So(Default(), ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When recording upstream outcomes", func() {
			before := testutil.ToFloat64(globalManager.upstreamRequests.WithLabelValues(OutcomeStatusError))
			RecordUpstreamRequest(OutcomeStatusError, 120)
			RecordUpstreamRequest(OutcomeStatusError, 80)

			Convey("Then the outcome counter should advance", func() {
				after := testutil.ToFloat64(globalManager.upstreamRequests.WithLabelValues(OutcomeStatusError))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording dropped and truncated records", func() {
			dropped := testutil.ToFloat64(globalManager.recordsDropped)
			truncated := testutil.ToFloat64(globalManager.recordsTruncated)
			RecordRecordsDropped(3)
			RecordRecordsDropped(0)
			RecordRecordsDropped(-1)
			RecordRecordsTruncated(12)

			Convey("Then only positive counts should be added", func() {
				So(testutil.ToFloat64(globalManager.recordsDropped)-dropped, ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.recordsTruncated)-truncated, ShouldEqual, 12)
			})
		})

		Convey("When recording HTTP metrics", func() {
			before := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("trending", "GET", "200"))
			RecordHTTPRequest("trending", "GET", "200")
			RecordHTTPRequestDuration("trending", "GET", "200", 12)
			IncHTTPInFlight()
			DecHTTPInFlight()

			Convey("Then the request counter should advance", func() {
				So(testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("trending", "GET", "200"))-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.httpInFlight), ShouldEqual, 0)
			})
		})

		Convey("When recording error and runtime metrics", func() {
			So(func() {
				RecordUpstreamStatus("404")
				RecordCardsReturned(30)
				RecordErrorByType("upstream_unavailable", "high")
				RecordErrorByEndpoint("trending", "GET", "upstream_unavailable")
				RecordErrorLatency("http", "server_error", 5)
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled global manager", t, func() {
		prev := globalManager
		globalManager = NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(prometheus.NewRegistry()))
		defer func() { globalManager = prev }()

		Convey("When recording upstream calls", func() {
			RecordUpstreamRequest(OutcomeOK, 10)

			Convey("Then nothing should be counted", func() {
				So(testutil.ToFloat64(globalManager.upstreamRequests.WithLabelValues(OutcomeOK)), ShouldEqual, 0)
			})
		})
	})
}
