package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("client"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "client")
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "campus")
				So(manager.subsystem, ShouldEqual, "api")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording requests", func() {
			m.RecordRequest("/edu/activity/detail/:id", "GET", OutcomeOK, 12)
			m.RecordRequest("/edu/activity/detail/:id", "GET", OutcomeOK, 30)
			m.RecordRequest("/edu/activity/enroll", "POST", OutcomeBusiness, 8)

			Convey("Then counters are split by labels", func() {
				So(testutil.ToFloat64(m.requests.WithLabelValues("/edu/activity/detail/:id", "GET", OutcomeOK)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.requests.WithLabelValues("/edu/activity/enroll", "POST", OutcomeBusiness)), ShouldEqual, 1)
			})
		})

		Convey("When recording errors and prompts", func() {
			m.RecordBusinessError(500)
			m.RecordTransportError(404)
			m.RecordTransportError(-1)
			m.RecordAuthPrompt()
			m.RecordAuthSuppressed()
			m.RecordAuthSuppressed()

			Convey("Then each counter moves", func() {
				So(testutil.ToFloat64(m.businessErrors.WithLabelValues("500")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.transportErrors.WithLabelValues("-1")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.authPrompts), ShouldEqual, 1)
				So(testutil.ToFloat64(m.authSuppressed), ShouldEqual, 2)
			})
		})

		Convey("When recording uploads", func() {
			m.RecordUpload(OutcomeOK, 1024)
			m.RecordUpload(OutcomeNetwork, 0)

			Convey("Then bytes only count sent payloads", func() {
				So(testutil.ToFloat64(m.uploadBytes), ShouldEqual, 1024)
				So(testutil.ToFloat64(m.uploads.WithLabelValues(OutcomeNetwork)), ShouldEqual, 1)
			})
		})

		Convey("When dumping the registry as text", func() {
			m.RecordContentCheck("pass")
			m.RecordGeocode(OutcomeOK)
			var buf bytes.Buffer
			err := WriteText(&buf, registry)

			Convey("Then the exposition lists the families", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "campus_api_content_checks_total")
				So(buf.String(), ShouldContainSubstring, "campus_api_geocode_requests_total")
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the process-wide manager", t, func() {
		So(Default(), ShouldNotBeNil)

		Convey("Then the helpers do not panic", func() {
			So(func() {
				RecordRequest("/x", "GET", OutcomeOK, 1)
				RecordBusinessError(400)
				RecordTransportError(502)
				RecordAuthPrompt()
				RecordAuthSuppressed()
				RecordUpload(OutcomeOK, 10)
				RecordContentCheck("review")
				RecordGeocode(OutcomeNetwork)
			}, ShouldNotPanic)
		})

		Convey("And the handler serves the registry", func() {
			RecordRequest("/y", "POST", OutcomeOK, 1)
			rec := httptest.NewRecorder()
			Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "campus_api_requests_total")
		})
	})
}
