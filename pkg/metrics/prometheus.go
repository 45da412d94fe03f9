// Package metrics provides Prometheus metrics for outbound campus API calls.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeBusiness  = "business_error"
	OutcomeTransport = "transport_error"
	OutcomeNetwork   = "network_error"
	OutcomeDecode    = "decode_error"
	OutcomeInvalid   = "invalid"
)

// Manager owns every collector the client exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	businessErrors  *prometheus.CounterVec
	transportErrors *prometheus.CounterVec
	authPrompts     prometheus.Counter
	authSuppressed  prometheus.Counter
	uploads         *prometheus.CounterVec
	uploadBytes     prometheus.Counter
	contentChecks   *prometheus.CounterVec
	geocodeCalls    *prometheus.CounterVec
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record* helpers

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "campus",
		subsystem:        "api",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "requests_total",
		Help:        "Outbound API calls by endpoint, method and outcome",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "outcome"})

	m.requestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "request_duration_milliseconds",
		Help:        "Round trip time of outbound API calls in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method"})

	m.businessErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "business_errors_total",
		Help:        "Envelopes answered with a non-200 code",
		ConstLabels: m.constLabels,
	}, []string{"code"})

	m.transportErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "transport_errors_total",
		Help:        "Responses with a non-200 HTTP status, -1 for network failures",
		ConstLabels: m.constLabels,
	}, []string{"status"})

	m.authPrompts = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "auth_prompts_total",
		Help:        "Login prompts shown after a 401",
		ConstLabels: m.constLabels,
	})

	m.authSuppressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "auth_prompts_suppressed_total",
		Help:        "401 responses that arrived while a login prompt was already open",
		ConstLabels: m.constLabels,
	})

	m.uploads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "uploads_total",
		Help:        "Multipart uploads by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.uploadBytes = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "upload_bytes_total",
		Help:        "File bytes sent through multipart uploads",
		ConstLabels: m.constLabels,
	})

	m.contentChecks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "content_checks_total",
		Help:        "Content security checks by suggestion",
		ConstLabels: m.constLabels,
	}, []string{"suggest"})

	m.geocodeCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "geocode_requests_total",
		Help:        "Reverse geocoding calls by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})
}

// RecordRequest counts a finished call and observes its duration.
func (m *Manager) RecordRequest(endpoint, method, outcome string, durationMs float64) {
	m.requests.WithLabelValues(endpoint, method, outcome).Inc()
	m.requestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordBusinessError counts an envelope failure code.
func (m *Manager) RecordBusinessError(code int) {
	m.businessErrors.WithLabelValues(strconv.Itoa(code)).Inc()
}

// RecordTransportError counts an HTTP failure status.
func (m *Manager) RecordTransportError(status int) {
	m.transportErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordAuthPrompt counts a shown login prompt.
func (m *Manager) RecordAuthPrompt() { m.authPrompts.Inc() }

// RecordAuthSuppressed counts a 401 swallowed by the open prompt.
func (m *Manager) RecordAuthSuppressed() { m.authSuppressed.Inc() }

// RecordUpload counts an upload and the bytes it carried.
func (m *Manager) RecordUpload(outcome string, bytes int64) {
	m.uploads.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		m.uploadBytes.Add(float64(bytes))
	}
}

// RecordContentCheck counts a content security verdict.
func (m *Manager) RecordContentCheck(suggest string) {
	m.contentChecks.WithLabelValues(suggest).Inc()
}

// RecordGeocode counts a reverse geocoding call.
func (m *Manager) RecordGeocode(outcome string) {
	m.geocodeCalls.WithLabelValues(outcome).Inc()
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// RecordRequest records on the process-wide manager.
func RecordRequest(endpoint, method, outcome string, durationMs float64) {
	globalManager.RecordRequest(endpoint, method, outcome, durationMs)
}

// RecordBusinessError records on the process-wide manager.
func RecordBusinessError(code int) { globalManager.RecordBusinessError(code) }

// RecordTransportError records on the process-wide manager.
func RecordTransportError(status int) { globalManager.RecordTransportError(status) }

// RecordAuthPrompt records on the process-wide manager.
func RecordAuthPrompt() { globalManager.RecordAuthPrompt() }

// RecordAuthSuppressed records on the process-wide manager.
func RecordAuthSuppressed() { globalManager.RecordAuthSuppressed() }

// RecordUpload records on the process-wide manager.
func RecordUpload(outcome string, bytes int64) { globalManager.RecordUpload(outcome, bytes) }

// RecordContentCheck records on the process-wide manager.
func RecordContentCheck(suggest string) { globalManager.RecordContentCheck(suggest) }

// RecordGeocode records on the process-wide manager.
func RecordGeocode(outcome string) { globalManager.RecordGeocode(outcome) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler exposes the custom registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// WriteText dumps a registry in the text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGather, err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
