package request

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// instrumentedTransport records count and latency of every round trip.
type instrumentedTransport struct {
	next    http.RoundTripper
	metrics *metrics.Manager
}

func newInstrumentedTransport(next http.RoundTripper, m *metrics.Manager) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if it, ok := next.(*instrumentedTransport); ok {
		next = it.next
	}
	return &instrumentedTransport{next: next, metrics: m}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	durationMs := float64(time.Since(start).Milliseconds())

	endpoint := normalizeEndpoint(req.URL.Path)
	switch {
	case err != nil:
		t.metrics.RecordRequest(endpoint, req.Method, metrics.OutcomeNetwork, durationMs)
	case resp.StatusCode != http.StatusOK:
		t.metrics.RecordRequest(endpoint, req.Method, metrics.OutcomeTransport, durationMs)
	default:
		t.metrics.RecordRequest(endpoint, req.Method, metrics.OutcomeOK, durationMs)
	}
	return resp, err
}

// normalizeEndpoint replaces id-like path segments with ":id" so labels stay bounded.
func normalizeEndpoint(path string) string {
	if path == "" {
		return "/"
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if isIDSegment(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// isIDSegment matches numbers, comma-joined number lists and uuid/hex ids.
func isIDSegment(s string) bool {
	if s == "" {
		return false
	}
	digits, hex := true, true
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
		case r == ',':
		case r == '-' || strings.ContainsRune("abcdefABCDEF", r):
			digits = false
		default:
			return false
		}
	}
	if digits {
		return true
	}
	return hex && len(s) >= 16
}
