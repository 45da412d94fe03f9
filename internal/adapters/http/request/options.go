package request

import (
	"net/http"
	"strings"
	"time"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the prefix for relative endpoint paths.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its transport is still instrumented.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithStorage sets where the token and profile live.
func WithStorage(s storage.Storage) Option {
	return func(c *Client) {
		if s != nil {
			c.store = s
		}
	}
}

// WithNotifier sets the toast/modal presenter.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTranslator sets the language of user-facing messages.
func WithTranslator(t *i18n.Translator) Option {
	return func(c *Client) {
		if t != nil {
			c.tr = t
		}
	}
}

// WithLoginHandler sets what happens after the user confirms the login prompt.
func WithLoginHandler(h LoginHandler) Option {
	return func(c *Client) { c.onLogin = h }
}

// WithDefaultHeader adds a header sent on every call.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" {
			c.headers[key] = value
		}
	}
}

// WithUploadField changes the default multipart field name.
func WithUploadField(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.uploadField = name
		}
	}
}

// WithMetrics sets the metrics manager (the process-wide one by default).
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// CallOption tweaks a single call.
type CallOption func(*callConfig)

type callConfig struct {
	headers   map[string]string
	silent    bool
	raw       bool
	fieldName string
}

// WithHeader adds or overrides a header for this call.
func WithHeader(key, value string) CallOption {
	return func(cc *callConfig) {
		if cc.headers == nil {
			cc.headers = make(map[string]string)
		}
		cc.headers[key] = value
	}
}

// Silent suppresses error toasts. The 401 login prompt still shows.
func Silent() CallOption {
	return func(cc *callConfig) { cc.silent = true }
}

// Raw resolves with the whole envelope instead of its data.
func Raw() CallOption {
	return func(cc *callConfig) { cc.raw = true }
}

// WithFieldName sets the multipart field carrying the file.
func WithFieldName(name string) CallOption {
	return func(cc *callConfig) {
		if name != "" {
			cc.fieldName = name
		}
	}
}

func buildCallConfig(opts []CallOption) callConfig {
	var cc callConfig
	for _, opt := range opts {
		opt(&cc)
	}
	return cc
}
