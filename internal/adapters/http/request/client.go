// Package request is the shared HTTP helper behind every campus API call.
//
// It resolves endpoint URLs against the base URL, attaches the stored bearer
// token, unwraps the {code, msg, data} envelope and reports failures through
// a Notifier.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// Defaults mirrored by internal/config.
const (
	DefaultBaseURL = "http://localhost:8081"
	DefaultTimeout = 25 * time.Second
	DefaultField   = "file"
)

// RequestIDHeader carries a per-call id for backend log correlation.
const RequestIDHeader = "X-Request-Id"

// Client issues envelope-aware calls. Safe for concurrent use.
type Client struct {
	baseURL     string
	timeout     time.Duration
	headers     map[string]string
	uploadField string

	httpClient *http.Client
	store      storage.Storage
	notifier   Notifier
	log        logger.Logger
	tr         *i18n.Translator
	metrics    *metrics.Manager
	onLogin    LoginHandler

	// authPrompt is set while the login modal is open.
	authPrompt atomic.Bool
}

// New creates a client. Without options it targets DefaultBaseURL, keeps
// state in memory and discards notifications.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		headers:     map[string]string{"Content-Type": "application/json"},
		uploadField: DefaultField,
		store:       storage.NewMemoryStore(),
		notifier:    NopNotifier(),
		tr:          i18n.English(),
		metrics:     metrics.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("request")
	}

	hc := http.Client{Timeout: c.timeout}
	if c.httpClient != nil {
		hc = *c.httpClient
		if hc.Timeout == 0 {
			hc.Timeout = c.timeout
		}
	}
	hc.Transport = newInstrumentedTransport(hc.Transport, c.metrics)
	c.httpClient = &hc
	return c
}

// BaseURL returns the prefix used for relative paths.
func (c *Client) BaseURL() string { return c.baseURL }

// Storage returns the store holding the token.
func (c *Client) Storage() storage.Storage { return c.store }

// Notifier returns the presenter used for toasts and modals.
func (c *Client) Notifier() Notifier { return c.notifier }

// Translator returns the message translator.
func (c *Client) Translator() *i18n.Translator { return c.tr }

// Get sends params in the query string.
func (c *Client) Get(ctx context.Context, url string, params any, opts ...CallOption) (json.RawMessage, error) {
	return c.query(ctx, http.MethodGet, url, params, opts)
}

// Delete sends params in the query string.
func (c *Client) Delete(ctx context.Context, url string, params any, opts ...CallOption) (json.RawMessage, error) {
	return c.query(ctx, http.MethodDelete, url, params, opts)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...CallOption) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, url, body, opts)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, url string, body any, opts ...CallOption) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, url, body, opts)
}

func (c *Client) query(ctx context.Context, method, url string, params any, opts []CallOption) (json.RawMessage, error) {
	cc := buildCallConfig(opts)
	target, err := withQuery(resolveURL(c.baseURL, url), params)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Code: 0, Message: err.Error(), Err: err}
	}
	return c.do(ctx, method, target, nil, cc)
}

func (c *Client) send(ctx context.Context, method, url string, body any, opts []CallOption) (json.RawMessage, error) {
	cc := buildCallConfig(opts)
	payload, err := jsonBody(body)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Code: 0, Message: err.Error(), Err: err}
	}
	return c.do(ctx, method, resolveURL(c.baseURL, url), payload, cc)
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte, cc callConfig) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
	}
	if err := c.applyHeaders(ctx, req, cc, true); err != nil {
		return nil, err
	}

	c.log.Debug(ctx, "[REQUEST] "+method+" "+target, logger.Int("body_bytes", len(payload)))

	status, respBody, err := c.roundTrip(req)
	if err != nil {
		return nil, c.networkError(ctx, err, cc, c.tr.Sprintf(i18n.NetworkFailed))
	}
	if status != http.StatusOK {
		return nil, c.transportError(ctx, status, cc)
	}

	env, err := decodeEnvelope(respBody)
	if err != nil {
		c.log.Warn(ctx, "undecodable response", logger.String("url", target), logger.Error(err))
		return nil, &Error{Kind: KindInvalid, Code: status, Message: c.tr.Sprintf(i18n.RequestFailed), Err: err}
	}
	if code := env.code(); code != successCode {
		return nil, c.businessError(ctx, code, env.text("msg"), respBody, cc, i18n.RequestFailed)
	}
	if cc.raw {
		return respBody, nil
	}
	return env.payload("code", "msg")
}

// Fetch performs an authenticated call without envelope handling.
func (c *Client) Fetch(ctx context.Context, method, url string, body any, opts ...CallOption) (int, []byte, error) {
	cc := buildCallConfig(opts)
	var payload []byte
	if body != nil {
		var err error
		if payload, err = jsonBody(body); err != nil {
			return 0, nil, &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
		}
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, resolveURL(c.baseURL, url), rd)
	if err != nil {
		return 0, nil, &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
	}
	if err := c.applyHeaders(ctx, req, cc, true); err != nil {
		return 0, nil, err
	}
	status, respBody, err := c.roundTrip(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Code: NetworkCode, Message: c.tr.Sprintf(i18n.NetworkFailed), Err: err}
	}
	return status, respBody, nil
}

// applyHeaders sets defaults, per-call headers, the bearer token and a request id.
func (c *Client) applyHeaders(ctx context.Context, req *http.Request, cc callConfig, defaults bool) error {
	if defaults {
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}
	}
	for k, v := range cc.headers {
		req.Header.Set(k, v)
	}
	token, err := storage.Lookup(ctx, c.store, storage.KeyToken)
	if err != nil {
		return &Error{Kind: KindInvalid, Message: "read token", Err: err}
	}
	if token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return nil
}

func (c *Client) roundTrip(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, b, nil
}

// businessError handles a non-200 envelope code. fallback names the message
// used when the backend sent none.
func (c *Client) businessError(ctx context.Context, code int, msg string, body []byte, cc callConfig, fallback string) error {
	if msg == "" {
		msg = c.tr.Sprintf(fallback)
	}
	c.metrics.RecordBusinessError(code)
	c.log.Warn(ctx, "business error", logger.Int("code", code), logger.String("msg", msg))

	switch code {
	case http.StatusUnauthorized:
		c.handleUnauthorized(ctx)
	case http.StatusForbidden:
		if !cc.silent {
			c.notifier.Toast(ctx, Toast{Title: c.tr.Sprintf(i18n.NoPermission)})
		}
	default:
		if !cc.silent {
			c.notifier.Toast(ctx, Toast{Title: msg, Duration: ToastDuration})
		}
	}
	return &Error{Kind: KindBusiness, Code: code, Message: msg, Body: body}
}

func (c *Client) transportError(ctx context.Context, status int, cc callConfig) error {
	msg := c.statusMessage(status)
	c.metrics.RecordTransportError(status)
	c.log.Warn(ctx, "http error", logger.Int("status", status), logger.String("msg", msg))

	if status == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
	}
	if !cc.silent {
		c.notifier.Toast(ctx, Toast{Title: msg})
	}
	return &Error{Kind: KindTransport, Code: status, Message: msg}
}

func (c *Client) networkError(ctx context.Context, err error, cc callConfig, msg string) error {
	c.metrics.RecordTransportError(NetworkCode)
	c.log.Warn(ctx, "request failed", logger.Error(err))
	if errors.Is(err, context.Canceled) {
		// caller gave up; nothing to show
		return &Error{Kind: KindNetwork, Code: NetworkCode, Message: msg, Err: err}
	}
	if !cc.silent {
		c.notifier.Toast(ctx, Toast{Title: msg})
	}
	return &Error{Kind: KindNetwork, Code: NetworkCode, Message: msg, Err: err}
}

func (c *Client) statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return c.tr.Sprintf(i18n.BadRequest)
	case http.StatusUnauthorized:
		return c.tr.Sprintf(i18n.Unauthorized)
	case http.StatusForbidden:
		return c.tr.Sprintf(i18n.Forbidden)
	case http.StatusNotFound:
		return c.tr.Sprintf(i18n.NotFound)
	case http.StatusInternalServerError:
		return c.tr.Sprintf(i18n.ServerError)
	case http.StatusBadGateway:
		return c.tr.Sprintf(i18n.BadGateway)
	case http.StatusServiceUnavailable:
		return c.tr.Sprintf(i18n.ServiceUnavailable)
	case http.StatusGatewayTimeout:
		return c.tr.Sprintf(i18n.GatewayTimeout)
	default:
		return c.tr.Sprintf(i18n.NetworkErrorStatus, status)
	}
}

// handleUnauthorized clears the login and asks the user to log in again.
// Only one prompt is open at a time; later 401s return immediately.
// The caller that opens the prompt blocks until it is answered.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if !c.authPrompt.CompareAndSwap(false, true) {
		c.metrics.RecordAuthSuppressed()
		return
	}
	c.metrics.RecordAuthPrompt()

	if err := storage.ClearLogin(ctx, c.store); err != nil {
		c.log.Error(ctx, "clear login", logger.Error(err))
	}

	confirmed, err := c.notifier.Modal(ctx, Modal{
		Title:       c.tr.Sprintf(i18n.LoginTitle),
		Content:     c.tr.Sprintf(i18n.LoginContent),
		ConfirmText: c.tr.Sprintf(i18n.LoginConfirm),
		CancelText:  c.tr.Sprintf(i18n.LoginCancel),
	})
	c.authPrompt.Store(false)
	if err != nil {
		c.log.Warn(ctx, "login prompt failed", logger.Error(err))
		return
	}
	if confirmed && c.onLogin != nil {
		c.onLogin(ctx)
	}
}
