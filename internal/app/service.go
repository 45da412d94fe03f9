// Package service wires configuration, storage and the HTTP adapters into
// one campus client.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/contentsec"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/geocode"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/api"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/config"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// ErrNotStarted is returned by calls made before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns every long-lived component of the client.
type Service struct {
	mu sync.RWMutex

	// Configuration
	cfg        *config.Config
	notifier   request.Notifier
	onLogin    request.LoginHandler
	httpClient *http.Client
	metrics    *metrics.Manager
	store      storage.Storage

	// Components
	closer   io.Closer
	tr       *i18n.Translator
	requests *request.Client
	api      *api.Client
	content  *contentsec.Checker
	geocoder *geocode.Client

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration. Defaults from config.New are used otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithNotifier sets where toasts and modals are shown.
func WithNotifier(n request.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLoginHandler sets the callback run when the user accepts the login prompt.
func WithLoginHandler(h request.LoginHandler) Option {
	return func(s *Service) { s.onLogin = h }
}

// WithHTTPClient sets the HTTP client used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// WithMetrics sets the metrics manager shared by every component.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithStorage bypasses storage_path and uses st directly.
func WithStorage(st storage.Storage) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Nothing is opened until Start.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      config.New(),
		notifier: request.NopNotifier(),
		metrics:  metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens storage and builds the clients.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	if s.store == nil {
		if s.cfg.StoragePath == "" {
			s.store = storage.NewMemoryStore()
			s.logger.Debug(ctx, "using in-memory storage")
		} else {
			st, err := storage.OpenSQLite(ctx, s.cfg.StoragePath)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			s.store, s.closer = st, st
			s.logger.Debug(ctx, "using sqlite storage", logger.String("path", s.cfg.StoragePath))
		}
	}

	s.tr = i18n.New(s.cfg.Locale)

	reqOpts := []request.Option{
		request.WithBaseURL(s.cfg.BaseURL),
		request.WithTimeout(s.cfg.Timeout),
		request.WithStorage(s.store),
		request.WithNotifier(s.notifier),
		request.WithTranslator(s.tr),
		request.WithUploadField(s.cfg.UploadField),
		request.WithMetrics(s.metrics),
		request.WithLogger(logger.Named("request")),
		request.WithLoginHandler(s.onLogin),
	}
	if s.httpClient != nil {
		reqOpts = append(reqOpts, request.WithHTTPClient(s.httpClient))
	}
	s.requests = request.New(reqOpts...)
	s.api = api.New(s.requests)
	s.content = contentsec.New(s.requests,
		contentsec.WithNotifier(s.notifier),
		contentsec.WithTranslator(s.tr),
		contentsec.WithMetrics(s.metrics),
	)
	s.geocoder = geocode.New(s.cfg.GeocodeKey,
		geocode.WithEndpoint(s.cfg.GeocodeURL),
		geocode.WithMetrics(s.metrics),
	)

	s.started = true
	s.logger.Info(ctx, "campus client started",
		logger.String("baseURL", s.cfg.BaseURL),
		logger.String("locale", s.tr.Tag().String()),
	)
	return nil
}

// Stop releases storage and drops the clients. Clients handed out earlier
// fail with storage.ErrClosed when they used sqlite storage.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "close storage", logger.Error(err))
		}
		s.closer = nil
		s.store = nil
	}
	s.requests, s.api, s.content, s.geocoder = nil, nil, nil, nil
	s.started = false
	s.logger.Info(context.Background(), "campus client stopped")
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config { return s.cfg }

// API returns the endpoint wrappers, nil before Start.
func (s *Service) API() *api.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.api
}

// Requests returns the shared request client, nil before Start.
func (s *Service) Requests() *request.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// Content returns the content security checker, nil before Start.
func (s *Service) Content() *contentsec.Checker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Geocoder returns the reverse geocoder, nil before Start.
func (s *Service) Geocoder() *geocode.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geocoder
}

// Storage returns the credential store, nil before Start.
func (s *Service) Storage() storage.Storage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Login authenticates, stores the token and user profile, and returns the
// decoded session. wechat selects the WeChat code flow.
func (s *Service) Login(ctx context.Context, body any, wechat bool) (storage.Session, error) {
	s.mu.RLock()
	a, st := s.api, s.store
	s.mu.RUnlock()
	if a == nil {
		return storage.Session{}, ErrNotStarted
	}

	var (
		raw json.RawMessage
		err error
	)
	if wechat {
		raw, err = a.Student.LoginByWechat(ctx, body)
	} else {
		raw, err = a.Student.Login(ctx, body)
	}
	if err != nil {
		return storage.Session{}, err
	}
	res, err := api.ParseLogin(raw)
	if err != nil {
		return storage.Session{}, err
	}
	if err := storage.SaveLogin(ctx, st, res.Token, res.Data); err != nil {
		return storage.Session{}, fmt.Errorf("save login: %w", err)
	}

	sess, err := storage.LoadSession(ctx, st)
	if errors.Is(err, storage.ErrOpaqueToken) {
		err = nil
	}
	return sess, err
}

// Logout forgets the stored login.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.RLock()
	st := s.store
	s.mu.RUnlock()
	if st == nil {
		return ErrNotStarted
	}
	return storage.ClearLogin(ctx, st)
}

// Session returns the stored login.
func (s *Service) Session(ctx context.Context) (storage.Session, error) {
	s.mu.RLock()
	st := s.store
	s.mu.RUnlock()
	if st == nil {
		return storage.Session{}, ErrNotStarted
	}
	return storage.LoadSession(ctx, st)
}

// GetStats returns a snapshot for diagnostics.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started": s.started,
		"baseURL": s.cfg.BaseURL,
		"storage": "memory",
	}
	if s.cfg.StoragePath != "" {
		stats["storage"] = "sqlite"
	}
	if s.started {
		stats["locale"] = s.tr.Tag().String()
		tok, err := storage.Lookup(context.Background(), s.store, storage.KeyToken)
		stats["loggedIn"] = err == nil && tok != ""
	}
	return stats
}
