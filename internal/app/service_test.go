package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/storage"
	service "github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/app"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/config"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func signedToken(sub string, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return s
}

func backend(token string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/edu/student/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "secret" {
			_, _ = io.WriteString(w, `{"code":500,"msg":"wrong password"}`)
			return
		}
		resp, _ := json.Marshal(map[string]any{
			"code":  200,
			"msg":   "ok",
			"token": token,
			"data":  map[string]any{"studentId": "2024001", "name": "Li"},
		})
		_, _ = w.Write(resp)
	})
	mux.HandleFunc("/edu/activity/detail/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer "+token {
			_, _ = io.WriteString(w, `{"code":403,"msg":"no token"}`)
			return
		}
		_, _ = io.WriteString(w, `{"code":200,"msg":"ok","data":{"id":7}}`)
	})
	return httptest.NewServer(mux)
}

func newConfig(base string) *config.Config {
	cfg := config.New()
	cfg.BaseURL = base
	return cfg
}

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Nop()),
		service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	}
	return service.New(append(base, opts...)...)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newService()

		Convey("Then nothing is built before Start", func() {
			So(svc.API(), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
			_, err := svc.Login(context.Background(), nil, false)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When started", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then every component is available", func() {
				So(svc.API(), ShouldNotBeNil)
				So(svc.Requests(), ShouldNotBeNil)
				So(svc.Content(), ShouldNotBeNil)
				So(svc.Geocoder(), ShouldNotBeNil)
				So(svc.Storage(), ShouldNotBeNil)
				So(svc.Requests().BaseURL(), ShouldEqual, "http://localhost:8081")
			})

			Convey("And the stats reflect the defaults", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["storage"], ShouldEqual, "memory")
				So(stats["locale"], ShouldEqual, "zh-Hans")
				So(stats["loggedIn"], ShouldEqual, false)
			})

			Convey("And starting twice is harmless", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When the config is invalid", func() {
			cfg := config.New()
			cfg.BaseURL = "not a url"
			err := newService(service.WithConfig(cfg)).Start(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestService_Login(t *testing.T) {
	Convey("Given a service backed by sqlite", t, func() {
		token := signedToken("2024001", time.Now().Add(time.Hour))
		srv := backend(token)
		defer srv.Close()

		cfg := newConfig(srv.URL)
		cfg.StoragePath = filepath.Join(t.TempDir(), "campus.db")
		svc := newService(service.WithConfig(cfg))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the credentials are right", func() {
			sess, err := svc.Login(ctx, map[string]string{"username": "2024001", "password": "secret"}, false)

			Convey("Then the session is stored and decoded", func() {
				So(err, ShouldBeNil)
				So(sess.Token, ShouldEqual, token)
				So(sess.Subject, ShouldEqual, "2024001")
				So(sess.Expired(time.Now()), ShouldBeFalse)
				So(string(sess.UserInfo), ShouldContainSubstring, `"studentId":"2024001"`)
				So(svc.GetStats()["loggedIn"], ShouldEqual, true)
			})

			Convey("Then later calls carry the token", func() {
				data, err := svc.API().Activity.Detail(ctx, "7", nil)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"id":7}`)
			})

			Convey("And logout forgets it", func() {
				So(svc.Logout(ctx), ShouldBeNil)
				_, err := svc.Session(ctx)
				So(errors.Is(err, storage.ErrNoSession), ShouldBeTrue)
			})
		})

		Convey("When the password is wrong", func() {
			_, err := svc.Login(ctx, map[string]string{"username": "2024001", "password": "nope"}, false)

			Convey("Then nothing is stored", func() {
				So(err, ShouldNotBeNil)
				_, err := svc.Session(ctx)
				So(errors.Is(err, storage.ErrNoSession), ShouldBeTrue)
			})
		})
	})
}

func TestService_StopReleasesStorage(t *testing.T) {
	Convey("Given a started sqlite service", t, func() {
		cfg := config.New()
		path := filepath.Join(t.TempDir(), "campus.db")
		cfg.StoragePath = path
		svc := newService(service.WithConfig(cfg))
		So(svc.Start(context.Background()), ShouldBeNil)
		So(svc.Storage().Set(context.Background(), storage.KeyToken, "tok"), ShouldBeNil)

		Convey("When stopped and reopened", func() {
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the stored token survives", func() {
				v, err := storage.Lookup(context.Background(), svc.Storage(), storage.KeyToken)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "tok")
			})
		})
	})
}

func TestService_CallsAfterStop(t *testing.T) {
	Convey("Given a sqlite service that was stopped", t, func() {
		ctx := context.Background()
		srv := backend(signedToken("2024001", time.Now().Add(time.Hour)))
		defer srv.Close()

		cfg := newConfig(srv.URL)
		cfg.StoragePath = filepath.Join(t.TempDir(), "campus.db")
		svc := newService(service.WithConfig(cfg))
		So(svc.Start(ctx), ShouldBeNil)
		stale := svc.API()
		svc.Stop()

		Convey("Then the service reports it is not started", func() {
			So(svc.API(), ShouldBeNil)
			So(svc.Requests(), ShouldBeNil)
			So(svc.Content(), ShouldBeNil)
			So(svc.Geocoder(), ShouldBeNil)

			_, err := svc.Login(ctx, map[string]string{"username": "2024001", "password": "secret"}, false)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Session(ctx)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.Logout(ctx), service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("Then a client taken before Stop fails instead of panicking", func() {
			var err error
			So(func() { _, err = stale.Activity.List(ctx, nil) }, ShouldNotPanic)
			So(errors.Is(err, storage.ErrClosed), ShouldBeTrue)
		})
	})
}
