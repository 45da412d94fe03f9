package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:8081")
				convey.So(cfg.Timeout, convey.ShouldEqual, 25*time.Second)
				convey.So(cfg.UploadField, convey.ShouldEqual, "file")
				convey.So(cfg.Locale, convey.ShouldEqual, "zh-CN")
				convey.So(cfg.StoragePath, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CAMPUS_BASE_URL", "https://campus.example.edu/")
			_ = os.Setenv("CAMPUS_TIMEOUT", "3s")
			_ = os.Setenv("CAMPUS_GEOCODE_KEY", "k-123")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://campus.example.edu")
				convey.So(cfg.Timeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.GeocodeKey, convey.ShouldEqual, "k-123")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
base_url: "http://10.0.0.5:8081"
log_level: debug
storage_path: /tmp/campus.db
upload_field: image
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CAMPUS_CONFIG", tmpFile)
			_ = os.Setenv("CAMPUS_LOG_LEVEL", "warn")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env wins over file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://10.0.0.5:8081")
				convey.So(cfg.StoragePath, convey.ShouldEqual, "/tmp/campus.db")
				convey.So(cfg.UploadField, convey.ShouldEqual, "image")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("CAMPUS_CONFIG", "/nonexistent/campus.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the base URL is relative", func() {
			_ = os.Setenv("CAMPUS_BASE_URL", "/api")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("Then an empty base URL is rejected", func() {
			cfg.BaseURL = "  "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Then a zero timeout is rejected", func() {
			cfg.Timeout = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"CAMPUS_CONFIG", "CAMPUS_BASE_URL", "CAMPUS_TIMEOUT", "CAMPUS_LOG_LEVEL",
		"CAMPUS_GEOCODE_KEY", "CAMPUS_STORAGE_PATH", "CAMPUS_UPLOAD_FIELD",
	} {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "campus-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
