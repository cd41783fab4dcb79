package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/adgenius/internal/config"
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
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 15_000)
				convey.So(cfg.MaxResults, convey.ShouldEqual, 30)
				convey.So(cfg.DefaultQuery, convey.ShouldEqual, "advertisement")
				convey.So(cfg.EscapeQuery, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ADGENIUS_ADDR", ":8080")
			_ = os.Setenv("ADGENIUS_UPSTREAM_URL", "http://127.0.0.1:9999/search")
			_ = os.Setenv("ADGENIUS_UPSTREAM_TIMEOUT_MS", "2500")
			_ = os.Setenv("ADGENIUS_MAX_RESULTS", "10")
			_ = os.Setenv("ADGENIUS_DEFAULT_QUERY", "coffee")
			_ = os.Setenv("ADGENIUS_ESCAPE_QUERY", "false")
			_ = os.Setenv("ADGENIUS_CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://adgenius.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.UpstreamURL, convey.ShouldEqual, "http://127.0.0.1:9999/search")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.MaxResults, convey.ShouldEqual, 10)
				convey.So(cfg.DefaultQuery, convey.ShouldEqual, "coffee")
				convey.So(cfg.EscapeQuery, convey.ShouldBeFalse)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"http://localhost:5173", "https://adgenius.example"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# relay settings
addr: ":9090"
log_format: json
upstream_timeout_ms: 5000
max_results: 20
cors_allowed_origins:
  - http://localhost:5173
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ADGENIUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.MaxResults, convey.ShouldEqual, 20)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"http://localhost:5173"})
				convey.So(cfg.DefaultQuery, convey.ShouldEqual, "advertisement")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_results: 20\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ADGENIUS_CONFIG", tmpFile)
			_ = os.Setenv("ADGENIUS_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxResults, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ADGENIUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ADGENIUS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("ADGENIUS_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a zero timeout", func() {
			_ = os.Setenv("ADGENIUS_UPSTREAM_TIMEOUT_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "upstream_timeout_ms must be positive")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative result cap", func() {
			_ = os.Setenv("ADGENIUS_MAX_RESULTS", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_results must be positive")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ADGENIUS_MAX_RESULTS", "thirty")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ADGENIUS_CONFIG",
		"ADGENIUS_LOG_LEVEL",
		"ADGENIUS_LOG_FORMAT",
		"ADGENIUS_ADDR",
		"ADGENIUS_UPSTREAM_URL",
		"ADGENIUS_UPSTREAM_TIMEOUT_MS",
		"ADGENIUS_MAX_RESULTS",
		"ADGENIUS_DEFAULT_QUERY",
		"ADGENIUS_ESCAPE_QUERY",
		"ADGENIUS_CORS_ALLOWED_ORIGINS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "adgenius-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
