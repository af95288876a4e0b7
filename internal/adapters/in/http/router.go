package http

import (
	"context"
	"net/http"
	"time"

	"mfgorders/internal/adapters/in/http/openapi"
	"mfgorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig configures NewRouter. Zero values disable the optional parts.
type RouterConfig struct {
	Logger *zap.Logger
	// Gatherer backs /metrics.
	Gatherer prometheus.Gatherer
	// Ping backs /health.
	Ping func(ctx context.Context) error
	// ValidateRequests checks /api/v1 requests against the OpenAPI contract.
	ValidateRequests bool
	// MediaRoot is served under MediaPath when both are set.
	MediaRoot string
	MediaPath string
}

// NewRouter builds the echo instance with the service routes mounted.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.OFF)
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request().Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(cfg.Gatherer)))
	}
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openapi.YAML())
	})
	if err := openapi.RegisterDocs(ctx); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.MediaRoot != "" && cfg.MediaPath != "" {
		e.Static(cfg.MediaPath, cfg.MediaRoot)
	}

	middlewares := []echo.MiddlewareFunc{ActorFromHeaders()}
	if cfg.ValidateRequests {
		doc, err := openapi.Load(ctx)
		if err != nil {
			return nil, err
		}
		validate, err := openapi.RequestValidator(doc, func(c echo.Context, status int, message string) error {
			return c.JSON(status, Error{Code: status, Message: message})
		})
		if err != nil {
			return nil, err
		}
		middlewares = append(middlewares, validate)
	}

	server.Register(e.Group("/api/v1", middlewares...))
	return e, nil
}
