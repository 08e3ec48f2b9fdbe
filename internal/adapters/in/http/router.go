package http

import (
	"context"
	"net/http"
	"time"

	"marketplace/api"
	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency the API needs is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries what NewRouter needs besides the Server. A nil Logger
// falls back to zap.NewNop.
type RouterConfig struct {
	JWTSecret      []byte
	RequestTimeout time.Duration
	Health         HealthCheck
	Logger         *zap.Logger
}

// NewRouter builds the echo instance serving the API, /health, /metrics and
// the Swagger UI.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validateRequests, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err = api.RegisterSwagger(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}))
	}
	e.Use(Authenticate(cfg.JWTSecret))
	e.Use(validateRequests)

	e.GET("/health", func(ctx echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(ctx.Request().Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}
