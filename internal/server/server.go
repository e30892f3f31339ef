package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	_ "adminportal/docs"
	"adminportal/internal/common"
	"adminportal/internal/handlers"
	"adminportal/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

const (
	DefaultBodyLimit     = "10K"
	readHeaderTimeout    = 5 * time.Second
	defaultShutdownDelay = 10 * time.Second
)

// Options describes one service's HTTP surface.
type Options struct {
	Service        string
	Version        string
	Production     bool
	AllowedOrigins []string
	BodyLimit      string
	RateLimit      RateLimit
	Checks         map[string]handlers.Pinger
	Logger         *slog.Logger
}

// RateLimit allows Max requests per Window for each client IP on /api
// routes. A zero Max disables limiting.
type RateLimit struct {
	Window time.Duration
	Max    int
}

// New builds an echo instance with the shared middleware stack, health and
// swagger routes. Callers mount their API handlers on the result.
func New(opts Options) *echo.Echo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = DefaultBodyLimit
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(opts.Production)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(requestLogger(logger.With("module", "http")))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.CORSWithConfig(corsConfig(opts.Production, opts.AllowedOrigins)))
	e.Use(echoMiddleware.Gzip())
	e.Use(echoMiddleware.BodyLimit(opts.BodyLimit))
	e.Use(middleware.VersionHeader(opts.Service, opts.Version))
	e.Use(middleware.NewAuditMiddleware(logger).AuditRequest())
	if opts.RateLimit.Max > 0 && opts.RateLimit.Window > 0 {
		e.Use(rateLimiter(opts.RateLimit))
	}

	handlers.NewHealthHandlers(opts.Service, opts.Version, opts.Checks).Register(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.RouteNotFound("/*", routeNotFound)

	return e
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownDelay
	}
	e.Server.ReadHeaderTimeout = readHeaderTimeout

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func routeNotFound(c echo.Context) error {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// corsConfig reflects any origin outside production and only the allow-list
// in production.
func corsConfig(production bool, allowed []string) echoMiddleware.CORSConfig {
	return echoMiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return !production || slices.Contains(allowed, origin), nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}
}

func rateLimiter(limit RateLimit) echo.MiddlewareFunc {
	store := echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit.Max) / limit.Window.Seconds()),
		Burst:     limit.Max,
		ExpiresIn: limit.Window,
	})
	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return common.ErrTooManyRequests
		},
	})
}
