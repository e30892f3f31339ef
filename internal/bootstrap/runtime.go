// Package bootstrap wires the dependencies every service binary shares:
// configuration, logging, the database pool, the optional Redis cache and the
// token machinery.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"adminportal/internal/caching"
	"adminportal/internal/config"
	"adminportal/internal/handlers"
	"adminportal/internal/logging"
	"adminportal/internal/middleware"
	"adminportal/internal/server"
	"adminportal/internal/services"
	"adminportal/pkg/database"

	"github.com/labstack/echo/v4"
)

const Version = "1.0.0"

type Runtime struct {
	Service   string
	Config    *config.Config
	Logger    *slog.Logger
	DB        *database.Bounded
	Cache     caching.CacheService
	Passwords services.PasswordService
	Tokens    services.TokenService
}

// New loads configuration from CONFIG_FILE and the environment, connects to
// Postgres and, when REDIS_ADDR is set, to Redis.
func New(ctx context.Context, service string, defaultPort int) (*Runtime, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), defaultPort)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(service, cfg.Env, cfg.LogLevel)

	passwords, err := services.NewPasswordService(cfg.Auth.PasswordHashCost)
	if err != nil {
		return nil, err
	}
	tokens, err := services.NewTokenService(services.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.ExpiresIn,
		Leeway: cfg.JWT.Leeway,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPool(ctx, database.PoolConfig{
		URL:            cfg.DatabaseURL(),
		MinConns:       cfg.Database.PoolMin,
		MaxConns:       cfg.Database.PoolMax,
		AcquireTimeout: cfg.Database.AcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db := database.NewBounded(pool, cfg.Database.AcquireTimeout)

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	r := &Runtime{
		Service:   service,
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Passwords: passwords,
		Tokens:    tokens,
	}
	if cfg.Redis.Addr != "" {
		r.Cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	logger.Info("service configured",
		"env", cfg.Env,
		"port", cfg.Port,
		"cache", r.Cache != nil,
		"enforce_active", cfg.Auth.EnforceActive,
	)
	return r, nil
}

// Server builds the echo instance with readiness checks for the database and
// cache. bodyLimit may be empty for the default.
func (r *Runtime) Server(bodyLimit string) *echo.Echo {
	checks := map[string]handlers.Pinger{"database": r.DB}
	if r.Cache != nil {
		checks["cache"] = r.Cache
	}
	return server.New(server.Options{
		Service:        r.Service,
		Version:        Version,
		Production:     r.Config.Production(),
		AllowedOrigins: r.Config.HTTP.AllowedOrigins,
		BodyLimit:      bodyLimit,
		RateLimit: server.RateLimit{
			Window: r.Config.HTTP.RateLimitWindow,
			Max:    r.Config.HTTP.RateLimitMax,
		},
		Checks: checks,
		Logger: r.Logger,
	})
}

func (r *Runtime) Authenticator() echo.MiddlewareFunc {
	return middleware.SessionAuthenticator(r.Tokens)
}

// RBAC returns the authorization gate. active is consulted only when
// AUTH_ENFORCE_ACTIVE is on.
func (r *Runtime) RBAC(active middleware.ActiveChecker) *middleware.RBACMiddleware {
	if !r.Config.Auth.EnforceActive {
		return middleware.NewRBACMiddleware(nil)
	}
	return middleware.NewRBACMiddleware(active)
}

// Serve blocks until ctx is done, then shuts the server down gracefully.
func (r *Runtime) Serve(ctx context.Context, e *echo.Echo) error {
	r.Logger.Info("http server listening", "addr", r.Config.Address(), "version", Version)
	return server.Run(ctx, e, r.Config.Address(), r.Config.HTTP.ShutdownTimeout)
}

func (r *Runtime) Close() {
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			r.Logger.Warn("cache close failed", "error", err)
		}
	}
	r.DB.Close()
	r.Logger.Info("service stopped")
}
