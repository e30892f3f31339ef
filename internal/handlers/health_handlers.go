package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

// Pinger is any dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	service string
	version string
	started time.Time
	checks  map[string]Pinger
	now     func() time.Time
}

// NewHealthHandlers creates health handlers for one service. checks maps a
// dependency name ("database", "cache") to its pinger; nil entries are
// skipped.
func NewHealthHandlers(service, version string, checks map[string]Pinger) *HealthHandlers {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandlers{
		service: service,
		version: version,
		started: time.Now(),
		checks:  active,
		now:     time.Now,
	}
}

func (h *HealthHandlers) Register(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)
	e.GET("/health/live", h.LivenessCheck)
	e.GET("/health/ready", h.ReadinessCheck)
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime,omitempty"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "UP",
		Service:   h.service,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Uptime:    h.now().Sub(h.started).Round(time.Second).String(),
		Version:   h.version,
	})
}

func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ALIVE",
		Service:   h.service,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	status := HealthStatus{
		Status:    "READY",
		Service:   h.service,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string, len(h.checks)),
	}
	code := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status.Checks[name] = "DOWN"
			status.Status = "NOT_READY"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "UP"
	}

	return c.JSON(code, status)
}
