package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"adminportal/internal/common"

	"github.com/labstack/echo/v4"
)

// AuditMiddleware writes one structured audit record per state-changing or
// failed request. Bodies are never logged, so passwords and temp passwords
// cannot leak into the audit trail.
type AuditMiddleware struct {
	logger *slog.Logger
}

func NewAuditMiddleware(logger *slog.Logger) *AuditMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditMiddleware{logger: logger.With("module", "audit")}
}

func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			if !shouldAudit(method, path, err) {
				return err
			}

			attrs := []any{
				"method", method,
				"path", path,
				"ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
				"duration_ms", time.Since(start).Milliseconds(),
				"headers", sanitizeHeaders(c.Request().Header),
			}
			if principal, ok := common.GetPrincipalFromContext(c.Request().Context()); ok {
				attrs = append(attrs, "principal_id", principal.ID, "role", principal.Role)
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
				m.logger.Warn("request audited", attrs...)
				return err
			}
			m.logger.Info("request audited", attrs...)
			return nil
		}
	}
}

// shouldAudit keeps mutating calls and failures, and drops probe traffic.
func shouldAudit(method, path string, reqErr error) bool {
	for _, prefix := range []string{"/health", "/swagger"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	if reqErr != nil {
		return true
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"cookie":              true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"proxy-authorization": true,
}

func sanitizeHeaders(headers http.Header) map[string]string {
	sanitized := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			sanitized[key] = "[REDACTED]"
			continue
		}
		sanitized[key] = strings.Join(values, ",")
	}
	return sanitized
}
