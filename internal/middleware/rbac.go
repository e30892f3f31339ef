package middleware

import (
	"context"
	"log/slog"

	"adminportal/internal/common"

	"github.com/labstack/echo/v4"
)

// ActiveChecker reports whether a principal may still use its session.
// AuthService and TrainerAuthService both satisfy it.
type ActiveChecker interface {
	IsActive(ctx context.Context, id int64) (bool, error)
}

// RBACMiddleware gates routes on the verified principal's role. When an
// ActiveChecker is configured it also re-checks the store on every request,
// so a deactivated principal loses access before its token expires.
type RBACMiddleware struct {
	active ActiveChecker
	logger *slog.Logger
}

// NewRBACMiddleware builds the gate. A nil checker trusts the token until
// expiry.
func NewRBACMiddleware(active ActiveChecker) *RBACMiddleware {
	return &RBACMiddleware{
		active: active,
		logger: slog.Default().With("module", "rbac"),
	}
}

func (m *RBACMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := PrincipalFrom(c)
			if err != nil {
				return err
			}

			if !hasRole(principal.Role, roles) {
				m.logger.Warn("role rejected", "principal_id", principal.ID, "role", principal.Role, "path", c.Path())
				return common.ErrForbidden
			}

			if m.active != nil {
				ok, err := m.active.IsActive(c.Request().Context(), principal.ID)
				if err != nil {
					return err
				}
				if !ok {
					return common.ErrAccountDeactivated
				}
			}

			return next(c)
		}
	}
}

func hasRole(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
