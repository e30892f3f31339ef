package middleware

import (
	"errors"

	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// claimsContextKey is where echo-jwt stores the verified claims on the echo
// context before SuccessHandler copies them into the request context.
const claimsContextKey = "session_claims"

// TokenVerifier is the part of services.TokenService the authenticator needs.
type TokenVerifier interface {
	Verify(token string) (*models.SessionClaims, error)
}

// SessionAuthenticator extracts the bearer token, verifies it and attaches the
// resulting common.Principal to the request context. Every service builds its
// own instance from its own copy of the signing secret.
func SessionAuthenticator(tokens TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Verify(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(claimsContextKey).(*models.SessionClaims)
			if !ok {
				return
			}
			principal := common.Principal{
				ID:    claims.ID,
				Email: claims.Email,
				Role:  claims.Role,
				Scope: claims.Scope,
			}
			c.SetRequest(c.Request().WithContext(common.WithPrincipal(c.Request().Context(), principal)))
		},
		ErrorHandler: authenticationError,
	})
}

func authenticationError(c echo.Context, err error) error {
	var parseErr *echojwt.TokenParsingError
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.As(err, &parseErr):
		return common.ErrInvalidToken
	default:
		// Missing header or a scheme other than Bearer.
		return common.ErrNoToken
	}
}

// PrincipalFrom returns the authenticated principal or ErrNoToken when the
// route was reached without one.
func PrincipalFrom(c echo.Context) (common.Principal, error) {
	principal, ok := common.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return common.Principal{}, common.ErrNoToken
	}
	return principal, nil
}
