package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminportal/internal/common"
	"adminportal/internal/models"
	"adminportal/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTokens(t *testing.T) services.TokenService {
	t.Helper()
	tokens, err := services.NewTokenService(services.TokenConfig{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)
	return tokens
}

func newContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func captured(principal *common.Principal) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := PrincipalFrom(c)
		if err != nil {
			return err
		}
		*principal = p
		return c.NoContent(http.StatusOK)
	}
}

func TestSessionAuthenticator_AttachesPrincipal(t *testing.T) {
	tokens := newTokens(t)
	issued, err := tokens.Issue(models.SessionClaims{ID: 7, Email: "a@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	var principal common.Principal
	c, rec := newContext("Bearer " + issued.Token)
	require.NoError(t, SessionAuthenticator(tokens)(captured(&principal))(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, common.Principal{ID: 7, Email: "a@x.com", Role: models.RoleAdmin}, principal)
}

func TestSessionAuthenticator_CarriesTrainerScope(t *testing.T) {
	tokens := newTokens(t)
	issued, err := tokens.Issue(models.SessionClaims{ID: 3, Email: "t@x.com", Role: models.RoleTrainer, Scope: models.ScopeSetPassword})
	require.NoError(t, err)

	var principal common.Principal
	c, _ := newContext("Bearer " + issued.Token)
	require.NoError(t, SessionAuthenticator(tokens)(captured(&principal))(c))
	assert.Equal(t, models.ScopeSetPassword, principal.Scope)
}

func TestSessionAuthenticator_Failures(t *testing.T) {
	tokens := newTokens(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.SessionTokenClaims{
		PrincipalID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.SessionTokenClaims{
		PrincipalID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		want          *common.AppError
	}{
		{"missing header", "", common.ErrNoToken},
		{"wrong scheme", "Basic dXNlcjpwYXNz", common.ErrNoToken},
		{"garbage", "Bearer not-a-jwt", common.ErrInvalidToken},
		{"wrong secret", "Bearer " + foreign, common.ErrInvalidToken},
		{"expired", "Bearer " + expired, common.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(c echo.Context) error {
				called = true
				return nil
			}

			c, _ := newContext(tt.authorization)
			err := SessionAuthenticator(tokens)(next)(c)

			assert.ErrorIs(t, err, tt.want)
			assert.False(t, called)
		})
	}
}

func TestPrincipalFrom_Missing(t *testing.T) {
	c, _ := newContext("")
	_, err := PrincipalFrom(c)
	assert.ErrorIs(t, err, common.ErrNoToken)
}
