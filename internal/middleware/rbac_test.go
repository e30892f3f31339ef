package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"adminportal/internal/common"
	"adminportal/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockActiveChecker struct {
	mock.Mock
}

func (m *MockActiveChecker) IsActive(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func withPrincipal(c echo.Context, p common.Principal) echo.Context {
	c.SetRequest(c.Request().WithContext(common.WithPrincipal(c.Request().Context(), p)))
	return c
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireRole(t *testing.T) {
	gate := NewRBACMiddleware(nil)

	tests := []struct {
		name      string
		principal *common.Principal
		roles     []string
		want      error
	}{
		{"admin allowed", &common.Principal{ID: 1, Role: models.RoleAdmin}, []string{models.RoleAdmin}, nil},
		{"trainer on admin route", &common.Principal{ID: 2, Role: models.RoleTrainer}, []string{models.RoleAdmin}, common.ErrForbidden},
		{"admin on trainer route", &common.Principal{ID: 1, Role: models.RoleAdmin}, []string{models.RoleTrainer}, common.ErrForbidden},
		{"any role", &common.Principal{ID: 2, Role: models.RoleTrainer}, nil, nil},
		{"no principal", nil, []string{models.RoleAdmin}, common.ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("")
			if tt.principal != nil {
				c = withPrincipal(c, *tt.principal)
			}

			err := gate.RequireRole(tt.roles...)(ok)(c)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequireRole_EnforcesActiveStatus(t *testing.T) {
	checker := new(MockActiveChecker)
	checker.On("IsActive", mock.Anything, int64(1)).Return(true, nil).Once()
	checker.On("IsActive", mock.Anything, int64(2)).Return(false, nil).Once()
	checker.On("IsActive", mock.Anything, int64(3)).Return(false, common.NewStoreError("find employee", errors.New("db down"))).Once()
	gate := NewRBACMiddleware(checker)

	c, _ := newContext("")
	assert.NoError(t, gate.RequireRole(models.RoleAdmin)(ok)(withPrincipal(c, common.Principal{ID: 1, Role: models.RoleAdmin})))

	c, _ = newContext("")
	err := gate.RequireRole(models.RoleAdmin)(ok)(withPrincipal(c, common.Principal{ID: 2, Role: models.RoleAdmin}))
	assert.ErrorIs(t, err, common.ErrAccountDeactivated)

	c, _ = newContext("")
	err = gate.RequireRole(models.RoleAdmin)(ok)(withPrincipal(c, common.Principal{ID: 3, Role: models.RoleAdmin}))
	var appErr *common.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)

	checker.AssertExpectations(t)
}

func TestRequireRole_SkipsStatusCheckForWrongRole(t *testing.T) {
	checker := new(MockActiveChecker)
	gate := NewRBACMiddleware(checker)

	c, _ := newContext("")
	err := gate.RequireRole(models.RoleAdmin)(ok)(withPrincipal(c, common.Principal{ID: 2, Role: models.RoleTrainer}))

	assert.ErrorIs(t, err, common.ErrForbidden)
	checker.AssertNotCalled(t, "IsActive", mock.Anything, mock.Anything)
}
