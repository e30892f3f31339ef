package handlers

import (
	"net/http"

	"adminportal/internal/common"
	"adminportal/internal/middleware"
	"adminportal/internal/models"
	"adminportal/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers serves the admin authentication API.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register mounts the /api/auth routes. authn verifies the bearer token; rbac
// gates admin-only routes.
func (h *AuthHandlers) Register(e *echo.Echo, authn echo.MiddlewareFunc, rbac *middleware.RBACMiddleware) {
	auth := e.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/forgot-password", h.ForgotPassword)

	protected := auth.Group("", authn, rbac.RequireRole(models.RoleAdmin))
	protected.GET("/me", h.Me)
	protected.PATCH("/employees/:id/status", h.SetEmployeeStatus)
}

func (h *AuthHandlers) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	employee, err := h.authService.Signup(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusCreated, "Account created successfully", employee)
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Login successful", result)
}

// ForgotPassword overwrites the password of the account matching the email.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), &req); err != nil {
		return err
	}
	return common.SendMessage(c, http.StatusOK, "Password updated successfully")
}

func (h *AuthHandlers) Me(c echo.Context) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	employee, err := h.authService.Me(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "", employee)
}

func (h *AuthHandlers) SetEmployeeStatus(c echo.Context) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.EmployeeStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	employee, err := h.authService.SetActive(c.Request().Context(), principal.ID, id, &req)
	if err != nil {
		return err
	}

	message := "Employee deactivated"
	if employee.IsActive {
		message = "Employee activated"
	}
	return common.SendData(c, http.StatusOK, message, employee)
}
