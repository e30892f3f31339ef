package handlers

import (
	"net/http"

	"adminportal/internal/common"
	"adminportal/internal/middleware"
	"adminportal/internal/models"
	"adminportal/internal/services"

	"github.com/labstack/echo/v4"
)

// TrainerAuthHandlers serves the trainer portal authentication API.
type TrainerAuthHandlers struct {
	trainerAuth services.TrainerAuthService
}

func NewTrainerAuthHandlers(trainerAuth services.TrainerAuthService) *TrainerAuthHandlers {
	return &TrainerAuthHandlers{trainerAuth: trainerAuth}
}

// Register mounts /api/trainer-auth. Both token scopes may call the protected
// routes; set-password is how a set_password session is upgraded.
func (h *TrainerAuthHandlers) Register(e *echo.Echo, authn echo.MiddlewareFunc, rbac *middleware.RBACMiddleware) {
	g := e.Group("/api/trainer-auth")
	g.POST("/login", h.Login)
	g.POST("/forgot-password", h.ForgotPassword)

	protected := g.Group("", authn, rbac.RequireRole(models.RoleTrainer))
	protected.POST("/set-password", h.SetPassword)
	protected.GET("/me", h.Me)
}

func (h *TrainerAuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.trainerAuth.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	message := "Login successful"
	if result.IsTempPassword {
		message = "Temporary password accepted. Please set your permanent password."
	}
	return common.SendData(c, http.StatusOK, message, result)
}

func (h *TrainerAuthHandlers) SetPassword(c echo.Context) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req models.SetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	trainer, err := h.trainerAuth.SetPassword(c.Request().Context(), principal.ID, &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Password set successfully. Please login with your new password.", trainer.View())
}

func (h *TrainerAuthHandlers) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.trainerAuth.ForgotPassword(c.Request().Context(), &req); err != nil {
		return err
	}
	return common.SendMessage(c, http.StatusOK, "Password updated successfully. Please login.")
}

func (h *TrainerAuthHandlers) Me(c echo.Context) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	trainer, err := h.trainerAuth.Me(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "", trainer.View())
}
