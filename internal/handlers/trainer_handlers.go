package handlers

import (
	"net/http"

	"adminportal/internal/common"
	"adminportal/internal/middleware"
	"adminportal/internal/models"
	"adminportal/internal/services"

	"github.com/labstack/echo/v4"
)

const profileImageField = "profile_image"

// TrainerHandlers serves the admin trainer registry.
type TrainerHandlers struct {
	trainerService services.TrainerService
}

func NewTrainerHandlers(trainerService services.TrainerService) *TrainerHandlers {
	return &TrainerHandlers{trainerService: trainerService}
}

func (h *TrainerHandlers) Register(e *echo.Echo, authn echo.MiddlewareFunc, rbac *middleware.RBACMiddleware) {
	g := e.Group("/api/trainers", authn, rbac.RequireRole(models.RoleAdmin))
	g.GET("", h.ListTrainers)
	g.POST("", h.CreateTrainer)
	g.GET("/:id", h.GetTrainer)
	g.PUT("/:id", h.UpdateTrainer)
	g.DELETE("/:id", h.DeleteTrainer)
	g.PATCH("/:id/activate", h.ActivateTrainer)
	g.PATCH("/:id/set-password", h.SetTrainerPassword)
	g.POST("/:id/reset-password", h.ResetTrainerPassword)
	g.POST("/:id/profile-image", h.UploadProfileImage)
}

func (h *TrainerHandlers) ListTrainers(c echo.Context) error {
	trainers, err := h.trainerService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return common.SendList(c, trainers, len(trainers))
}

func (h *TrainerHandlers) GetTrainer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	trainer, err := h.trainerService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "", trainer)
}

// CreateTrainer provisions a trainer. The temporary password is only ever
// returned here and by ResetTrainerPassword.
func (h *TrainerHandlers) CreateTrainer(c echo.Context) error {
	var req models.TrainerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	trainer, err := h.trainerService.Provision(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusCreated, "Trainer added successfully", trainer)
}

func (h *TrainerHandlers) UpdateTrainer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.TrainerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	trainer, err := h.trainerService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Trainer updated successfully", trainer)
}

func (h *TrainerHandlers) DeleteTrainer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.trainerService.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return common.SendMessage(c, http.StatusOK, "Trainer deleted successfully")
}

func (h *TrainerHandlers) ActivateTrainer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	trainer, err := h.trainerService.Activate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Trainer activated successfully", trainer)
}

func (h *TrainerHandlers) SetTrainerPassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.SetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	trainer, err := h.trainerService.SetPassword(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Password updated successfully", trainer)
}

func (h *TrainerHandlers) ResetTrainerPassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	trainer, err := h.trainerService.ReissueTempPassword(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Temporary password issued", trainer)
}

// UploadProfileImage accepts a multipart form with a single profile_image file.
func (h *TrainerHandlers) UploadProfileImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	header, err := c.FormFile(profileImageField)
	if err != nil {
		return common.NewValidationError([]common.FieldError{{Field: profileImageField, Message: "Profile image file is required"}})
	}
	if header.Size > services.MaxProfileImageBytes {
		return common.NewValidationError([]common.FieldError{{Field: profileImageField, Message: "Image must be between 1 byte and 5 MB"}})
	}

	file, err := header.Open()
	if err != nil {
		return common.NewStoreError("open uploaded image", err)
	}
	defer file.Close()

	trainer, err := h.trainerService.UploadProfileImage(c.Request().Context(), id, header.Header.Get(echo.HeaderContentType), file, header.Size)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Profile image updated", trainer)
}
