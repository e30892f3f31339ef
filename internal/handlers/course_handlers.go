package handlers

import (
	"net/http"

	"adminportal/internal/common"
	"adminportal/internal/middleware"
	"adminportal/internal/models"
	"adminportal/internal/services"

	"github.com/labstack/echo/v4"
)

type CourseHandlers struct {
	courseService services.CourseService
}

func NewCourseHandlers(courseService services.CourseService) *CourseHandlers {
	return &CourseHandlers{courseService: courseService}
}

func (h *CourseHandlers) Register(e *echo.Echo, authn echo.MiddlewareFunc, rbac *middleware.RBACMiddleware) {
	g := e.Group("/api/courses", authn, rbac.RequireRole(models.RoleAdmin))
	g.GET("", h.ListCourses)
	g.POST("", h.CreateCourse)
	g.GET("/:id", h.GetCourse)
	g.PUT("/:id", h.UpdateCourse)
	g.DELETE("/:id", h.DeleteCourse)
}

func (h *CourseHandlers) ListCourses(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return common.SendList(c, courses, len(courses))
}

func (h *CourseHandlers) GetCourse(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	course, err := h.courseService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "", course)
}

func (h *CourseHandlers) CreateCourse(c echo.Context) error {
	var req models.CourseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusCreated, "Course added successfully", course)
}

func (h *CourseHandlers) UpdateCourse(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.CourseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return common.SendData(c, http.StatusOK, "Course updated successfully", course)
}

// DeleteCourse is a soft delete.
func (h *CourseHandlers) DeleteCourse(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.courseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return common.SendMessage(c, http.StatusOK, "Course deleted successfully")
}
