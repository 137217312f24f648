package doctor

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the doctor CRUD on the admin-gated group.
func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/doctor", h.List)
	admin.POST("/doctor", h.Create)
	admin.DELETE("/doctor/:email", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	doctors, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch doctors")
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Create(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.DeleteByEmail(c.Request().Context(), c.Param("email")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete doctor")
	}
	return c.NoContent(http.StatusNoContent)
}
