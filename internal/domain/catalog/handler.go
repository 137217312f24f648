package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.GET("/service", h.ListServices)
}

// ListServices returns the treatment names only; availability with
// remaining slots lives on /available.
func (h *Handler) ListServices(c echo.Context) error {
	names, err := h.svc.Names(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch services")
	}

	out := make([]map[string]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]string{"name": n})
	}
	return c.JSON(http.StatusOK, out)
}
