package identity

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

func (h *Handler) RegisterRoutes(public, authed, admin *echo.Group) {
	public.PUT("/user/:email", h.UpsertUser)
	public.GET("/admin/:email", h.CheckAdmin)
	authed.GET("/user", h.ListUsers)
	admin.PUT("/user/admin/:email", h.ElevateUser)
}

type upsertRequest struct {
	Name string `json:"name"`
}

// UpsertUser stores the caller's profile and returns a bearer token.
// This is the only token-issuing endpoint.
func (h *Handler) UpsertUser(c echo.Context) error {
	var req upsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u := &User{Email: c.Param("email"), Name: req.Name}
	token, err := h.svc.Upsert(c.Request().Context(), u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to upsert user")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"accessToken": token,
	})
}

// CheckAdmin tells the booking UI whether to show the admin dashboard.
// It is intentionally public: the answer is a boolean, not a grant.
func (h *Handler) CheckAdmin(c echo.Context) error {
	isAdmin, err := h.svc.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check role")
	}
	return c.JSON(http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) ElevateUser(c echo.Context) error {
	email := c.Param("email")
	if err := h.svc.Elevate(c.Request().Context(), email); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update role")
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}
