package payment

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

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/create-payment-intent", h.CreateIntent)
}

type intentRequest struct {
	Price float64 `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *Handler) CreateIntent(c echo.Context) error {
	var req intentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	secret, err := h.svc.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "payment processor not configured")
		}
		if req.Price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create payment intent")
	}

	return c.JSON(http.StatusOK, intentResponse{ClientSecret: secret})
}
