package booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docport/docport/internal/domain/payment"
	"github.com/docport/docport/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, authed *echo.Group) {
	public.GET("/available", h.Availability)
	public.POST("/booking", h.Admit)
	authed.GET("/booking", h.ListByPatient)
	authed.GET("/booking/:id", h.GetByID)
	authed.PATCH("/booking/:id", h.Settle)
}

func (h *Handler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = DefaultDate()
	}

	treatments, err := h.svc.Availability(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute availability")
	}
	return c.JSON(http.StatusOK, treatments)
}

func (h *Handler) Admit(c echo.Context) error {
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.Admit(c.Request().Context(), &b)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidBooking), errors.Is(err, ErrUnknownTreatment):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create booking")
		}
	}

	if !result.Accepted {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"acknowledged": false,
			"message":      fmt.Sprintf("You already have a booking on %s", b.AppointmentDate),
			"booking":      result.Booking,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"acknowledged": true,
		"booking":      result.Booking,
	})
}

// ListByPatient returns the caller's bookings. The patient query
// parameter must match the token subject; listing someone else's
// bookings is forbidden.
func (h *Handler) ListByPatient(c echo.Context) error {
	subject := auth.EmailFromContext(c.Request().Context())
	patient := c.QueryParam("patient")
	if patient == "" {
		patient = subject
	}
	if patient != subject {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	bookings, err := h.svc.ListByPatient(c.Request().Context(), patient)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bookings")
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch booking")
	}
	return c.JSON(http.StatusOK, b)
}

type settleRequest struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

func (h *Handler) Settle(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req settleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pay := &payment.Payment{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Patient:       auth.EmailFromContext(c.Request().Context()),
	}

	updated, err := h.svc.Settle(c.Request().Context(), id, pay)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		case errors.Is(err, ErrInvalidBooking):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrSettlementIncomplete):
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to settle booking")
		}
	}
	return c.JSON(http.StatusOK, updated)
}
