package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/middleware"
	"drivehub/internal/model"
	"drivehub/internal/service"
)

// PaymentHandler handles rental settlement endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayRentalRequest selects the payment channel.
type PayRentalRequest struct {
	Method string `json:"payment_method" validate:"required,oneof=CASH WAVE"`
}

// PayRental godoc
// @Summary Pay for an accepted rental
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body PayRentalRequest true "Payment method"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals/{id}/pay [post]
func (h *PaymentHandler) PayRental(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid rental id")
	}

	var req PayRentalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return domainError(apperrors.ErrForbidden)
	}

	payment, err := h.paymentService.PayRental(c.Request().Context(), caller, id, model.PaymentMethod(req.Method))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// ListPayments godoc
// @Summary List payments, scoped by role
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Payment
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		return domainError(apperrors.ErrForbidden)
	}

	payments, err := h.paymentService.ListPayments(c.Request().Context(), caller)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, payments)
}
