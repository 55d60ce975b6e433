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

// RentalHandler handles booking endpoints.
type RentalHandler struct {
	rentalService service.RentalService
}

// NewRentalHandler creates a new rental handler.
func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRentalRequest books a car for an inclusive date range. Dates are epoch
// milliseconds.
type CreateRentalRequest struct {
	CarID     string `json:"car_id" validate:"required,uuid"`
	StartDate int64  `json:"start_date" validate:"required,gt=0"`
	EndDate   int64  `json:"end_date" validate:"required,gt=0"`
}

// CreateRental godoc
// @Summary Book a car
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRentalRequest true "Booking data"
// @Success 201 {object} model.Rental
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c echo.Context) error {
	var req CreateRentalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return badRequest("invalid car id")
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return domainError(apperrors.ErrForbidden)
	}

	rental, err := h.rentalService.CreateRental(c.Request().Context(), caller, carID, req.StartDate, req.EndDate)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, rental)
}

// ListRentals godoc
// @Summary List rentals, scoped by role
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Rental
// @Router /rentals [get]
func (h *RentalHandler) ListRentals(c echo.Context) error {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		return domainError(apperrors.ErrForbidden)
	}

	rentals, err := h.rentalService.ListRentals(c.Request().Context(), caller)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, rentals)
}

// GetRental godoc
// @Summary Fetch one rental
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} model.Rental
// @Failure 404 {object} errors.ErrorResponse
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid rental id")
	}

	rental, err := h.rentalService.GetRental(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, rental)
}

// GetRentalsForUser godoc
// @Summary Fetch rentals owned by a user
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Rental
// @Router /rentals/user/{userId} [get]
func (h *RentalHandler) GetRentalsForUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return badRequest("invalid user id")
	}

	rentals, err := h.rentalService.GetRentalsForUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, rentals)
}

// AcceptRental godoc
// @Summary Approve a pending rental
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} model.Rental
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals/accept/{id} [put]
func (h *RentalHandler) AcceptRental(c echo.Context) error {
	return h.setStatus(c, model.RentalAccepted)
}

// RejectRental godoc
// @Summary Deny a pending rental
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} model.Rental
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rentals/reject/{id} [put]
func (h *RentalHandler) RejectRental(c echo.Context) error {
	return h.setStatus(c, model.RentalRejected)
}

func (h *RentalHandler) setStatus(c echo.Context, status model.RentalStatus) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid rental id")
	}

	rental, err := h.rentalService.SetStatus(c.Request().Context(), id, status)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, rental)
}
