package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/middleware"
	"drivehub/internal/service"
)

// ReviewHandler handles car rating endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest rates a car from 1 to 5.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// CreateReview godoc
// @Summary Review a car
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body CreateReviewRequest true "Rating"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid car id")
	}

	var req CreateReviewRequest
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

	review, err := h.reviewService.CreateReview(c.Request().Context(), caller, carID, req.Rating, req.Comment)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

// ListReviews godoc
// @Summary List reviews for a car
// @Tags reviews
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {array} model.Review
// @Router /cars/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid car id")
	}

	reviews, err := h.reviewService.ListReviewsForCar(c.Request().Context(), carID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}
