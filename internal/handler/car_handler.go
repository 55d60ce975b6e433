package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
	"drivehub/internal/service"
)

// CarHandler handles inventory endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// UpdateCarRequest is a partial inventory update.
type UpdateCarRequest struct {
	Brand           *string `json:"brand,omitempty"`
	Model           *string `json:"model,omitempty"`
	PricePerDay     *string `json:"price_per_day,omitempty"`
	FuelType        *string `json:"fuel_type,omitempty" validate:"omitempty,oneof=DIESEL GASOIL"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=AVAILABLE NOT_AVAILABLE"`
	SeatingCapacity *int    `json:"seating_capacity,omitempty" validate:"omitempty,gt=0"`
}

// CreateCar godoc
// @Summary Create a car listing with an image
// @Tags cars
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Car image (jpeg or png)"
// @Param brand formData string true "Brand"
// @Param model formData string true "Model"
// @Param price_per_day formData string true "Daily price"
// @Param fuel_type formData string false "DIESEL or GASOIL"
// @Param status formData string false "AVAILABLE or NOT_AVAILABLE"
// @Param seating_capacity formData int true "Seats"
// @Success 201 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /cars [post]
func (h *CarHandler) CreateCar(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return domainError(apperrors.ErrMissingImage)
	}

	brand := c.FormValue("brand")
	carModel := c.FormValue("model")
	if brand == "" || carModel == "" {
		return badRequest("brand and model are required")
	}

	price, err := decimal.NewFromString(c.FormValue("price_per_day"))
	if err != nil || !price.IsPositive() {
		return badRequest("price_per_day must be a positive number")
	}

	seats, err := strconv.Atoi(c.FormValue("seating_capacity"))
	if err != nil || seats <= 0 {
		return badRequest("seating_capacity must be a positive integer")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest("unreadable image payload")
	}
	defer file.Close()

	car, err := h.carService.CreateCar(c.Request().Context(), service.CreateCarInput{
		Brand:           brand,
		Model:           carModel,
		PricePerDay:     price,
		FuelType:        model.FuelType(c.FormValue("fuel_type")),
		Status:          model.CarStatus(c.FormValue("status")),
		SeatingCapacity: seats,
	}, &service.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, car)
}

// ListCars godoc
// @Summary List the car inventory
// @Tags cars
// @Produce json
// @Success 200 {array} model.Car
// @Router /cars [get]
func (h *CarHandler) ListCars(c echo.Context) error {
	cars, err := h.carService.ListCars(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, cars)
}

// GetCar godoc
// @Summary Fetch one car
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} model.Car
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [get]
func (h *CarHandler) GetCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid car id")
	}

	car, err := h.carService.GetCar(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, car)
}

// UpdateCar godoc
// @Summary Update a car listing
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body UpdateCarRequest true "Fields to update"
// @Success 200 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [put]
func (h *CarHandler) UpdateCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid car id")
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	patch := service.UpdateCarInput{
		Brand:           req.Brand,
		Model:           req.Model,
		SeatingCapacity: req.SeatingCapacity,
	}
	if req.PricePerDay != nil {
		price, err := decimal.NewFromString(*req.PricePerDay)
		if err != nil || !price.IsPositive() {
			return badRequest("price_per_day must be a positive number")
		}
		patch.PricePerDay = &price
	}
	if req.FuelType != nil {
		fuel := model.FuelType(*req.FuelType)
		patch.FuelType = &fuel
	}
	if req.Status != nil {
		status := model.CarStatus(*req.Status)
		patch.Status = &status
	}

	car, err := h.carService.UpdateCar(c.Request().Context(), id, patch)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, car)
}

// DeleteCar godoc
// @Summary Delete a car listing
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [delete]
func (h *CarHandler) DeleteCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid car id")
	}

	if err := h.carService.DeleteCar(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "car deleted successfully",
	})
}
