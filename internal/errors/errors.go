package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCarNotFound is returned when a car is not found.
	ErrCarNotFound = errors.New("car not found")
	// ErrRentalNotFound is returned when a rental is not found.
	ErrRentalNotFound = errors.New("rental not found")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("there is already a user with this email")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller lacks the required role or ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidDateRange is returned when a rental range ends before it starts.
	ErrInvalidDateRange = errors.New("end date must not precede start date")
	// ErrCarUnavailable is returned when the requested range overlaps an existing booking.
	ErrCarUnavailable = errors.New("car is already booked for the requested dates")
	// ErrRentalClosed is returned when changing a terminal rental status to another one.
	ErrRentalClosed = errors.New("rental status is already final")
	// ErrRentalNotPayable is returned when paying a rental that is not accepted or already paid.
	ErrRentalNotPayable = errors.New("rental is not payable")
	// ErrEmptyPassword is returned when registering with an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrInvalidRating is returned for review ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrMissingImage is returned when a car is created without an image payload.
	ErrMissingImage = errors.New("no file uploaded")
	// ErrInvalidImage is returned when the uploaded file is not a supported image.
	ErrInvalidImage = errors.New("this file type is not allowed")
	// ErrStorageUnavailable is returned when the object store rejects an upload.
	ErrStorageUnavailable = errors.New("image storage unavailable")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCarNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAR_NOT_FOUND")
	case errors.Is(err, ErrRentalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RENTAL_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidDateRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case errors.Is(err, ErrCarUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "CAR_UNAVAILABLE")
	case errors.Is(err, ErrRentalClosed):
		return NewHTTPError(http.StatusConflict, err.Error(), "RENTAL_CLOSED")
	case errors.Is(err, ErrRentalNotPayable):
		return NewHTTPError(http.StatusConflict, err.Error(), "RENTAL_NOT_PAYABLE")
	case errors.Is(err, ErrEmptyPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_REQUIRED")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrMissingImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_IMAGE")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
