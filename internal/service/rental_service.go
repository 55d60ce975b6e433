package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
	"drivehub/internal/repository"
)

const (
	oneDayMs  = int64(24 * 60 * 60 * 1000)
	halfDayMs = oneDayMs / 2
)

// RentalDays counts the inclusive days covered by a millisecond range: the
// distance is rounded to whole days and one is added, so a same-day rental
// counts as 1 day.
func RentalDays(startMs, endMs int64) int64 {
	diff := endMs - startMs
	if diff < 0 {
		diff = -diff
	}
	return (diff+halfDayMs)/oneDayMs + 1
}

// RentalService computes booking prices, creates rentals, and transitions
// their lifecycle status.
type RentalService interface {
	CreateRental(ctx context.Context, customer *model.User, carID uuid.UUID, startMs, endMs int64) (*model.Rental, error)
	ListRentals(ctx context.Context, caller *model.User) ([]model.Rental, error)
	GetRental(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	GetRentalsForUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.RentalStatus) (*model.Rental, error)
}

type rentalService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
}

// NewRentalService builds a RentalService.
func NewRentalService(rentalRepo repository.RentalRepository, carRepo repository.CarRepository) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
	}
}

// CreateRental prices and persists a PENDING booking. The price is computed
// once here and never recomputed; a concurrent car price change between the
// lookup and the insert wins or loses arbitrarily, which is accepted.
// Overlapping PENDING or ACCEPTED bookings for the same car are rejected.
func (s *rentalService) CreateRental(ctx context.Context, customer *model.User, carID uuid.UUID, startMs, endMs int64) (*model.Rental, error) {
	if endMs < startMs {
		return nil, apperrors.ErrInvalidDateRange
	}

	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	overlapping, err := s.rentalRepo.CountOverlapping(ctx, carID, startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if overlapping > 0 {
		return nil, apperrors.ErrCarUnavailable
	}

	days := RentalDays(startMs, endMs)
	totalPrice := car.PricePerDay.Mul(decimal.NewFromInt(days))

	rental := &model.Rental{
		ID:            uuid.New(),
		UserID:        customer.ID,
		CarID:         carID,
		StartDate:     startMs,
		EndDate:       endMs,
		TotalPrice:    totalPrice,
		RentalStatus:  model.RentalPending,
		PaymentStatus: model.PaymentPending,
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}

	return rental, nil
}

// ListRentals returns all rentals with user and car details for an ADMIN
// caller, and only the caller's own rentals (car details, no other users'
// profiles) otherwise.
func (s *rentalService) ListRentals(ctx context.Context, caller *model.User) ([]model.Rental, error) {
	if caller.IsAdmin() {
		return s.rentalRepo.ListAll(ctx)
	}
	return s.rentalRepo.ListByUser(ctx, caller.ID)
}

// GetRental retrieves a rental by id.
func (s *rentalService) GetRental(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	rental, err := s.rentalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRentalNotFound
		}
		return nil, err
	}
	return rental, nil
}

// GetRentalsForUser retrieves all rentals owned by a user.
func (s *rentalService) GetRentalsForUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error) {
	return s.rentalRepo.ListByUser(ctx, userID)
}

// SetStatus transitions a rental to ACCEPTED or REJECTED. Re-applying the
// current terminal status is idempotent; switching between terminal states is
// rejected.
func (s *rentalService) SetStatus(ctx context.Context, id uuid.UUID, status model.RentalStatus) (*model.Rental, error) {
	rental, err := s.rentalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRentalNotFound
		}
		return nil, err
	}

	if rental.RentalStatus == status {
		return rental, nil
	}
	if rental.RentalStatus.IsFinal() {
		return nil, apperrors.ErrRentalClosed
	}

	rental.RentalStatus = status
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}

	return rental, nil
}
