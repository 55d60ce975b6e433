package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drivehub/internal/model"
)

// RentalRepository defines persistence operations for rentals.
type RentalRepository interface {
	Create(ctx context.Context, rental *model.Rental) error
	Update(ctx context.Context, rental *model.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	// ListAll returns every rental with user and car details joined.
	ListAll(ctx context.Context) ([]model.Rental, error)
	// ListByUser returns a user's rentals with car details joined only.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error)
	// CountOverlapping counts PENDING or ACCEPTED rentals of a car whose
	// inclusive [start, end] range overlaps the given one.
	CountOverlapping(ctx context.Context, carID uuid.UUID, startMs, endMs int64) (int64, error)
}

type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository builds a GORM-backed rental repository.
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *rentalRepository) Update(ctx context.Context, rental *model.Rental) error {
	return r.db.WithContext(ctx).Save(rental).Error
}

func (r *rentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	var rental model.Rental
	if err := r.db.WithContext(ctx).Preload("Car").First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepository) ListAll(ctx context.Context) ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.WithContext(ctx).Preload("User").Preload("Car").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.WithContext(ctx).Preload("Car").Where("user_id = ?", userID).Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) CountOverlapping(ctx context.Context, carID uuid.UUID, startMs, endMs int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rental{}).
		Where("car_id = ?", carID).
		Where("rental_status IN ?", []model.RentalStatus{model.RentalPending, model.RentalAccepted}).
		Where("start_date <= ? AND end_date >= ?", endMs, startMs).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
