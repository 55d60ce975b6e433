package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drivehub/internal/model"
)

// ReviewRepository defines persistence operations for car reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByCar(ctx context.Context, carID uuid.UUID) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("User").Where("car_id = ?", carID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
