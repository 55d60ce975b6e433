package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
	"drivehub/internal/repository"
)

// ReviewService handles car ratings.
type ReviewService interface {
	CreateReview(ctx context.Context, caller *model.User, carID uuid.UUID, rating int, comment string) (*model.Review, error)
	ListReviewsForCar(ctx context.Context, carID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	carRepo    repository.CarRepository
}

// NewReviewService builds a ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, carRepo repository.CarRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		carRepo:    carRepo,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, caller *model.User, carID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	review := &model.Review{
		ID:      uuid.New(),
		UserID:  caller.ID,
		CarID:   carID,
		Rating:  rating,
		Comment: comment,
		Date:    time.Now().UnixMilli(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func (s *reviewService) ListReviewsForCar(ctx context.Context, carID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListByCar(ctx, carID)
}
