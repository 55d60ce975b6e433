package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
)

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func TestReviewService_CreateReview(t *testing.T) {
	caller := &model.User{ID: uuid.New(), Role: model.RoleCustomer}
	carID := uuid.New()

	t.Run("successful review", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, carID).Return(&model.Car{ID: carID}, nil)
		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

		svc := NewReviewService(reviewRepo, carRepo)
		review, err := svc.CreateReview(context.Background(), caller, carID, 4, "smooth ride")

		assert.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, caller.ID, review.UserID)
		assert.Positive(t, review.Date)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := NewReviewService(new(MockReviewRepository), new(MockCarRepository))

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.CreateReview(context.Background(), caller, carID, rating, "")
			assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
		}
	})

	t.Run("unknown car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, carID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewReviewService(new(MockReviewRepository), carRepo)
		_, err := svc.CreateReview(context.Background(), caller, carID, 3, "")

		assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
	})
}
