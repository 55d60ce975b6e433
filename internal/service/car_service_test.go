package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
)

// MockCarRepository is a mock implementation of CarRepository.
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *model.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) Update(ctx context.Context, car *model.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Car), args.Error(1)
}

func (m *MockCarRepository) List(ctx context.Context) ([]model.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Car), args.Error(1)
}

func (m *MockCarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeImageStore records uploads and deletions in memory.
type fakeImageStore struct {
	uploaded []string
	deleted  []string
	failPut  bool
}

func (f *fakeImageStore) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeImageStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.failPut {
		return "", assert.AnError
	}
	f.uploaded = append(f.uploaded, key)
	return "http://media.local/drivehub-media/" + key, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImageStore) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, "http://media.local/drivehub-media/")
}

func jpegUpload() *ImageUpload {
	body := strings.NewReader("fake-jpeg-bytes")
	return &ImageUpload{Reader: body, Size: body.Size(), ContentType: "image/jpeg"}
}

func TestCarService_CreateCar(t *testing.T) {
	input := CreateCarInput{
		Brand:           "Toyota",
		Model:           "Corolla",
		PricePerDay:     decimal.RequireFromString("50.00"),
		FuelType:        model.FuelGasoil,
		SeatingCapacity: 5,
	}

	tests := []struct {
		name          string
		image         *ImageUpload
		failPut       bool
		setupMock     func(*MockCarRepository)
		expectedError error
	}{
		{
			name:  "successful creation",
			image: jpegUpload(),
			setupMock: func(m *MockCarRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Car")).Return(nil)
			},
		},
		{
			name:          "missing image",
			image:         nil,
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrMissingImage,
		},
		{
			name: "unsupported content type",
			image: &ImageUpload{
				Reader:      strings.NewReader("gif"),
				Size:        3,
				ContentType: "image/gif",
			},
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidImage,
		},
		{
			name: "oversized image",
			image: &ImageUpload{
				Reader:      strings.NewReader("x"),
				Size:        MaxImageSize + 1,
				ContentType: "image/png",
			},
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidImage,
		},
		{
			name:          "storage unavailable",
			image:         jpegUpload(),
			failPut:       true,
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCarRepository)
			tt.setupMock(mockRepo)
			store := &fakeImageStore{failPut: tt.failPut}

			svc := NewCarService(mockRepo, store, nil)
			car, err := svc.CreateCar(context.Background(), input, tt.image)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, car)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, car)
				assert.Len(t, store.uploaded, 1)
				assert.Contains(t, car.ImageURL, store.uploaded[0])
				assert.Equal(t, model.CarAvailable, car.Status) // default when unset
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCarService_GetCar_NotFound(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockCarRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCarService(mockRepo, &fakeImageStore{}, nil)
	_, err := svc.GetCar(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
}

func TestCarService_UpdateCar(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockCarRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.Car{
		ID:          id,
		Brand:       "Toyota",
		Model:       "Corolla",
		PricePerDay: decimal.RequireFromString("50.00"),
		Status:      model.CarAvailable,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Car")).Return(nil)

	newPrice := decimal.RequireFromString("65.00")
	newStatus := model.CarNotAvailable

	svc := NewCarService(mockRepo, &fakeImageStore{}, nil)
	car, err := svc.UpdateCar(context.Background(), id, UpdateCarInput{
		PricePerDay: &newPrice,
		Status:      &newStatus,
	})

	assert.NoError(t, err)
	assert.True(t, newPrice.Equal(car.PricePerDay))
	assert.Equal(t, model.CarNotAvailable, car.Status)
	assert.Equal(t, "Toyota", car.Brand) // untouched fields preserved
	mockRepo.AssertExpectations(t)
}

func TestCarService_DeleteCar(t *testing.T) {
	t.Run("deletes record and stored image", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(MockCarRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Car{
			ID:       id,
			ImageURL: "http://media.local/drivehub-media/car-images/abc.jpg",
		}, nil)
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		store := &fakeImageStore{}
		svc := NewCarService(mockRepo, store, nil)

		err := svc.DeleteCar(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, []string{"car-images/abc.jpg"}, store.deleted)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(MockCarRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCarService(mockRepo, &fakeImageStore{}, nil)
		err := svc.DeleteCar(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
	})
}
