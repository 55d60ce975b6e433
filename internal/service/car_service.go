package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"drivehub/internal/cache"
	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
	"drivehub/internal/repository"
	"drivehub/internal/storage"
)

const (
	carCacheTTL     = 5 * time.Minute
	carListCacheTTL = 1 * time.Minute
	carListCacheKey = "cars:all"

	imageKeyPrefix = "car-images/"
	// MaxImageSize caps uploaded car images, matching the original upload limit.
	MaxImageSize = 10 << 20
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ImageUpload is the in-memory multipart image payload of a car creation.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// CreateCarInput carries car metadata for creation.
type CreateCarInput struct {
	Brand           string
	Model           string
	PricePerDay     decimal.Decimal
	FuelType        model.FuelType
	Status          model.CarStatus
	SeatingCapacity int
}

// UpdateCarInput is a partial car update. Nil fields are left unchanged. There
// is no image replacement path.
type UpdateCarInput struct {
	Brand           *string
	Model           *string
	PricePerDay     *decimal.Decimal
	FuelType        *model.FuelType
	Status          *model.CarStatus
	SeatingCapacity *int
}

// CarService handles inventory CRUD and image upload delegation.
type CarService interface {
	CreateCar(ctx context.Context, input CreateCarInput, image *ImageUpload) (*model.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error)
	ListCars(ctx context.Context) ([]model.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, patch UpdateCarInput) (*model.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error
}

type carService struct {
	repo   repository.CarRepository
	images storage.ImageStore
	cache  *cache.Client
}

// NewCarService builds a CarService with repository, image store, and cache.
func NewCarService(repo repository.CarRepository, images storage.ImageStore, cacheClient *cache.Client) CarService {
	return &carService{
		repo:   repo,
		images: images,
		cache:  cacheClient,
	}
}

func (s *carService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("car:%s", id.String())
}

// CreateCar uploads the image to object storage, then persists the listing
// with the returned URL.
func (s *carService) CreateCar(ctx context.Context, input CreateCarInput, image *ImageUpload) (*model.Car, error) {
	if image == nil || image.Reader == nil {
		return nil, apperrors.ErrMissingImage
	}
	ext, ok := imageExtensions[image.ContentType]
	if !ok {
		return nil, apperrors.ErrInvalidImage
	}
	if image.Size <= 0 || image.Size > MaxImageSize {
		return nil, apperrors.ErrInvalidImage
	}

	key := imageKeyPrefix + uuid.New().String() + ext
	url, err := s.images.Upload(ctx, key, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	car := &model.Car{
		ID:              uuid.New(),
		Brand:           input.Brand,
		Model:           input.Model,
		PricePerDay:     input.PricePerDay,
		FuelType:        input.FuelType,
		Status:          input.Status,
		SeatingCapacity: input.SeatingCapacity,
		ImageURL:        url,
	}
	if car.Status == "" {
		car.Status = model.CarAvailable
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	_ = s.cache.Delete(ctx, carListCacheKey)
	return car, nil
}

// GetCar retrieves a car by id with caching.
func (s *carService) GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(car); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, carCacheTTL)
	}
	return car, nil
}

// ListCars returns the full inventory, served from cache when fresh.
func (s *carService) ListCars(ctx context.Context) ([]model.Car, error) {
	if data, _ := s.cache.Get(ctx, carListCacheKey); data != nil {
		var cached []model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	cars, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(cars); err == nil {
		_ = s.cache.Set(ctx, carListCacheKey, payload, carListCacheTTL)
	}
	return cars, nil
}

// UpdateCar applies a partial update to a listing.
func (s *carService) UpdateCar(ctx context.Context, id uuid.UUID, patch UpdateCarInput) (*model.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, err
	}

	if patch.Brand != nil {
		car.Brand = *patch.Brand
	}
	if patch.Model != nil {
		car.Model = *patch.Model
	}
	if patch.PricePerDay != nil {
		car.PricePerDay = *patch.PricePerDay
	}
	if patch.FuelType != nil {
		car.FuelType = *patch.FuelType
	}
	if patch.Status != nil {
		car.Status = *patch.Status
	}
	if patch.SeatingCapacity != nil {
		car.SeatingCapacity = *patch.SeatingCapacity
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, carListCacheKey)
	return car, nil
}

// DeleteCar removes a listing unconditionally. Existing rentals keep their
// car_id reference and dangle afterwards; there is no referential check.
func (s *carService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCarNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCarNotFound
		}
		return fmt.Errorf("delete car: %w", err)
	}

	// Best-effort cleanup of the stored image.
	if key := s.images.KeyFromURL(car.ImageURL); key != "" {
		_ = s.images.Delete(ctx, key)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, carListCacheKey)
	return nil
}
