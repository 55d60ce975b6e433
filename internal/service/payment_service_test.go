package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "drivehub/internal/errors"
	"drivehub/internal/model"
)

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByRental(ctx context.Context, rentalID uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func TestPaymentService_PayRental(t *testing.T) {
	ownerID := uuid.New()
	rentalID := uuid.New()
	owner := &model.User{ID: ownerID, Role: model.RoleCustomer}
	stranger := &model.User{ID: uuid.New(), Role: model.RoleCustomer}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	acceptedRental := func() *model.Rental {
		return &model.Rental{
			ID:            rentalID,
			UserID:        ownerID,
			TotalPrice:    decimal.RequireFromString("150.00"),
			RentalStatus:  model.RentalAccepted,
			PaymentStatus: model.PaymentPending,
		}
	}

	t.Run("owner pays accepted rental", func(t *testing.T) {
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(acceptedRental(), nil)
		rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Rental) bool {
			return r.PaymentStatus == model.PaymentPaid
		})).Return(nil)
		paymentRepo := new(MockPaymentRepository)
		paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)

		svc := NewPaymentService(paymentRepo, rentalRepo)
		payment, err := svc.PayRental(context.Background(), owner, rentalID, model.PaymentWave)

		assert.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.00").Equal(payment.Amount))
		assert.Equal(t, ownerID, payment.UserID)
		assert.Equal(t, model.PaymentWave, payment.Method)
		assert.NotEmpty(t, payment.TransactionID)
		assert.Positive(t, payment.PaymentDate)
		rentalRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("admin may settle on the customer's behalf", func(t *testing.T) {
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(acceptedRental(), nil)
		rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Rental")).Return(nil)
		paymentRepo := new(MockPaymentRepository)
		paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)

		svc := NewPaymentService(paymentRepo, rentalRepo)
		payment, err := svc.PayRental(context.Background(), admin, rentalID, model.PaymentCash)

		assert.NoError(t, err)
		// The payment is attributed to the rental's owner, not the admin.
		assert.Equal(t, ownerID, payment.UserID)
	})

	t.Run("stranger cannot pay someone else's rental", func(t *testing.T) {
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(acceptedRental(), nil)

		svc := NewPaymentService(new(MockPaymentRepository), rentalRepo)
		_, err := svc.PayRental(context.Background(), stranger, rentalID, model.PaymentCash)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("pending rental is not payable", func(t *testing.T) {
		rental := acceptedRental()
		rental.RentalStatus = model.RentalPending
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(rental, nil)

		svc := NewPaymentService(new(MockPaymentRepository), rentalRepo)
		_, err := svc.PayRental(context.Background(), owner, rentalID, model.PaymentCash)

		assert.ErrorIs(t, err, apperrors.ErrRentalNotPayable)
	})

	t.Run("already paid rental is not payable again", func(t *testing.T) {
		rental := acceptedRental()
		rental.PaymentStatus = model.PaymentPaid
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(rental, nil)

		svc := NewPaymentService(new(MockPaymentRepository), rentalRepo)
		_, err := svc.PayRental(context.Background(), owner, rentalID, model.PaymentWave)

		assert.ErrorIs(t, err, apperrors.ErrRentalNotPayable)
	})

	t.Run("not found", func(t *testing.T) {
		rentalRepo := new(MockRentalRepository)
		rentalRepo.On("FindByID", mock.Anything, rentalID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPaymentService(new(MockPaymentRepository), rentalRepo)
		_, err := svc.PayRental(context.Background(), owner, rentalID, model.PaymentCash)

		assert.ErrorIs(t, err, apperrors.ErrRentalNotFound)
	})
}

func TestPaymentService_ListPayments(t *testing.T) {
	customerID := uuid.New()

	t.Run("admin sees all payments", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		paymentRepo.On("ListAll", mock.Anything).Return([]model.Payment{{}, {}}, nil)

		svc := NewPaymentService(paymentRepo, new(MockRentalRepository))
		payments, err := svc.ListPayments(context.Background(), &model.User{Role: model.RoleAdmin})

		assert.NoError(t, err)
		assert.Len(t, payments, 2)
	})

	t.Run("customer sees own payments", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		paymentRepo.On("ListByUser", mock.Anything, customerID).Return([]model.Payment{{UserID: customerID}}, nil)

		svc := NewPaymentService(paymentRepo, new(MockRentalRepository))
		payments, err := svc.ListPayments(context.Background(), &model.User{ID: customerID, Role: model.RoleCustomer})

		assert.NoError(t, err)
		assert.Len(t, payments, 1)
	})
}
