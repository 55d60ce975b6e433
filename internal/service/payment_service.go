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

// PaymentService settles accepted rentals.
type PaymentService interface {
	// PayRental records a payment for an accepted, unpaid rental owned by the
	// caller (admins may settle on a customer's behalf, e.g. cash at the desk).
	PayRental(ctx context.Context, caller *model.User, rentalID uuid.UUID, method model.PaymentMethod) (*model.Payment, error)
	ListPayments(ctx context.Context, caller *model.User) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
}

// NewPaymentService builds a PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, rentalRepo repository.RentalRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
	}
}

func (s *paymentService) PayRental(ctx context.Context, caller *model.User, rentalID uuid.UUID, method model.PaymentMethod) (*model.Payment, error) {
	rental, err := s.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRentalNotFound
		}
		return nil, err
	}

	if rental.UserID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if rental.RentalStatus != model.RentalAccepted {
		return nil, apperrors.ErrRentalNotPayable
	}
	if rental.PaymentStatus == model.PaymentPaid {
		return nil, apperrors.ErrRentalNotPayable
	}

	payment := &model.Payment{
		ID:            uuid.New(),
		UserID:        rental.UserID,
		RentalID:      rental.ID,
		Amount:        rental.TotalPrice,
		Method:        method,
		PaymentDate:   time.Now().UnixMilli(),
		TransactionID: uuid.New().String(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	rental.PaymentStatus = model.PaymentPaid
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		// The payment row exists but the rental still reads PENDING; there is
		// no multi-record transaction at this consistency bar.
		return nil, fmt.Errorf("mark rental paid: %w", err)
	}

	return payment, nil
}

// ListPayments returns every payment for an ADMIN caller and only the caller's
// own payments otherwise.
func (s *paymentService) ListPayments(ctx context.Context, caller *model.User) ([]model.Payment, error) {
	if caller.IsAdmin() {
		return s.paymentRepo.ListAll(ctx)
	}
	return s.paymentRepo.ListByUser(ctx, caller.ID)
}
