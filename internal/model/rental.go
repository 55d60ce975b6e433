package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentalStatus tracks the booking lifecycle. PENDING is the initial state;
// ACCEPTED and REJECTED are terminal.
type RentalStatus string

const (
	RentalPending  RentalStatus = "PENDING"
	RentalAccepted RentalStatus = "ACCEPTED"
	RentalRejected RentalStatus = "REJECTED"
)

// PaymentState tracks whether a booking has been paid for.
type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentPaid      PaymentState = "PAID"
	PaymentCancelled PaymentState = "CANCELLED"
)

// Rental represents a booking of one car by one user for an inclusive date
// range. StartDate and EndDate are epoch milliseconds, never calendar strings.
type Rental struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CarID         uuid.UUID       `json:"car_id" gorm:"type:char(36);not null;index"`
	StartDate     int64           `json:"start_date" gorm:"not null"`
	EndDate       int64           `json:"end_date" gorm:"not null"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(20,2);not null"`
	RentalStatus  RentalStatus    `json:"rental_status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus PaymentState    `json:"payment_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations, preloaded for joined reads only.
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Car  *Car  `json:"car,omitempty" gorm:"foreignKey:CarID"`
}

// IsFinal reports whether the rental status is terminal.
func (s RentalStatus) IsFinal() bool {
	return s == RentalAccepted || s == RentalRejected
}

// BeforeCreate sets UUID before creating the record.
func (r *Rental) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
