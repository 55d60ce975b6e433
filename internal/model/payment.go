package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod enumerates accepted payment channels.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentWave PaymentMethod = "WAVE"
)

// Payment records a settled rental payment. Amount mirrors the rental's total
// price at the moment of payment; PaymentDate is epoch milliseconds.
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	RentalID      uuid.UUID       `json:"rental_id" gorm:"type:char(36);not null;uniqueIndex"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Method        PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentDate   int64           `json:"payment_date" gorm:"not null"`
	TransactionID string          `json:"transaction_id" gorm:"size:64;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
