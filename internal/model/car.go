package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FuelType enumerates supported fuel types.
type FuelType string

const (
	FuelDiesel FuelType = "DIESEL"
	FuelGasoil FuelType = "GASOIL"
)

// CarStatus enumerates listing availability.
type CarStatus string

const (
	CarAvailable    CarStatus = "AVAILABLE"
	CarNotAvailable CarStatus = "NOT_AVAILABLE"
)

// Car represents an inventory listing.
type Car struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Brand           string          `json:"brand" gorm:"size:255;not null"`
	Model           string          `json:"model" gorm:"size:255;not null"`
	PricePerDay     decimal.Decimal `json:"price_per_day" gorm:"type:decimal(20,2);not null"`
	FuelType        FuelType        `json:"fuel_type" gorm:"type:varchar(20)"`
	Status          CarStatus       `json:"status" gorm:"type:varchar(20);default:'AVAILABLE';index"`
	SeatingCapacity int             `json:"seating_capacity" gorm:"not null"`
	ImageURL        string          `json:"image_url" gorm:"size:512;not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
