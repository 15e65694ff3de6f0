package models

import (
	"time"

	"github.com/google/uuid"
)

type Voucher struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uint      `gorm:"index" json:"barbershop_id"`
	ClientID     uint      `gorm:"index" json:"client_id"`

	Code            string     `gorm:"size:40;uniqueIndex" json:"code"`
	Status          string     `gorm:"size:20;default:'active'" json:"status"`
	DiscountPercent int        `json:"discount_percent"`
	ValidUntil      *time.Time `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Promotion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uint      `gorm:"index" json:"barbershop_id"`
	ClientID     uint      `gorm:"index" json:"client_id"`

	Title      string     `gorm:"size:100" json:"title"`
	Status     string     `gorm:"size:20;default:'active'" json:"status"`
	PriceOff   float64    `json:"price_off"`
	ValidUntil *time.Time `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
