package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID uint `gorm:"index:idx_appointments_barber_start,priority:1" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint    `gorm:"index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	BarberProductID uint           `json:"barber_product_id"`
	BarberProduct   *BarberProduct `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber_product,omitempty"`

	StartTime time.Time `gorm:"index:idx_appointments_barber_start,priority:2;not null" json:"start_time"`

	// Duração congelada na criação: editar o produto não mexe em agendamentos existentes.
	DurationMin int `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	VoucherID   *uuid.UUID `gorm:"type:uuid" json:"voucher_id,omitempty"`
	PromotionID *uuid.UUID `gorm:"type:uuid" json:"promotion_id,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CancelledBy *uint      `json:"cancelled_by"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime é sempre derivado da duração congelada, nunca persistido.
func (ap *Appointment) EndTime() time.Time {
	return ap.StartTime.Add(time.Duration(ap.DurationMin) * time.Minute)
}
