package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID          uuid.UUID `json:"id"`
	BarberID    uint      `json:"barber_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	Active      bool      `json:"active"`
	ClientName  string    `json:"client_name"`
	ProductName string    `json:"product_name"`
}
