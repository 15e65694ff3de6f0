package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/dto"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

type ListAppointmentsByDate struct {
	deps Deps
}

func NewListAppointmentsByDate(deps Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{deps: deps.withDefaults()}
}

// Execute lista a agenda de um barbeiro no dia civil de date, no fuso do deployment.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := timeutil.StartOfDay(date.In(uc.deps.Hours.Location))
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.deps.Store.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, translate(err)
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:          ap.ID,
			BarberID:    ap.BarberID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime(),
			DurationMin: ap.DurationMin,
			Status:      ap.Status,
			Active:      domain.Status(ap.Status).IsActive(),
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.Name
		}
		if ap.BarberProduct != nil {
			item.ProductName = ap.BarberProduct.Name
		}
		out = append(out, item)
	}
	return out
}
