package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/dto"
)

type ListAppointmentsByMonth struct {
	deps Deps
}

func NewListAppointmentsByMonth(deps Deps) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{deps: deps.withDefaults()}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, apperr.InvalidInput("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.deps.Hours.Location)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.deps.Store.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, translate(err)
	}

	return toListDTO(appointments), nil
}
