package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type GetAppointment struct {
	deps Deps
}

func NewGetAppointment(deps Deps) *GetAppointment {
	return &GetAppointment{deps: deps.withDefaults()}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
) (*models.Appointment, error) {

	ap, err := uc.deps.Store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireParty(actor, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
