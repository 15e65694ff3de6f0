package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type ConfirmAppointment struct {
	deps Deps
}

func NewConfirmAppointment(deps Deps) *ConfirmAppointment {
	return &ConfirmAppointment{deps: deps.withDefaults()}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.deps.providerTransition(ctx, "confirmed", id, actor, domain.Confirm)
}
