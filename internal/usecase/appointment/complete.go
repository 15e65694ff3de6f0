package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type CompleteAppointment struct {
	deps Deps
}

func NewCompleteAppointment(deps Deps) *CompleteAppointment {
	return &CompleteAppointment{deps: deps.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.deps.providerTransition(ctx, "completed", id, actor, domain.Complete)
}
