package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// MarkNoShow: o cliente não apareceu. Voucher fica consumido.
type MarkNoShow struct {
	deps Deps
}

func NewMarkNoShow(deps Deps) *MarkNoShow {
	return &MarkNoShow{deps: deps.withDefaults()}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
) (*models.Appointment, error) {
	return uc.deps.providerTransition(ctx, "no_show", id, actor, domain.MarkNoShow)
}
