package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// providerTransition aplica uma ação de estado exclusiva do barbeiro/dono.
func (d Deps) providerTransition(
	ctx context.Context,
	op string,
	id uuid.UUID,
	actor domain.Actor,
	action func(ap *models.Appointment, now time.Time) error,
) (ap *models.Appointment, err error) {

	defer func() { d.Metrics.ObserveOperation(op, err) }()

	err = d.atomically(
		ctx,
		op,
		nil,
		apperr.Transient("concurrent_update", apperr.ErrRaceLost),
		func(ctx context.Context, tx domain.Tx) error {
			cur, err := tx.GetAppointmentForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if err := domain.RequireProvider(actor, cur); err != nil {
				return err
			}
			if err := action(cur, d.Clock.Now()); err != nil {
				return err
			}
			if err := tx.UpdateAppointment(ctx, cur); err != nil {
				return err
			}
			ap = cur
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	d.dispatch("appointment_"+op, ap, &actor.ID, nil)
	return ap, nil
}
