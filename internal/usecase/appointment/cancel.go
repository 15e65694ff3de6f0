package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/policy"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps.withDefaults()}
}

// Execute cancela a partir de scheduled/confirmed. Com aviso suficiente o
// voucher anexado volta a active; dentro da janela ele fica consumido.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
) (ap *models.Appointment, err error) {

	defer func() { uc.deps.Metrics.ObserveOperation("cancel", err) }()

	var restored bool

	err = uc.deps.atomically(
		ctx,
		"cancel",
		nil,
		apperr.Transient("concurrent_update", apperr.ErrRaceLost),
		func(ctx context.Context, tx domain.Tx) error {
			now := uc.deps.Clock.Now()

			cur, err := tx.GetAppointmentForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if err := domain.RequireParty(actor, cur); err != nil {
				return err
			}

			startedAt := cur.StartTime
			if err := domain.Cancel(cur, actor.ID, now); err != nil {
				return err
			}

			decision, err := uc.deps.Guard.Evaluate(ctx, tx, policy.Input{
				Action:   policy.ActionCancel,
				ClientID: cur.ClientID,
				Start:    startedAt,
				Now:      now,
			})
			if err != nil {
				return err
			}

			if err := tx.UpdateAppointment(ctx, cur); err != nil {
				return err
			}

			restored = false
			if decision.RestoreVoucher {
				for _, ref := range voucher.Refs(cur.VoucherID, cur.PromotionID) {
					if err := tx.SetVoucherStatus(ctx, ref, voucher.StatusActive); err != nil {
						return err
					}
					restored = true
				}
			}

			ap = cur
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.deps.dispatch("appointment_cancelled", ap, &actor.ID, map[string]any{
		"voucher_restored": restored,
	})

	return ap, nil
}
