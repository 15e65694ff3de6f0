package appointment

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/policy"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking-engine/internal/metrics"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// Deps é compartilhado por todos os casos de uso de agendamento.
// Audit e Metrics podem ser nil.
type Deps struct {
	Store   domain.UnitOfWork
	Clock   timeutil.Clock
	Hours   domain.BusinessHours
	Guard   *policy.Guard
	Locker  lock.Locker
	Audit   *audit.Dispatcher
	Metrics *metrics.Metrics
	Log     *slog.Logger

	// DefaultLead vale para barbearias sem antecedência própria.
	DefaultLead time.Duration
	// Timeout limita cada tentativa de transação.
	Timeout time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = timeutil.SystemClock{Loc: d.Hours.Location}
	}
	if d.Guard == nil {
		d.Guard = policy.Default(policy.Settings{MaxPending: 3, CancellationNotice: 2 * time.Hour})
	}
	if d.Locker == nil {
		d.Locker = lock.NopLocker{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Hours.Location == nil {
		d.Hours.Location = time.UTC
	}
	return d
}

// leadTime usa a antecedência da barbearia e cai no padrão do deployment.
func (d Deps) leadTime(shop *models.Barbershop) time.Duration {
	if shop != nil && shop.MinAdvanceMinutes != nil && *shop.MinAdvanceMinutes >= 0 {
		return time.Duration(*shop.MinAdvanceMinutes) * time.Minute
	}
	return d.DefaultLead
}

// ======================================================
// Transaction runner
// ======================================================

type txFunc func(ctx context.Context, tx domain.Tx) error

// atomically roda fn numa transação, sob o lock das agendas em lockBarbers.
// Perder a corrida no commit repete uma vez; na segunda devolve onLost.
func (d Deps) atomically(
	ctx context.Context,
	op string,
	lockBarbers []uint,
	onLost error,
	fn txFunc,
) error {

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			d.Metrics.IncRaceRetry(op)
			d.Log.Warn("retrying after lost commit race", "op", op)
		}

		err = d.withLocks(ctx, lockBarbers, func(ctx context.Context) error {
			return d.runTx(ctx, fn)
		})
		if !errors.Is(err, apperr.ErrRaceLost) {
			return translate(err)
		}
	}

	return onLost
}

func (d Deps) withLocks(ctx context.Context, barbers []uint, fn func(ctx context.Context) error) error {
	if len(barbers) == 0 {
		return fn(ctx)
	}
	return d.Locker.WithLock(ctx, lock.BarberKey(barbers[0]), func(ctx context.Context) error {
		return d.withLocks(ctx, barbers[1:], fn)
	})
}

func (d Deps) runTx(ctx context.Context, fn txFunc) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	tx, err := d.Store.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// translate leva falhas de infraestrutura conhecidas para Transient.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case apperr.KindOf(err) != "":
		return err
	case errors.Is(err, lock.ErrLockNotAcquired):
		return apperr.Transient("schedule_busy", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Transient("store_timeout", err)
	}
	return err
}

// lockOrder evita deadlock entre remarcações que cruzam dois barbeiros.
func lockOrder(ids ...uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (d Deps) dispatch(action string, ap *models.Appointment, actorID *uint, meta any) {
	d.Audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       actorID,
		Action:       action,
		Entity:       audit.EntityAppointment,
		EntityID:     ap.ID.String(),
		Metadata:     meta,
		OccurredAt:   d.Clock.Now(),
	})
}
