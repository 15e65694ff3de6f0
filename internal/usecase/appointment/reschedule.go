package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/policy"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// RescheduleAppointmentInput: campos nil mantêm o valor atual.
type RescheduleAppointmentInput struct {
	AppointmentID uuid.UUID
	Actor         domain.Actor
	NewStart      *time.Time
	NewBarberID   *uint
}

type RescheduleAppointment struct {
	deps Deps
}

func NewRescheduleAppointment(deps Deps) *RescheduleAppointment {
	return &RescheduleAppointment{deps: deps.withDefaults()}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() { uc.deps.Metrics.ObserveOperation("reschedule", err) }()

	if in.NewStart == nil && in.NewBarberID == nil {
		return nil, apperr.InvalidInput("nothing_to_change")
	}

	// leitura fora da transação só para saber quais agendas travar
	current, err := uc.deps.Store.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	target := current.BarberID
	if in.NewBarberID != nil {
		target = *in.NewBarberID
	}

	err = uc.deps.atomically(
		ctx,
		"reschedule",
		lockOrder(current.BarberID, target),
		apperr.SlotConflict("slot_taken"),
		func(ctx context.Context, tx domain.Tx) error {
			moved, err := uc.reschedule(ctx, tx, in)
			if err != nil {
				return err
			}
			ap = moved
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.deps.dispatch("appointment_rescheduled", ap, &in.Actor.ID, map[string]any{
		"from_barber_id": current.BarberID,
		"from_start":     current.StartTime,
		"barber_id":      ap.BarberID,
		"start_time":     ap.StartTime,
	})

	return ap, nil
}

func (uc *RescheduleAppointment) reschedule(
	ctx context.Context,
	tx domain.Tx,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	now := uc.deps.Clock.Now()

	ap, err := tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.RequireParty(in.Actor, ap); err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Novo horário / barbeiro efetivos
	// --------------------------------------------------
	start := ap.StartTime
	if in.NewStart != nil {
		start = timeutil.TruncateToMinute(*in.NewStart)
	}

	barberID := ap.BarberID
	if in.NewBarberID != nil {
		barberID = *in.NewBarberID
	}

	barber, err := catalog.New(tx).ActiveBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if barber.BarbershopID != ap.BarbershopID {
		return nil, apperr.NotFound("barber_not_found")
	}

	shop, err := tx.GetBarbershopByID(ctx, ap.BarbershopID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.deps.Guard.Evaluate(ctx, tx, policy.Input{
		Action:       policy.ActionReschedule,
		ClientID:     ap.ClientID,
		Start:        start,
		CurrentStart: ap.StartTime,
		LeadTime:     uc.deps.leadTime(shop),
		Now:          now,
	}); err != nil {
		return nil, err
	}

	// duração congelada: remarcar não relê o catálogo
	duration := time.Duration(ap.DurationMin) * time.Minute

	if !uc.deps.Hours.Contains(start, duration) {
		return nil, apperr.PolicyViolation("outside_business_hours")
	}

	// --------------------------------------------------
	// Conflito, ignorando o próprio agendamento
	// --------------------------------------------------
	if err := tx.LockBarber(ctx, barberID); err != nil {
		return nil, err
	}

	existing, err := tx.ListActiveOverlapping(ctx, barberID, start, start.Add(duration))
	if err != nil {
		return nil, err
	}
	if domain.HasConflict(existing, start, duration, &ap.ID) {
		return nil, apperr.SlotConflict("slot_taken")
	}

	if err := domain.Reschedule(ap, start, barberID, now); err != nil {
		return nil, err
	}

	if err := tx.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
