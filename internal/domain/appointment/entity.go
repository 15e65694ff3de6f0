package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, actorID uint, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = &actorID
	ap.UpdatedAt = now
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &now
	ap.UpdatedAt = now
	return nil
}

// Reschedule move o agendamento. Trocar de barbeiro desfaz a confirmação.
func Reschedule(
	ap *models.Appointment,
	start time.Time,
	barberID uint,
	now time.Time,
) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	if barberID != ap.BarberID {
		ap.Status = string(StatusScheduled)
		ap.ConfirmedAt = nil
	}

	ap.BarberID = barberID
	ap.StartTime = start
	ap.UpdatedAt = now
	return nil
}
