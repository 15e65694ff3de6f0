package appointment

import "github.com/BruksfildServices01/barber-booking-engine/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses ocupam a agenda do barbeiro.
var ActiveStatuses = []Status{StatusScheduled, StatusConfirmed}

func ActiveStatusValues() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ===============================
// Validations
// ===============================

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.InvalidTransition("invalid_state")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanConfirm(current Status) error {
	return CanTransition(current, StatusConfirmed)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func CanMarkNoShow(current Status) error {
	return CanTransition(current, StatusNoShow)
}

// CanReschedule: só agendamentos que ainda ocupam a agenda podem mudar de horário.
func CanReschedule(current Status) error {
	if !current.IsActive() {
		return apperr.InvalidTransition("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
