package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// HasConflict aplica o teste semiaberto contra agendamentos ativos,
// sempre com a duração congelada de cada um.
// exclude ignora o próprio agendamento numa remarcação.
func HasConflict(
	existing []models.Appointment,
	start time.Time,
	duration time.Duration,
	exclude *uuid.UUID,
) bool {
	end := start.Add(duration)

	for i := range existing {
		ap := &existing[i]

		if exclude != nil && ap.ID == *exclude {
			continue
		}
		if !Status(ap.Status).IsActive() {
			continue
		}
		if timeutil.Overlaps(start, end, ap.StartTime, ap.EndTime()) {
			return true
		}
	}

	return false
}
