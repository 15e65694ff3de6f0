package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

func TestHasConflict(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	self := uuid.New()
	existing := []models.Appointment{
		{ID: self, StartTime: at(10, 0), DurationMin: 30, Status: string(StatusScheduled)},
		{ID: uuid.New(), StartTime: at(14, 0), DurationMin: 60, Status: string(StatusConfirmed)},
		{ID: uuid.New(), StartTime: at(16, 0), DurationMin: 60, Status: string(StatusCancelled)},
		{ID: uuid.New(), StartTime: at(17, 0), DurationMin: 60, Status: string(StatusNoShow)},
	}

	cases := []struct {
		name    string
		start   time.Time
		dur     time.Duration
		exclude *uuid.UUID
		want    bool
	}{
		{"overlaps start", at(10, 15), 30 * time.Minute, nil, true},
		{"back to back after", at(10, 30), 30 * time.Minute, nil, false},
		{"back to back before", at(9, 30), 30 * time.Minute, nil, false},
		{"covers whole", at(9, 30), 2 * time.Hour, nil, true},
		{"inside confirmed", at(14, 30), 15 * time.Minute, nil, true},
		{"cancelled does not block", at(16, 0), time.Hour, nil, false},
		{"no show does not block", at(17, 15), 30 * time.Minute, nil, false},
		{"excluded self", at(10, 0), 30 * time.Minute, &self, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasConflict(existing, tc.start, tc.dur, tc.exclude))
		})
	}
}

func TestHasConflictUsesSnapshottedDuration(t *testing.T) {
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	// produto hoje dura 30, mas o agendamento foi criado com 60
	existing := []models.Appointment{
		{ID: uuid.New(), StartTime: start, DurationMin: 60, Status: string(StatusScheduled)},
	}

	assert.True(t, HasConflict(existing, start.Add(45*time.Minute), 30*time.Minute, nil))
}
