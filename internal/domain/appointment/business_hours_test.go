package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

func defaultHours(t *testing.T) BusinessHours {
	t.Helper()
	h, err := NewBusinessHours("09:00", "18:00", 30, timeutil.Location("America/Sao_Paulo"))
	require.NoError(t, err)
	return h
}

func TestCandidatesThirtyMinuteService(t *testing.T) {
	h := defaultHours(t)
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, h.Location)

	slots := h.Candidates(day, 30*time.Minute)

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", timeutil.FormatHM(slots[0]))
	assert.Equal(t, "17:30", timeutil.FormatHM(slots[17]))
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestCandidatesNeverRunPastClosing(t *testing.T) {
	h := defaultHours(t)
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, h.Location)

	slots := h.Candidates(day, 90*time.Minute)

	require.NotEmpty(t, slots)
	assert.Equal(t, "16:30", timeutil.FormatHM(slots[len(slots)-1]))
}

func TestContains(t *testing.T) {
	h := defaultHours(t)
	at := func(hh, mm int) time.Time { return time.Date(2026, 5, 4, hh, mm, 0, 0, h.Location) }

	assert.True(t, h.Contains(at(9, 0), 30*time.Minute))
	assert.True(t, h.Contains(at(17, 30), 30*time.Minute))
	assert.True(t, h.Contains(at(10, 15), 30*time.Minute))
	assert.False(t, h.Contains(at(8, 30), 30*time.Minute))
	assert.False(t, h.Contains(at(17, 45), 30*time.Minute))
}

func TestNewBusinessHoursValidation(t *testing.T) {
	_, err := NewBusinessHours("18:00", "09:00", 30, time.UTC)
	assert.Error(t, err)

	_, err = NewBusinessHours("09:00", "18:00", 0, time.UTC)
	assert.Error(t, err)

	_, err = NewBusinessHours("nove", "18:00", 30, time.UTC)
	assert.Error(t, err)
}
