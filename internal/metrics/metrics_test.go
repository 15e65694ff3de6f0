package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "slot_conflict", Outcome(apperr.SlotConflict("slot_taken")))
	assert.Equal(t, "error", Outcome(errors.New("db down")))
}

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("create", nil)
	m.ObserveOperation("create", apperr.SlotConflict("slot_taken"))
	m.ObserveOperation("create", apperr.SlotConflict("slot_taken"))
	m.IncRaceRetry("create")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("create", "slot_conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.raceRetries.WithLabelValues("create")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveOperation("cancel", nil)
		m.IncRaceRetry("cancel")
		m.ObserveSlotListing(time.Millisecond, 3)
	})
}
