package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

type Metrics struct {
	operations  *prometheus.CounterVec
	raceRetries *prometheus.CounterVec
	slotListing prometheus.Histogram
	slotsFound  prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_scheduler",
			Name:      "appointment_operations_total",
			Help:      "Operações de agendamento por resultado.",
		}, []string{"operation", "outcome"}),
		raceRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_scheduler",
			Name:      "appointment_race_retries_total",
			Help:      "Transações repetidas após perder corrida no commit.",
		}, []string{"operation"}),
		slotListing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barber_scheduler",
			Name:      "slot_listing_duration_seconds",
			Help:      "Tempo para calcular horários livres de um dia.",
			Buckets:   prometheus.DefBuckets,
		}),
		slotsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barber_scheduler",
			Name:      "slot_listing_slots",
			Help:      "Horários livres devolvidos por consulta.",
			Buckets:   prometheus.LinearBuckets(0, 4, 10),
		}),
	}

	reg.MustRegister(m.operations, m.raceRetries, m.slotListing, m.slotsFound)
	return m
}

// Outcome traduz o erro para o rótulo: "ok", o kind de negócio, ou "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := apperr.KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}

// Os métodos aceitam receptor nil para casos de uso montados sem métricas.

func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
}

func (m *Metrics) IncRaceRetry(op string) {
	if m == nil {
		return
	}
	m.raceRetries.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveSlotListing(elapsed time.Duration, slots int) {
	if m == nil {
		return
	}
	m.slotListing.Observe(elapsed.Seconds())
	m.slotsFound.Observe(float64(slots))
}
