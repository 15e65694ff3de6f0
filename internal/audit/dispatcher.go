package audit

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/events"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     string
	Metadata     any
	OccurredAt   time.Time
}

// Sink recebe cada evento despachado.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// PublisherSink repassa o evento como "<entity>.<ação>" para o publicador.
type PublisherSink struct {
	Publisher events.Publisher
}

func (s PublisherSink) Write(ctx context.Context, ev Event) error {
	return s.Publisher.Publish(ctx, events.Event{
		Type:         ev.Entity + "." + strings.TrimPrefix(ev.Action, ev.Entity+"_"),
		BarbershopID: ev.BarbershopID,
		EntityID:     ev.EntityID,
		ActorID:      ev.UserID,
		Payload:      ev.Metadata,
		OccurredAt:   ev.OccurredAt,
	})
}

type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Error("audit sink failed", "action", ev.Action, "entity_id", ev.EntityID, "err", err)
			}
			cancel()
		}
	}
}

// Dispatch nunca bloqueia a API: com a fila cheia o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
