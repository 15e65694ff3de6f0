package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
)

// GetAvailability lista os horários livres de um dia. É leitura de snapshot,
// sem lock: o create revalida tudo na transação.
type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps.withDefaults()}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	began := time.Now()

	product, barber, err := catalog.New(uc.deps.Store).RequireBookable(ctx, in.ProductID, in.BarberID)
	if err != nil {
		return nil, err
	}

	duration := product.Duration()
	candidates := uc.deps.Hours.Candidates(in.Date, duration)
	if len(candidates) == 0 {
		return []domain.TimeSlot{}, nil
	}

	dayOpen, dayClose := uc.deps.Hours.Window(in.Date)
	existing, err := uc.deps.Store.ListActiveOverlapping(ctx, barber.ID, dayOpen, dayClose)
	if err != nil {
		return nil, translate(err)
	}

	now := uc.deps.Clock.Now()

	slots := make([]domain.TimeSlot, 0, len(candidates))
	for _, start := range candidates {
		if !start.After(now) {
			continue
		}
		if domain.HasConflict(existing, start, duration, nil) {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start: start,
			End:   start.Add(duration),
		})
	}

	uc.deps.Metrics.ObserveSlotListing(time.Since(began), len(slots))
	return slots, nil
}
