package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// CheckAvailability responde para um único início com o mesmo critério da listagem:
// dentro do expediente, no futuro e sem conflito.
type CheckAvailability struct {
	deps Deps
}

func NewCheckAvailability(deps Deps) *CheckAvailability {
	return &CheckAvailability{deps: deps.withDefaults()}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	barberID uint,
	start time.Time,
	productID uint,
) (bool, error) {

	product, barber, err := catalog.New(uc.deps.Store).RequireBookable(ctx, productID, barberID)
	if err != nil {
		return false, err
	}

	start = timeutil.TruncateToMinute(start)
	duration := product.Duration()

	if !uc.deps.Hours.Contains(start, duration) {
		return false, nil
	}
	if !start.After(uc.deps.Clock.Now()) {
		return false, nil
	}

	existing, err := uc.deps.Store.ListActiveOverlapping(ctx, barber.ID, start, start.Add(duration))
	if err != nil {
		return false, translate(err)
	}

	return !domain.HasConflict(existing, start, duration, nil), nil
}
