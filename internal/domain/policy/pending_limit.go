package policy

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

// PendingLimitRule: no máximo Max agendamentos ativos no futuro por cliente.
type PendingLimitRule struct {
	Max int
}

func (r PendingLimitRule) Name() string { return "pending_limit" }

func (r PendingLimitRule) Evaluate(
	ctx context.Context,
	counter Counter,
	in Input,
	_ *Decision,
) error {

	if in.Action != ActionCreate || r.Max <= 0 {
		return nil
	}

	n, err := counter.CountPendingForClient(ctx, in.ClientID, in.Now)
	if err != nil {
		return fmt.Errorf("count pending appointments: %w", err)
	}

	if n >= int64(r.Max) {
		return apperr.PolicyViolation("max_pending_appointments")
	}
	return nil
}
