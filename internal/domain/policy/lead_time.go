package policy

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

// LeadTimeRule: o início precisa estar ao menos LeadTime no futuro.
// Na remarcação vale também para o horário atual (aviso mínimo para mexer).
type LeadTimeRule struct{}

func (LeadTimeRule) Name() string { return "lead_time" }

func (LeadTimeRule) Evaluate(
	_ context.Context,
	_ Counter,
	in Input,
	_ *Decision,
) error {

	switch in.Action {
	case ActionCreate:
		if tooSoon(in.Start, in.Now, in.LeadTime) {
			return apperr.PolicyViolation("lead_time")
		}
	case ActionReschedule:
		if tooSoon(in.CurrentStart, in.Now, in.LeadTime) {
			return apperr.PolicyViolation("modification_notice")
		}
		if tooSoon(in.Start, in.Now, in.LeadTime) {
			return apperr.PolicyViolation("lead_time")
		}
	}
	return nil
}

// tooSoon: passado ou "agora" nunca vale, mesmo com antecedência zero.
func tooSoon(start, now time.Time, lead time.Duration) bool {
	if !start.After(now) {
		return true
	}
	return start.Before(now.Add(lead))
}
