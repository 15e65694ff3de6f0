package policy

import (
	"context"
	"time"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionReschedule Action = "reschedule"
	ActionCancel     Action = "cancel"
)

// Input descreve a operação avaliada.
// Start é o horário pedido (create/reschedule) ou o horário atual (cancel).
// CurrentStart só é preenchido na remarcação.
type Input struct {
	Action       Action
	ClientID     uint
	Start        time.Time
	CurrentStart time.Time
	LeadTime     time.Duration
	Now          time.Time
}

// Counter é a leitura de que o PendingLimitRule precisa; a transação implementa.
type Counter interface {
	CountPendingForClient(
		ctx context.Context,
		clientID uint,
		after time.Time,
	) (int64, error)
}

// Decision acumula efeitos que não bloqueiam a operação.
type Decision struct {
	RestoreVoucher bool
}

type Rule interface {
	Name() string
	Evaluate(ctx context.Context, counter Counter, in Input, d *Decision) error
}

// ===============================
// Guard
// ===============================

type Guard struct {
	rules []Rule
}

func NewGuard(rules ...Rule) *Guard {
	return &Guard{rules: rules}
}

type Settings struct {
	MaxPending         int
	CancellationNotice time.Duration
}

// Default monta as três regras da barbearia.
func Default(s Settings) *Guard {
	return NewGuard(
		PendingLimitRule{Max: s.MaxPending},
		LeadTimeRule{},
		CancellationNoticeRule{Notice: s.CancellationNotice},
	)
}

// Evaluate para na primeira violação.
func (g *Guard) Evaluate(
	ctx context.Context,
	counter Counter,
	in Input,
) (Decision, error) {

	var d Decision
	for _, r := range g.rules {
		if err := r.Evaluate(ctx, counter, in, &d); err != nil {
			return Decision{}, err
		}
	}
	return d, nil
}
