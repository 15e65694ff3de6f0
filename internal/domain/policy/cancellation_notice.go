package policy

import (
	"context"
	"time"
)

// CancellationNoticeRule não bloqueia o cancelamento: decide se o voucher volta.
// Com aviso >= Notice o voucher é devolvido; dentro da janela fica consumido.
type CancellationNoticeRule struct {
	Notice time.Duration
}

func (r CancellationNoticeRule) Name() string { return "cancellation_notice" }

func (r CancellationNoticeRule) Evaluate(
	_ context.Context,
	_ Counter,
	in Input,
	d *Decision,
) error {

	if in.Action != ActionCancel {
		return nil
	}

	d.RestoreVoucher = in.Start.Sub(in.Now) >= r.Notice
	return nil
}
