package voucher

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
)

type Kind string

const (
	KindVoucher   Kind = "voucher"
	KindPromotion Kind = "promotion"
)

type Status string

const (
	StatusActive Status = "active"
	StatusUsed   Status = "used"
)

// Ref aponta para um voucher ou uma promoção anexada ao agendamento.
type Ref struct {
	Kind Kind
	ID   uuid.UUID
}

type Voucher struct {
	Ref
	OwnerID    uint
	Status     Status
	ValidUntil *time.Time
}

// Refs monta as referências opcionais de um agendamento.
func Refs(voucherID, promotionID *uuid.UUID) []Ref {
	var refs []Ref
	if voucherID != nil {
		refs = append(refs, Ref{Kind: KindVoucher, ID: *voucherID})
	}
	if promotionID != nil {
		refs = append(refs, Ref{Kind: KindPromotion, ID: *promotionID})
	}
	return refs
}

// Validate confere dono, status e validade. A validade é inclusiva.
func Validate(v *Voucher, ownerID uint, now time.Time) error {
	if v == nil {
		return apperr.InvalidVoucher(string(KindVoucher) + "_not_found")
	}
	if v.OwnerID != ownerID {
		return apperr.InvalidVoucher(string(v.Kind) + "_not_owned")
	}
	if v.Status != StatusActive {
		return apperr.InvalidVoucher(string(v.Kind) + "_not_active")
	}
	if v.ValidUntil != nil && now.After(*v.ValidUntil) {
		return apperr.InvalidVoucher(string(v.Kind) + "_expired")
	}
	return nil
}
