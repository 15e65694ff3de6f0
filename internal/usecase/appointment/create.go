package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/policy"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// BarbershopID é a barbearia de quem pede (token ou slug). O barbeiro
	// precisa pertencer a ela; 0 não restringe.
	BarbershopID uint

	ClientID  uint
	BarberID  uint
	ProductID uint
	Start     time.Time
	Notes     string

	VoucherID   *uuid.UUID
	PromotionID *uuid.UUID

	// ActorID é quem pediu, para auditoria. nil = o próprio cliente pela página pública.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() { uc.deps.Metrics.ObserveOperation("create", err) }()

	start := timeutil.TruncateToMinute(in.Start)

	err = uc.deps.atomically(
		ctx,
		"create",
		lockOrder(in.BarberID),
		apperr.SlotConflict("slot_taken"),
		func(ctx context.Context, tx domain.Tx) error {
			created, err := uc.create(ctx, tx, in, start)
			if err != nil {
				return err
			}
			ap = created
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.deps.dispatch("appointment_created", ap, in.ActorID, map[string]any{
		"barber_id":  ap.BarberID,
		"client_id":  ap.ClientID,
		"start_time": ap.StartTime,
	})

	return ap, nil
}

func (uc *CreateAppointment) create(
	ctx context.Context,
	tx domain.Tx,
	in CreateAppointmentInput,
	start time.Time,
) (*models.Appointment, error) {

	now := uc.deps.Clock.Now()

	// --------------------------------------------------
	// 1️⃣ Serviço + barbeiro
	// --------------------------------------------------
	product, barber, err := catalog.New(tx).RequireBookable(ctx, in.ProductID, in.BarberID)
	if err != nil {
		return nil, err
	}

	if in.BarbershopID != 0 && barber.BarbershopID != in.BarbershopID {
		return nil, apperr.NotFound("barber_not_found")
	}

	client, err := tx.FindClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client.BarbershopID != barber.BarbershopID {
		return nil, apperr.NotFound("client_not_found")
	}

	shop, err := tx.GetBarbershopByID(ctx, barber.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Regras da barbearia
	// --------------------------------------------------
	if _, err := uc.deps.Guard.Evaluate(ctx, tx, policy.Input{
		Action:   policy.ActionCreate,
		ClientID: in.ClientID,
		Start:    start,
		LeadTime: uc.deps.leadTime(shop),
		Now:      now,
	}); err != nil {
		return nil, err
	}

	if !uc.deps.Hours.Contains(start, product.Duration()) {
		return nil, apperr.PolicyViolation("outside_business_hours")
	}

	// --------------------------------------------------
	// 3️⃣ Conflito de horário (agenda travada)
	// --------------------------------------------------
	if err := tx.LockBarber(ctx, barber.ID); err != nil {
		return nil, err
	}

	existing, err := tx.ListActiveOverlapping(ctx, barber.ID, start, start.Add(product.Duration()))
	if err != nil {
		return nil, err
	}
	if domain.HasConflict(existing, start, product.Duration(), nil) {
		return nil, apperr.SlotConflict("slot_taken")
	}

	// --------------------------------------------------
	// 4️⃣ Voucher / promoção
	// --------------------------------------------------
	refs := voucher.Refs(in.VoucherID, in.PromotionID)
	if err := validateVouchers(ctx, tx, refs, in.ClientID, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Escrita
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:              uuid.New(),
		BarbershopID:    barber.BarbershopID,
		BarberID:        barber.ID,
		ClientID:        in.ClientID,
		BarberProductID: product.ID,
		StartTime:       start,
		DurationMin:     product.DurationMin,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
		VoucherID:       in.VoucherID,
		PromotionID:     in.PromotionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := tx.InsertAppointment(ctx, ap); err != nil {
		return nil, err
	}

	for _, ref := range refs {
		if err := tx.SetVoucherStatus(ctx, ref, voucher.StatusUsed); err != nil {
			return nil, err
		}
	}

	return ap, nil
}

func validateVouchers(
	ctx context.Context,
	tx domain.Tx,
	refs []voucher.Ref,
	clientID uint,
	now time.Time,
) error {

	for _, ref := range refs {
		v, err := tx.GetVoucher(ctx, ref)
		if err != nil {
			return err
		}
		if v == nil {
			return apperr.InvalidVoucher(string(ref.Kind) + "_not_found")
		}
		if err := voucher.Validate(v, clientID, now); err != nil {
			return err
		}
	}
	return nil
}
