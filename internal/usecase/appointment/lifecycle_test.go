package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

func TestVoucherRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	early := &models.Voucher{BarbershopID: f.shop.ID, ClientID: f.clients[0].ID, Code: "A1"}
	late := &models.Voucher{BarbershopID: f.shop.ID, ClientID: f.clients[0].ID, Code: "B2"}
	f.store.AddVoucher(early)
	f.store.AddVoucher(late)

	create := NewCreateAppointment(f.deps)
	cancel := NewCancelAppointment(f.deps)

	a, err := create.Execute(ctx, CreateAppointmentInput{
		ClientID: f.clients[0].ID, BarberID: f.barber.ID, ProductID: f.haircut.ID, Start: at(10, 0), VoucherID: &early.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "used", f.store.VoucherStatus(early.ID))

	b, err := create.Execute(ctx, CreateAppointmentInput{
		ClientID: f.clients[0].ID, BarberID: f.barber.ID, ProductID: f.haircut.ID, Start: at(11, 0), VoucherID: &late.ID,
	})
	require.NoError(t, err)

	// 3h de aviso: voucher volta
	_, err = cancel.Execute(ctx, a.ID, f.clientActor(0))
	require.NoError(t, err)
	assert.Equal(t, "active", f.store.VoucherStatus(early.ID))

	// 1h30 de aviso: voucher fica consumido
	f.clock.Set(at(9, 30))
	_, err = cancel.Execute(ctx, b.ID, f.clientActor(0))
	require.NoError(t, err)
	assert.Equal(t, "used", f.store.VoucherStatus(late.ID))
}

func TestCancelExactlyAtNoticeRestores(t *testing.T) {
	f := newFixture(t)
	v := &models.Voucher{ClientID: f.clients[0].ID, Code: "EDGE"}
	f.store.AddVoucher(v)

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), CreateAppointmentInput{
		ClientID: f.clients[0].ID, BarberID: f.barber.ID, ProductID: f.haircut.ID, Start: at(10, 0), VoucherID: &v.ID,
	})
	require.NoError(t, err)

	f.clock.Set(at(8, 0))
	_, err = NewCancelAppointment(f.deps).Execute(context.Background(), ap.ID, f.clientActor(0))
	require.NoError(t, err)
	assert.Equal(t, "active", f.store.VoucherStatus(v.ID))
}

func TestPromotionConsumedWithAppointment(t *testing.T) {
	f := newFixture(t)
	p := &models.Promotion{ClientID: f.clients[1].ID, Title: "Primeira visita"}
	f.store.AddPromotion(p)

	_, err := NewCreateAppointment(f.deps).Execute(context.Background(), CreateAppointmentInput{
		ClientID: f.clients[1].ID, BarberID: f.barber.ID, ProductID: f.haircut.ID, Start: at(10, 0), PromotionID: &p.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "used", f.store.PromotionStatus(p.ID))
}

func TestInvalidVoucherLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := at(6, 0)
	notMine := &models.Voucher{ClientID: f.clients[1].ID, Code: "X"}
	old := &models.Voucher{ClientID: f.clients[0].ID, Code: "Y", ValidUntil: &expired}
	f.store.AddVoucher(notMine)
	f.store.AddVoucher(old)

	uc := NewCreateAppointment(f.deps)
	in := CreateAppointmentInput{
		ClientID: f.clients[0].ID, BarberID: f.barber.ID, ProductID: f.haircut.ID, Start: at(10, 0),
	}

	in.VoucherID = &notMine.ID
	_, err := uc.Execute(ctx, in)
	assert.True(t, apperr.IsBusiness(err, "voucher_not_owned"))

	in.VoucherID = &old.ID
	_, err = uc.Execute(ctx, in)
	assert.True(t, apperr.IsBusiness(err, "voucher_expired"))

	ghost := uuid.New()
	in.VoucherID = &ghost
	_, err = uc.Execute(ctx, in)
	assert.True(t, apperr.IsBusiness(err, "voucher_not_found"))

	assert.Empty(t, f.store.Appointments())
	assert.Equal(t, "active", f.store.VoucherStatus(notMine.ID))
}

func TestStateMachineClosure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	provider := f.barberActor()

	terminals := map[string]func(*models.Appointment) error{
		"completed": func(ap *models.Appointment) error {
			_, err := NewCompleteAppointment(f.deps).Execute(ctx, ap.ID, provider)
			return err
		},
		"cancelled": func(ap *models.Appointment) error {
			_, err := NewCancelAppointment(f.deps).Execute(ctx, ap.ID, provider)
			return err
		},
		"no_show": func(ap *models.Appointment) error {
			_, err := NewMarkNoShow(f.deps).Execute(ctx, ap.ID, provider)
			return err
		},
	}

	hour := 9
	for name, finish := range terminals {
		t.Run(name, func(t *testing.T) {
			ap := f.book(t, 2, at(hour, 0))
			hour++
			require.NoError(t, finish(ap))

			before, err := f.store.GetAppointment(ctx, ap.ID)
			require.NoError(t, err)

			_, err = NewConfirmAppointment(f.deps).Execute(ctx, ap.ID, provider)
			assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
			_, err = NewCompleteAppointment(f.deps).Execute(ctx, ap.ID, provider)
			assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
			_, err = NewCancelAppointment(f.deps).Execute(ctx, ap.ID, provider)
			assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
			_, err = NewMarkNoShow(f.deps).Execute(ctx, ap.ID, provider)
			assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
			_, err = NewRescheduleAppointment(f.deps).Execute(ctx, RescheduleAppointmentInput{
				AppointmentID: ap.ID, Actor: provider, NewStart: ptr(at(16, 0)),
			})
			assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

			after, err := f.store.GetAppointment(ctx, ap.ID)
			require.NoError(t, err)
			assert.Equal(t, before.Status, after.Status)
			assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
		})
	}
}

func TestConfirmThenComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, 0, at(10, 0))

	confirmed, err := NewConfirmAppointment(f.deps).Execute(ctx, ap.ID, f.barberActor())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	_, err = NewConfirmAppointment(f.deps).Execute(ctx, ap.ID, f.barberActor())
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	done, err := NewCompleteAppointment(f.deps).Execute(ctx, ap.ID, f.barberActor())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
}

func TestProviderOnlyTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, 0, at(10, 0))

	_, err := NewConfirmAppointment(f.deps).Execute(ctx, ap.ID, f.clientActor(0))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	otherBarber := domain.Actor{ID: f.other.ID, Role: models.RoleBarber, BarbershopID: f.shop.ID}
	_, err = NewCompleteAppointment(f.deps).Execute(ctx, ap.ID, otherBarber)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	owner := domain.Actor{ID: f.owner.ID, Role: models.RoleOwner, BarbershopID: f.shop.ID}
	_, err = NewConfirmAppointment(f.deps).Execute(ctx, ap.ID, owner)
	assert.NoError(t, err)
}

func TestCancelByStrangerIsForbidden(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, 0, at(10, 0))

	_, err := NewCancelAppointment(f.deps).Execute(context.Background(), ap.ID, f.clientActor(1))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestCancelUnknownAppointment(t *testing.T) {
	f := newFixture(t)
	_, err := NewCancelAppointment(f.deps).Execute(context.Background(), uuid.New(), f.clientActor(0))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGetAppointmentRestrictedToParties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, 0, at(10, 0))

	got, err := NewGetAppointment(f.deps).Execute(ctx, ap.ID, f.clientActor(0))
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Ana", got.Client.Name)

	_, err = NewGetAppointment(f.deps).Execute(ctx, ap.ID, f.clientActor(1))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func ptr[T any](v T) *T { return &v }
