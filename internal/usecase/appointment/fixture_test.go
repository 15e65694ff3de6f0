package appointment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
)

var brt = time.FixedZone("BRT", -3*60*60)

// segunda-feira, 07:00 local
var monday = time.Date(2030, 3, 4, 7, 0, 0, 0, brt)

type fixture struct {
	store   *memstore.Store
	clock   *timeutil.ManualClock
	deps    Deps
	shop    *models.Barbershop
	owner   *models.User
	barber  *models.User
	other   *models.User
	haircut *models.BarberProduct
	beard   *models.BarberProduct
	clients []*models.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memstore.New(),
		clock: timeutil.NewManualClock(monday),
	}

	f.shop = &models.Barbershop{Name: "Navalha", Slug: "navalha"}
	f.store.AddBarbershop(f.shop)

	f.owner = &models.User{BarbershopID: f.shop.ID, Name: "Dono", Role: models.RoleOwner, Active: true}
	f.barber = &models.User{BarbershopID: f.shop.ID, Name: "Rui", Role: models.RoleBarber, Active: true}
	f.other = &models.User{BarbershopID: f.shop.ID, Name: "Léo", Role: models.RoleBarber, Active: true}
	f.store.AddUser(f.owner)
	f.store.AddUser(f.barber)
	f.store.AddUser(f.other)

	f.haircut = &models.BarberProduct{BarbershopID: f.shop.ID, Name: "Corte", DurationMin: 30, Active: true}
	f.beard = &models.BarberProduct{BarbershopID: f.shop.ID, Name: "Corte + barba", DurationMin: 60, Active: true}
	f.store.AddProduct(f.haircut)
	f.store.AddProduct(f.beard)

	for _, name := range []string{"Ana", "Bia", "Caio"} {
		c := &models.Client{BarbershopID: f.shop.ID, Name: name}
		f.store.AddClient(c)
		f.clients = append(f.clients, c)
	}

	hours, err := domain.NewBusinessHours("09:00", "18:00", 30, brt)
	require.NoError(t, err)

	f.deps = Deps{
		Store: f.store,
		Clock: f.clock,
		Hours: hours,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return f
}

func at(hour, min int) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day(), hour, min, 0, 0, brt)
}

func (f *fixture) clientActor(i int) domain.Actor {
	return domain.Actor{ID: f.clients[i].ID, Role: domain.RoleClient, BarbershopID: f.shop.ID}
}

func (f *fixture) barberActor() domain.Actor {
	return domain.Actor{ID: f.barber.ID, Role: models.RoleBarber, BarbershopID: f.shop.ID}
}

func (f *fixture) book(t *testing.T, client int, start time.Time) *models.Appointment {
	t.Helper()

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.clients[client].ID,
		BarberID:  f.barber.ID,
		ProductID: f.haircut.ID,
		Start:     start,
	})
	require.NoError(t, err)
	return ap
}
