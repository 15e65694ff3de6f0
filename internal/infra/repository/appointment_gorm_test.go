package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/db"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/voucher"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// Integração: roda só com TEST_DATABASE_URL apontando para um Postgres descartável.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedBarber(t *testing.T, gdb *gorm.DB) (models.User, models.Client) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	shop := models.Barbershop{Name: "Teste", Slug: "teste-" + suffix}
	require.NoError(t, gdb.Create(&shop).Error)

	barber := models.User{BarbershopID: shop.ID, Name: "Rui", Email: suffix + "@teste.dev", Role: models.RoleBarber, Active: true}
	require.NoError(t, gdb.Create(&barber).Error)

	client := models.Client{BarbershopID: shop.ID, Name: "Ana", Phone: suffix}
	require.NoError(t, gdb.Create(&client).Error)

	return barber, client
}

func TestGormOverlapUsesSnapshottedDuration(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	barber, client := seedBarber(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	start := time.Date(2031, 5, 6, 13, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&models.Appointment{
		ID: uuid.New(), BarbershopID: barber.BarbershopID, BarberID: barber.ID, ClientID: client.ID,
		StartTime: start, DurationMin: 45, Status: "scheduled",
	}).Error)

	hits, err := repo.ListActiveOverlapping(ctx, barber.ID, start.Add(30*time.Minute), start.Add(60*time.Minute))
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.ListActiveOverlapping(ctx, barber.ID, start.Add(45*time.Minute), start.Add(75*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestGormUniqueSlotIsRaceLost(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	barber, client := seedBarber(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	start := time.Date(2031, 5, 6, 14, 0, 0, 0, time.UTC)
	insert := func() error {
		tx, err := repo.Begin(ctx)
		if err != nil {
			return err
		}
		err = tx.InsertAppointment(ctx, &models.Appointment{
			ID: uuid.New(), BarbershopID: barber.BarbershopID, BarberID: barber.ID, ClientID: client.ID,
			StartTime: start, DurationMin: 30, Status: "scheduled",
		})
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = insert()
		}(i)
	}
	wg.Wait()

	var ok, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, apperr.ErrRaceLost):
			lost++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, lost)
}

func TestGormVoucherStatusInTx(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	_, client := seedBarber(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	v := models.Voucher{ID: uuid.New(), BarbershopID: client.BarbershopID, ClientID: client.ID, Code: uuid.NewString()[:12], Status: "active"}
	require.NoError(t, gdb.Create(&v).Error)
	ref := voucher.Ref{Kind: voucher.KindVoucher, ID: v.ID}

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetVoucherStatus(ctx, ref, voucher.StatusUsed))
	require.NoError(t, tx.Rollback())

	var after models.Voucher
	require.NoError(t, gdb.First(&after, "id = ?", v.ID).Error)
	assert.Equal(t, "active", after.Status)

	tx, err = repo.Begin(ctx)
	require.NoError(t, err)
	got, err := tx.GetVoucher(ctx, voucher.Ref{Kind: voucher.KindVoucher, ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, tx.Rollback())
}
