package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking-engine/internal/db"
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

func TestFilterNormalized(t *testing.T) {
	f := Filter{Page: -1, Limit: 1000}.normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultLimit, f.Limit)

	f = Filter{Page: 3, Limit: 10}.normalized()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestListRequiresBarbershop(t *testing.T) {
	_, err := New(nil).List(context.Background(), Filter{})
	assert.Error(t, err)
}

func TestListAppointmentHistory(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	logs := New(gdb)

	shop := models.Barbershop{Name: "Teste", Slug: "audit-" + uuid.NewString()[:8]}
	require.NoError(t, gdb.Create(&shop).Error)

	apID := uuid.NewString()
	base := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	barberID := uint(7)

	for i, ev := range []Event{
		{Action: "appointment_created", Entity: EntityAppointment, EntityID: apID, Metadata: map[string]any{"start_time": base}},
		{Action: "appointment_confirmed", Entity: EntityAppointment, EntityID: apID, UserID: &barberID},
		{Action: "appointment_cancelled", Entity: EntityAppointment, EntityID: apID, Metadata: map[string]any{"voucher_restored": true}},
		{Action: "product_updated", Entity: EntityProduct, EntityID: "3"},
		{Action: "appointment_created", Entity: EntityAppointment, EntityID: uuid.NewString()},
	} {
		ev.BarbershopID = shop.ID
		ev.OccurredAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, logs.Write(ctx, ev))
	}

	t.Run("timeline of one appointment, newest first", func(t *testing.T) {
		page, err := logs.List(ctx, Filter{BarbershopID: shop.ID, Entity: EntityAppointment, EntityID: apID})
		require.NoError(t, err)

		require.EqualValues(t, 3, page.Total)
		assert.Equal(t, "appointment_cancelled", page.Logs[0].Action)
		assert.Equal(t, "appointment_created", page.Logs[2].Action)
		assert.JSONEq(t, `{"voucher_restored":true}`, string(page.Logs[0].Metadata))
		assert.Equal(t, &barberID, page.Logs[1].UserID)
	})

	t.Run("by action", func(t *testing.T) {
		page, err := logs.List(ctx, Filter{BarbershopID: shop.ID, Actions: []string{"appointment_created"}})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("half-open time range", func(t *testing.T) {
		page, err := logs.List(ctx, Filter{BarbershopID: shop.ID, From: base.Add(time.Hour), To: base.Add(3 * time.Hour)})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := logs.List(ctx, Filter{BarbershopID: shop.ID, Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 5, page.Total)
		assert.Len(t, page.Logs, 2)
	})

	t.Run("other shops see nothing", func(t *testing.T) {
		page, err := logs.List(ctx, Filter{BarbershopID: shop.ID + 100000})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Logs)
	})
}
