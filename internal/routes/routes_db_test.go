package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	"github.com/BruksfildServices01/barber-booking-engine/internal/db"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

// Integração das rotas que dependem do gorm: roda só com TEST_DATABASE_URL.

type dbServer struct {
	server
	owner   models.User
	client  models.Client
	voucher models.Voucher
}

func (s *dbServer) ownerToken(t *testing.T) string {
	return token(t, s.owner.ID, s.shop.ID, models.RoleOwner)
}

func (s *dbServer) barberToken(t *testing.T) string {
	return token(t, s.barber.ID, s.shop.ID, models.RoleBarber)
}

func newDBServer(t *testing.T) *dbServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	s := &dbServer{}
	suffix := uuid.NewString()[:8]

	s.shop = &models.Barbershop{Name: "Navalha", Slug: "navalha-" + suffix}
	require.NoError(t, gdb.Create(s.shop).Error)

	s.owner = models.User{BarbershopID: s.shop.ID, Name: "Dono", Email: "dono-" + suffix + "@teste.dev", Role: models.RoleOwner, Active: true}
	require.NoError(t, gdb.Create(&s.owner).Error)
	s.barber = &models.User{BarbershopID: s.shop.ID, Name: "Rui", Email: "rui-" + suffix + "@teste.dev", Role: models.RoleBarber, Active: true}
	require.NoError(t, gdb.Create(s.barber).Error)
	s.cut = &models.BarberProduct{BarbershopID: s.shop.ID, Name: "Corte", DurationMin: 30, Active: true}
	require.NoError(t, gdb.Create(s.cut).Error)

	s.client = models.Client{BarbershopID: s.shop.ID, Name: "Ana", Phone: suffix}
	require.NoError(t, gdb.Create(&s.client).Error)
	s.voucher = models.Voucher{ID: uuid.New(), BarbershopID: s.shop.ID, ClientID: s.client.ID, Code: "V" + suffix, Status: "active"}
	require.NoError(t, gdb.Create(&s.voucher).Error)

	hours, err := domain.NewBusinessHours("09:00", "18:00", 30, brt)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := audit.NewDispatcher(log, audit.New(gdb))
	t.Cleanup(dispatcher.Close)

	repo := repository.NewAppointmentGormRepository(gdb)
	uc := ucAppointment.NewUseCases(ucAppointment.Deps{
		Store: repo,
		Clock: timeutil.NewManualClock(time.Date(2030, 3, 4, 7, 0, 0, 0, brt)),
		Hours: hours,
		Audit: dispatcher,
		Log:   log,
	})

	s.engine = gin.New()
	RegisterRoutes(s.engine, Deps{
		UseCases:  uc,
		Store:     repo,
		Clients:   repo,
		DB:        gdb,
		Audit:     dispatcher,
		Location:  brt,
		JWTSecret: secret,
	})
	return s
}

func (s *dbServer) book(t *testing.T, hm string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/me/appointments", s.barberToken(t), map[string]any{
		"client_id":  s.client.ID,
		"product_id": s.cut.ID,
		"date":       "2030-03-04",
		"time":       hm,
	})
}

func TestDBMeShowsShop(t *testing.T) {
	s := newDBServer(t)

	w := s.do(t, http.MethodGet, "/api/me", s.ownerToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), s.shop.Slug)

	w = s.do(t, http.MethodGet, "/api/me", token(t, s.client.ID, s.shop.ID, domain.RoleClient), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)
}

func TestDBShopLeadTimeDrivesBooking(t *testing.T) {
	s := newDBServer(t)

	w := s.do(t, http.MethodPatch, "/api/me/barbershop", s.barberToken(t), map[string]any{"min_advance_minutes": 240})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/me/barbershop", s.ownerToken(t), map[string]any{"min_advance_minutes": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/me/barbershop", s.ownerToken(t), map[string]any{"min_advance_minutes": 240})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// agora 07:00: 10:00 fica a 3h, abaixo das 4h exigidas
	w = s.book(t, "10:00")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "lead_time")

	w = s.book(t, "11:30")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestDBProductsAndClientVouchers(t *testing.T) {
	s := newDBServer(t)

	w := s.do(t, http.MethodPost, "/api/me/products", s.barberToken(t), map[string]any{
		"name": "Pigmentação", "duration_min": 90, "price": 120,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/me/products", s.ownerToken(t), map[string]any{
		"name": "Pigmentação", "duration_min": 90, "price": 120,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.BarberProduct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 90, product.DurationMin)

	w = s.do(t, http.MethodGet, "/api/me/products", s.barberToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pigmentação")

	w = s.do(t, http.MethodGet, "/api/me/clients", s.barberToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/me/clients/%d/vouchers", s.client.ID), s.barberToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), s.voucher.Code)
}

func TestDBAppointmentHistory(t *testing.T) {
	s := newDBServer(t)

	w := s.book(t, "10:00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	w = s.do(t, http.MethodPatch, "/api/me/appointments/"+ap.ID.String()+"/cancel", s.barberToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page audit.Page
	require.Eventually(t, func() bool {
		w := s.do(t, http.MethodGet, "/api/me/appointments/"+ap.ID.String()+"/history", s.barberToken(t), nil)
		if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &page) != nil {
			return false
		}
		return page.Total == 2
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, "appointment_cancelled", page.Logs[0].Action)
	assert.Equal(t, "appointment_created", page.Logs[1].Action)

	w = s.do(t, http.MethodGet, "/api/me/audit-logs?entity=appointment&action=appointment_cancelled", s.ownerToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Total)

	w = s.do(t, http.MethodGet, "/api/me/audit-logs?entity=invoice", s.ownerToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/me/audit-logs", s.barberToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/me/appointments/"+uuid.NewString()+"/history", s.barberToken(t), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
