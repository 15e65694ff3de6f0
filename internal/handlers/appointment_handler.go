package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc      *ucAppointment.UseCases
	clients domain.ClientDirectory
	loc     *time.Location
}

func NewAppointmentHandler(
	uc *ucAppointment.UseCases,
	clients domain.ClientDirectory,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		uc:      uc,
		clients: clients,
		loc:     loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// Barbeiro/dono informa o cliente; cliente autenticado reserva para si.
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	BarberID    uint       `json:"barber_id"`
	ProductID   uint       `json:"product_id" binding:"required"`
	Date        string     `json:"date" binding:"required"`
	Time        string     `json:"time" binding:"required"`
	Notes       string     `json:"notes"`
	VoucherID   *uuid.UUID `json:"voucher_id"`
	PromotionID *uuid.UUID `json:"promotion_id"`
}

type RescheduleAppointmentRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	BarberID *uint  `json:"barber_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	clientID, barberID, ok := h.resolveParties(c, actor, req)
	if !ok {
		return
	}

	// barbeiro e cliente precisam ser da barbearia do token
	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: actor.BarbershopID,
		ClientID:     clientID,
		BarberID:     barberID,
		ProductID:    req.ProductID,
		Start:        start,
		Notes:        req.Notes,
		VoucherID:    req.VoucherID,
		PromotionID:  req.PromotionID,
		ActorID:      &actor.ID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// resolveParties decide cliente e barbeiro conforme o papel de quem reserva.
func (h *AppointmentHandler) resolveParties(
	c *gin.Context,
	actor domain.Actor,
	req CreateAppointmentRequest,
) (uint, uint, bool) {

	if actor.Role == domain.RoleClient {
		if req.BarberID == 0 {
			httperr.BadRequest(c, "missing_barber", "Barbeiro obrigatório.")
			return 0, 0, false
		}
		return actor.ID, req.BarberID, true
	}

	barberID := req.BarberID
	if barberID == 0 || actor.Role == models.RoleBarber {
		barberID = actor.ID
	}

	if req.ClientID != 0 {
		return req.ClientID, barberID, true
	}

	if req.ClientPhone == "" || req.ClientName == "" {
		httperr.BadRequest(c, "missing_client", "Cliente obrigatório.")
		return 0, 0, false
	}

	client, err := h.clients.GetOrCreateClient(
		c.Request.Context(),
		actor.BarbershopID,
		req.ClientName,
		req.ClientPhone,
		req.ClientEmail,
	)
	if err != nil {
		httperr.FromError(c, err)
		return 0, 0, false
	}

	return client.ID, barberID, true
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.uc.ListByDate.Execute(c.Request.Context(), scheduleOwner(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_period", "Ano e mês obrigatórios.")
		return
	}

	out, err := h.uc.ListByMonth.Execute(c.Request.Context(), scheduleOwner(c), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

// scheduleOwner: o dono pode ver a agenda de outro barbeiro via ?barber_id.
func scheduleOwner(c *gin.Context) uint {
	actor := middleware.Actor(c)
	if actor.Role == models.RoleOwner {
		if id, err := strconv.ParseUint(c.Query("barber_id"), 10, 64); err == nil && id > 0 {
			return uint(id)
		}
	}
	return actor.ID
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucAppointment.RescheduleAppointmentInput{
		AppointmentID: id,
		Actor:         middleware.Actor(c),
		NewBarberID:   req.BarberID,
	}

	if req.Date != "" || req.Time != "" {
		start, err := parseDateTime(h.loc, req.Date, req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
			return
		}
		in.NewStart = &start
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

type transitionFunc func(c *gin.Context, id uuid.UUID, actor domain.Actor) (*models.Appointment, error)

func (h *AppointmentHandler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseAppointmentID(c)
		if !ok {
			return
		}

		ap, err := fn(c, id, middleware.Actor(c))
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(func(c *gin.Context, id uuid.UUID, actor domain.Actor) (*models.Appointment, error) {
		return h.uc.Cancel.Execute(c.Request.Context(), id, actor)
	})(c)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(func(c *gin.Context, id uuid.UUID, actor domain.Actor) (*models.Appointment, error) {
		return h.uc.Confirm.Execute(c.Request.Context(), id, actor)
	})(c)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(func(c *gin.Context, id uuid.UUID, actor domain.Actor) (*models.Appointment, error) {
		return h.uc.Complete.Execute(c.Request.Context(), id, actor)
	})(c)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(func(c *gin.Context, id uuid.UUID, actor domain.Actor) (*models.Appointment, error) {
		return h.uc.MarkNoShow.Execute(c.Request.Context(), id, actor)
	})(c)
}

func parseAppointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return uuid.Nil, false
	}
	return id, true
}
