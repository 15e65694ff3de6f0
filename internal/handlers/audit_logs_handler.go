package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler expõe o que o dispatcher gravou: eventos appointment_*
// e product_* da barbearia do token.
type AuditLogsHandler struct {
	logs *audit.Logger
	uc   *ucAppointment.UseCases
	loc  *time.Location
}

func NewAuditLogsHandler(
	logs *audit.Logger,
	uc *ucAppointment.UseCases,
	loc *time.Location,
) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, uc: uc, loc: loc}
}

// List: GET /me/audit-logs?entity=appointment&action=appointment_cancelled,appointment_no_show&from=2030-03-01&to=2030-03-31
// to é inclusivo (dia inteiro).
func (h *AuditLogsHandler) List(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}

	switch f.Entity {
	case "", audit.EntityAppointment, audit.EntityProduct:
	default:
		httperr.BadRequest(c, "invalid_entity", "Entidade inválida.")
		return
	}
	f.EntityID = c.Query("entity_id")

	h.write(c, f)
}

// History: GET /me/appointments/:id/history, a linha do tempo de um
// agendamento. Só quem pode ver o agendamento vê o histórico.
func (h *AuditLogsHandler) History(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	if _, err := h.uc.Get.Execute(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	f, ok := h.filter(c)
	if !ok {
		return
	}
	f.Entity = audit.EntityAppointment
	f.EntityID = id.String()

	h.write(c, f)
}

func (h *AuditLogsHandler) filter(c *gin.Context) (audit.Filter, bool) {
	f := audit.Filter{
		BarbershopID: c.GetUint(middleware.ContextBarbershopID),
		Entity:       c.Query("entity"),
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	for _, a := range strings.Split(c.Query("action"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			f.Actions = append(f.Actions, a)
		}
	}

	if s := c.Query("from"); s != "" {
		from, err := parseDate(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
			return f, false
		}
		f.From = from
	}

	if s := c.Query("to"); s != "" {
		to, err := parseDate(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida.")
			return f, false
		}
		f.To = to.AddDate(0, 0, 1)
	}

	return f, true
}

func (h *AuditLogsHandler) write(c *gin.Context, f audit.Filter) {
	page, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}
	httpresp.OK(c, page)
}
