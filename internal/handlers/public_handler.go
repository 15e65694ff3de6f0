package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking-engine/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página de reserva sem login, resolvida pelo slug.
type PublicHandler struct {
	uc      *ucAppointment.UseCases
	clients domain.ClientDirectory
	catalog catalog.Lookup
	loc     *time.Location
}

func NewPublicHandler(
	uc *ucAppointment.UseCases,
	clients domain.ClientDirectory,
	src catalog.Source,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		uc:      uc,
		clients: clients,
		catalog: catalog.New(src),
		loc:     loc,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string     `json:"client_name" binding:"required"`
	ClientPhone string     `json:"client_phone" binding:"required"`
	ClientEmail string     `json:"client_email"`
	BarberID    uint       `json:"barber_id" binding:"required"`
	ProductID   uint       `json:"product_id" binding:"required"`
	Date        string     `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string     `json:"time" binding:"required"` // HH:mm
	Notes       string     `json:"notes"`
	VoucherID   *uuid.UUID `json:"voucher_id"`
	PromotionID *uuid.UUID `json:"promotion_id"`
}

////////////////////////////////////////////////////////
// PRODUCTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	products, err := h.clients.ListActiveProducts(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   products,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailabilityForClient(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	productID, err1 := strconv.ParseUint(c.Query("product_id"), 10, 64)
	barberID, err2 := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	if dateStr == "" || err1 != nil || err2 != nil {
		httperr.BadRequest(c, "missing_params", "Data, serviço e barbeiro obrigatórios.")
		return
	}

	date, err := parseDate(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if !h.barberOf(c, shop, uint(barberID)) {
		return
	}

	slots, err := h.uc.GetAvailability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  uint(barberID),
		ProductID: uint(productID),
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Slots(c, dateStr, slots)
}

func (h *PublicHandler) CheckAvailability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	productID, err1 := strconv.ParseUint(c.Query("product_id"), 10, 64)
	barberID, err2 := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	start, err3 := parseDateTime(h.loc, c.Query("date"), c.Query("time"))
	if err1 != nil || err2 != nil || err3 != nil {
		httperr.BadRequest(c, "missing_params", "Data, hora, serviço e barbeiro obrigatórios.")
		return
	}

	if !h.barberOf(c, shop, uint(barberID)) {
		return
	}

	free, err := h.uc.CheckAvailability.Execute(c.Request.Context(), uint(barberID), start, uint(productID))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": free})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	if !h.barberOf(c, shop, req.BarberID) {
		return
	}

	client, err := h.clients.GetOrCreateClient(
		c.Request.Context(),
		shop.ID,
		req.ClientName,
		req.ClientPhone,
		req.ClientEmail,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		ClientID:     client.ID,
		BarberID:     req.BarberID,
		ProductID:    req.ProductID,
		Start:        start,
		Notes:        req.Notes,
		VoucherID:    req.VoucherID,
		PromotionID:  req.PromotionID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.clients.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return shop, true
}

// barberOf garante que o barbeiro pedido atende na barbearia do slug.
func (h *PublicHandler) barberOf(c *gin.Context, shop *models.Barbershop, barberID uint) bool {
	barber, err := h.catalog.ActiveBarber(c.Request.Context(), barberID)
	if err == nil && barber.BarbershopID != shop.ID {
		err = apperr.NotFound("barber_not_found")
	}
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	return true
}
