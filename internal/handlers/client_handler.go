package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (BARBEIRO)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := c.GetUint(middleware.ContextBarbershopID)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// VOUCHERS DO CLIENTE
// ======================================================

// Vouchers lista vouchers e promoções de um cliente, para o barbeiro
// saber o que pode ser anexado a uma reserva.
func (h *ClientHandler) Vouchers(c *gin.Context) {
	barbershopID := c.GetUint(middleware.ContextBarbershopID)
	clientID := c.Param("id")
	ctx := c.Request.Context()

	var vouchers []models.Voucher
	if err := h.db.WithContext(ctx).
		Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
		Order("created_at DESC").
		Find(&vouchers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vouchers", "Erro ao listar vouchers.")
		return
	}

	var promotions []models.Promotion
	if err := h.db.WithContext(ctx).
		Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
		Order("created_at DESC").
		Find(&promotions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_promotions", "Erro ao listar promoções.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouchers":   vouchers,
		"promotions": promotions,
	})
}
