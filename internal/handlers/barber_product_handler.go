package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

// BarberProductHandler mantém o catálogo. Mudar a duração não afeta
// agendamentos já criados: eles guardam a duração do momento da reserva.
type BarberProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberProductHandler(db *gorm.DB, audit *audit.Dispatcher) *BarberProductHandler {
	return &BarberProductHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateBarberProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
}

type UpdateBarberProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberProductHandler) List(c *gin.Context) {
	barbershopID := c.GetUint(middleware.ContextBarbershopID)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if active, err := strconv.ParseBool(activeStr); err == nil {
		q = q.Where("active = ?", active)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *BarberProductHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product := models.BarberProduct{
		BarbershopID: actor.BarbershopID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       true,
		Category:     strings.ToLower(req.Category),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar serviço.")
		return
	}

	h.dispatch(actor.BarbershopID, actor.ID, "product_created", product)
	c.JSON(http.StatusCreated, product)
}

func (h *BarberProductHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)

	var product models.BarberProduct
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", c.Param("id"), actor.BarbershopID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar serviço.")
		return
	}

	var req UpdateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DurationMin != nil {
		product.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao salvar serviço.")
		return
	}

	h.dispatch(actor.BarbershopID, actor.ID, "product_updated", product)
	c.JSON(http.StatusOK, product)
}

func (h *BarberProductHandler) dispatch(shopID, userID uint, action string, p models.BarberProduct) {
	h.audit.Dispatch(audit.Event{
		BarbershopID: shopID,
		UserID:       &userID,
		Action:       action,
		Entity:       audit.EntityProduct,
		EntityID:     strconv.FormatUint(uint64(p.ID), 10),
		Metadata: map[string]any{
			"duration_min": p.DurationMin,
			"active":       p.Active,
		},
	})
}
