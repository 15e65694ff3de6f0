package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe devolve o perfil de quem está autenticado: barbeiro/dono ou cliente.
func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)
	ctx := c.Request.Context()

	if actor.Role == domain.RoleClient {
		var client models.Client
		if err := h.db.WithContext(ctx).First(&client, actor.ID).Error; err != nil {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": actor.Role, "client": client})
		return
	}

	var user models.User
	if err := h.db.WithContext(ctx).Preload("Barbershop").First(&user, actor.ID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role": user.Role,
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"barbershop_id": user.BarbershopID,
		},
		"barbershop": gin.H{
			"id":                  user.Barbershop.ID,
			"name":                user.Barbershop.Name,
			"slug":                user.Barbershop.Slug,
			"min_advance_minutes": user.Barbershop.MinAdvanceMinutes,
		},
	})
}
