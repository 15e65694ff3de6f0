package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/handlers"
	"github.com/BruksfildServices01/barber-booking-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

// Deps reúne o que as rotas precisam. DB é opcional: sem ele só sobem
// as rotas de agendamento (modo memória e testes).
type Deps struct {
	UseCases  *ucAppointment.UseCases
	Store     domain.UnitOfWork
	Clients   domain.ClientDirectory
	DB        *gorm.DB
	Audit     *audit.Dispatcher
	Gatherer  prometheus.Gatherer
	Location  *time.Location
	JWTSecret string
	// vazio libera qualquer origem
	CORSOrigins []string
	Log         *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))
	if d.Log != nil {
		r.Use(middleware.RequestLogger(d.Log))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(d.UseCases, d.Clients, d.Location)
	publicHandler := handlers.NewPublicHandler(d.UseCases, d.Clients, d.Store, d.Location)

	providers := middleware.RequireRole(models.RoleOwner, models.RoleBarber)
	owners := middleware.RequireRole(models.RoleOwner)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/products", publicHandler.ListProducts)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.GET("/:slug/availability/check", publicHandler.CheckAvailability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.JWTSecret))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", providers, appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", providers, appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			if d.DB == nil {
				return
			}

			meHandler := handlers.NewMeHandler(d.DB)
			barbershopHandler := handlers.NewBarbershopHandler(d.DB)
			barberProductHandler := handlers.NewBarberProductHandler(d.DB, d.Audit)
			clientHandler := handlers.NewClientHandler(d.DB)
			auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.UseCases, d.Location)

			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", providers, barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", owners, barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/clients", providers, clientHandler.List)
			secured.GET("/me/clients/:id/vouchers", providers, clientHandler.Vouchers)

			secured.GET("/me/products", providers, barberProductHandler.List)
			secured.POST("/me/products", owners, barberProductHandler.Create)
			secured.PATCH("/me/products/:id", owners, barberProductHandler.Update)

			secured.GET("/me/audit-logs", owners, auditLogsHandler.List)
			secured.GET("/me/appointments/:id/history", providers, auditLogsHandler.History)
		}
	}
}
