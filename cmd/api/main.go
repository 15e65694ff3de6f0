package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking-engine/internal/audit"
	"github.com/BruksfildServices01/barber-booking-engine/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking-engine/internal/db"
	domain "github.com/BruksfildServices01/barber-booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking-engine/internal/domain/policy"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/events"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking-engine/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking-engine/internal/logging"
	"github.com/BruksfildServices01/barber-booking-engine/internal/metrics"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/routes"
	"github.com/BruksfildServices01/barber-booking-engine/internal/seed"
	"github.com/BruksfildServices01/barber-booking-engine/internal/timeutil"
	ucAppointment "github.com/BruksfildServices01/barber-booking-engine/internal/usecase/appointment"
)

type store interface {
	domain.UnitOfWork
	domain.ClientDirectory
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := logging.New("barber-booking-engine", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := timeutil.Location(cfg.Scheduling.Timezone)

	hours, err := domain.NewBusinessHours(
		cfg.Scheduling.OpenAt,
		cfg.Scheduling.CloseAt,
		cfg.Scheduling.SlotMinutes,
		loc,
	)
	if err != nil {
		return err
	}

	// ======================================================
	// STORE
	// ======================================================
	var (
		st    store
		db    *gorm.DB
		sinks []audit.Sink
	)

	switch cfg.StoreDriver {
	case "memory":
		mem := memstore.New()
		loadDemo(mem, cfg, log)
		st = mem
	default:
		db, err = dbpkg.NewDB(ctx, cfg, log)
		if err != nil {
			return err
		}
		st = repository.NewAppointmentGormRepository(db)
		sinks = append(sinks, audit.New(db))
	}

	// ======================================================
	// LOCK + EVENTS
	// ======================================================
	var locker lock.Locker = lock.NopLocker{}
	if cfg.RedisURL != "" {
		client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait)
		log.Info("redis barber lock enabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, audit.PublisherSink{Publisher: publisher})
		log.Info("kafka lifecycle events enabled", "topic", cfg.KafkaTopic)
	}
	defer publisher.Close()

	dispatcher := audit.NewDispatcher(log, sinks...)
	defer dispatcher.Close()

	// ======================================================
	// METRICS
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// ======================================================
	// USE CASES + HTTP
	// ======================================================
	uc := ucAppointment.NewUseCases(ucAppointment.Deps{
		Store: st,
		Clock: timeutil.SystemClock{Loc: loc},
		Hours: hours,
		Guard: policy.Default(policy.Settings{
			MaxPending:         cfg.Scheduling.MaxPending,
			CancellationNotice: cfg.Scheduling.CancellationNotice,
		}),
		Locker:      locker,
		Audit:       dispatcher,
		Metrics:     metrics.New(reg),
		Log:         log,
		DefaultLead: cfg.Scheduling.DefaultLead(),
		Timeout:     cfg.StoreTimeout,
	})

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		UseCases:    uc,
		Store:       st,
		Clients:     st,
		DB:          db,
		Audit:       dispatcher,
		Gatherer:    reg,
		Location:    loc,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadDemo popula o modo memória e imprime tokens para testar a API.
func loadDemo(mem *memstore.Store, cfg *config.Config, log *slog.Logger) {
	data := seed.Generate(2, 5, 30*24*time.Hour, time.Now())
	data.LoadMemory(mem)

	owner, err := seed.DevToken(cfg.JWTSecret, data.Owner.ID, data.Shop.ID, models.RoleOwner, 24*time.Hour)
	if err != nil {
		log.Warn("sign owner token", "err", err)
		return
	}
	log.Info("demo barbershop loaded",
		"slug", data.Shop.Slug,
		"owner_token", owner,
	)
	for _, b := range data.Barbers {
		tok, err := seed.DevToken(cfg.JWTSecret, b.ID, data.Shop.ID, models.RoleBarber, 24*time.Hour)
		if err != nil {
			continue
		}
		log.Info("demo barber", "id", b.ID, "name", b.Name, "token", tok)
	}
	if len(data.Clients) > 0 {
		c := data.Clients[0]
		tok, err := seed.DevToken(cfg.JWTSecret, c.ID, data.Shop.ID, domain.RoleClient, 24*time.Hour)
		if err == nil {
			log.Info("demo client", "id", c.ID, "voucher", data.Vouchers[0].ID, "token", tok)
		}
	}
}
