package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-seat-reservation/internal/config"
	"github.com/iliyamo/event-seat-reservation/internal/database"
	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/router"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

func main() {
	cfg := config.Load() // Load .env + environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap: %v", err)
	}
	if err := database.SeedEvent(ctx, db, cfg.EventID, cfg.EventName, cfg.TotalSeats, cfg.AvailableSeats, cfg.Version); err != nil {
		log.Fatalf("event seed: %v", err)
	}

	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	resHandler := handler.NewReservationHandler(
		eventRepo, reservationRepo, service.NewPublisher(),
		cfg.EventID, cfg.MinSeats, cfg.LimitPerReservation,
	)
	adminHandler := handler.NewAdminHandler(
		eventRepo, reservationRepo,
		cfg.AdminSecret, cfg.EventID, cfg.TotalSeats, cfg.AvailableSeats, cfg.Version,
	)

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterReservations(e, resHandler, limit, cache)
	router.RegisterAdmin(e, adminHandler)

	// Audit consumer runs its own reconnect loop for the process lifetime.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, event=%s)", addr, cfg.Env, cfg.EventID)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
