package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-seat-reservation/internal/config"
    "github.com/iliyamo/train-seat-reservation/internal/database"
    "github.com/iliyamo/train-seat-reservation/internal/handler"
    "github.com/iliyamo/train-seat-reservation/internal/middleware"
    "github.com/iliyamo/train-seat-reservation/internal/queue"
    "github.com/iliyamo/train-seat-reservation/internal/repository"
    "github.com/iliyamo/train-seat-reservation/internal/router"
    "github.com/iliyamo/train-seat-reservation/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    if err := godotenv.Load(); err == nil {
        log.Println("loaded configuration from .env")
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connect failed: %v", err)
    }
    defer db.Close()

    seatRepo := repository.NewSeatRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    svc := service.NewReservationService(seatRepo)
    svc.MaxGroupSize = cfg.MaxGroupSize
    svc.Publish = queue.PublishSeatsReserved

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)

    // Redis is optional: without it the seat routes simply run
    // without rate limiting and the listing without a cache.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    listCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    router.RegisterSeats(e, handler.NewSeatHandler(svc, seatRepo), cfg.JWTSecret, listCache, limiter)

    // Background consumer for reservation events; reconnects on its own.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
