package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/config"
	"github.com/iliyamo/train-ticket-reservation/internal/database"
	"github.com/iliyamo/train-ticket-reservation/internal/handler"
	"github.com/iliyamo/train-ticket-reservation/internal/middleware"
	"github.com/iliyamo/train-ticket-reservation/internal/queue"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
	"github.com/iliyamo/train-ticket-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	e := echo.New()

	// Redis backs rate limiting and response caching. A nil client
	// degrades both to no-ops.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	carriageTypes := repository.NewCarriageTypeRepo(db)
	trains := repository.NewTrainRepo(db)
	stations := repository.NewStationRepo(db)
	routes := repository.NewRouteRepo(db)
	crews := repository.NewCrewRepo(db)
	trips := repository.NewTripRepo(db)
	orders := repository.NewOrderRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	catalog := handler.NewCatalogHandler(carriageTypes, trains, stations, routes, crews)
	tripHandler := handler.NewTripHandler(trips)
	orderHandler := handler.NewOrderHandler(orders, trips)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterCatalog(e, catalog, cfg.JWTSecret, cacheMW)
	router.RegisterTrips(e, tripHandler, cfg.JWTSecret, cacheMW)
	router.RegisterOrders(e, orderHandler, cfg.JWTSecret)

	// The consumer reconnects on broker failures and never stops the
	// HTTP server.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
