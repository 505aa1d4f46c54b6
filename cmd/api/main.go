package main

// @title WeMeet Microservice API
// @version 1.0.0
// @description Backend service for finding a fair meeting point for a group. Computes the participants' midpoint, ranks candidate regions in Seoul and assembles place recommendations through an external recommendation service.
// @description
// @description Main capabilities:
// @description - Midpoint and candidate region computation from participant coordinates
// @description - Meetup sessions with participants, manual locations, purpose and filter tags
// @description - Place recommendations anchored to the selected region
// @description - Reference data: hotspots, friend profiles, purpose catalog
// @description - Personal calendar events

// @contact.name API Support
// @contact.email support@wemeet.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/wemeet-microservice/docs/swagger"
	"github.com/wemeet-microservice/internal/config"
	httpDelivery "github.com/wemeet-microservice/internal/delivery/http"
	"github.com/wemeet-microservice/internal/delivery/http/handler"
	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/infrastructure/recommender"
	"github.com/wemeet-microservice/internal/pkg/logger"
	"github.com/wemeet-microservice/internal/repository/cache"
	"github.com/wemeet-microservice/internal/repository/postgres"
	redisRepo "github.com/wemeet-microservice/internal/repository/redis"
	"github.com/wemeet-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting WeMeet Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	hotspotRepo := postgres.NewHotspotRepository(db)
	friendRepo := postgres.NewFriendRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.Session.TTL)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	recommenderRepo := recommender.NewClient(&cfg.Recommender, log)

	log.Info("Repositories initialized")

	// 7. Load hotspots: seed the table on first run, fall back to the
	// built-in list if the table cannot be read
	if err := hotspotRepo.Seed(ctx, domain.DefaultHotspots()); err != nil {
		log.Warn("Failed to seed hotspots", zap.Error(err))
	}
	hotspots, err := hotspotRepo.GetAll(ctx)
	if err != nil || len(hotspots) == 0 {
		log.Warn("Falling back to built-in hotspot list", zap.Error(err))
		hotspots = domain.DefaultHotspots()
	}
	log.Info("Hotspots loaded", zap.Int("count", len(hotspots)))

	// 8. Initialize use cases
	meetupUC := usecase.NewMeetupUseCase(sessionRepo, friendRepo, streamRepo, hotspots, log)
	recommendationUC := usecase.NewRecommendationUseCase(
		sessionRepo,
		recommenderRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.RecommendationTTL,
	)
	referenceUC := usecase.NewReferenceUseCase(hotspotRepo, friendRepo, log)
	eventUC := usecase.NewEventUseCase(eventRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	sessionHandler := handler.NewSessionHandler(meetupUC, recommendationUC, log)
	midpointHandler := handler.NewMidpointHandler(meetupUC, log)
	referenceHandler := handler.NewReferenceHandler(referenceUC, log)
	eventHandler := handler.NewEventHandler(eventUC, log)

	// 10. Initialize and start HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		midpointHandler,
		referenceHandler,
		eventHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
