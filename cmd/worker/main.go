package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/config"
	"github.com/wemeet-microservice/internal/infrastructure/recommender"
	"github.com/wemeet-microservice/internal/pkg/logger"
	"github.com/wemeet-microservice/internal/repository/cache"
	redisRepo "github.com/wemeet-microservice/internal/repository/redis"
	"github.com/wemeet-microservice/internal/usecase"
	"github.com/wemeet-microservice/internal/worker"
	"github.com/wemeet-microservice/internal/worker/meetup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Meetup Refresh Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("recommender_url", cfg.Recommender.BaseURL))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.Session.TTL)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	recommenderRepo := recommender.NewClient(&cfg.Recommender, log)

	// 5. Initialize use cases
	recommendationUC := usecase.NewRecommendationUseCase(
		sessionRepo,
		recommenderRepo,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.RecommendationTTL,
	)

	// 6. Initialize workers
	refreshWorker := meetup.NewRefreshWorker(
		streamRepo,
		recommendationUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(refreshWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
