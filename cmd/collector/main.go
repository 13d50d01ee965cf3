package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/config"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/handler"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/logger"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/queue/sqs"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/repository/postgres"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting collector service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize session store
	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, log)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer db.Close()

	sessionRepo := postgres.NewSessionRepository(db, log)
	if err := sessionRepo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize session schema", zap.Error(err))
	}
	log.Info("Session schema initialized")

	// Initialize services
	eventService := service.NewEventService(sqsClient, log)
	sessionService := service.NewSessionService(sessionRepo, log)

	// Initialize handler
	h := handler.NewHandler(eventService, sessionService, log)

	addr := ":" + cfg.Service.APIPort
	log.Info("Collector listening", zap.String("address", addr))
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Collector server error", zap.Error(err))
	}
}
