package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/consumer"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/logger"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue/sqs"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/backend"
)

var envPaths = []string{".env", "../.env", "../../.env"}

func main() {
	envFile := ""
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			envFile = path
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "consumer")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting consumer service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("env_file", envFile))

	if !cfg.SQS.Enabled() {
		log.Fatal("SQS_QUEUE_URL is required for the consumer")
	}

	ctx := context.Background()

	// Open repository and create tables if they do not exist
	repo, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open match repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close match repository", zap.Error(err))
		}
	}()

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	c := consumer.NewConsumer(cfg, sqsClient, repo, combatlog.NewParser(log), log)

	// Start health check endpoint
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Consumer starting")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Start(consumerCtx); err != nil {
			log.Error("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()

	// Wait for the batch writer to flush pending matches
	<-done
	log.Info("Consumer stopped")
}
