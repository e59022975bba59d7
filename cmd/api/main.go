package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/docs"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/archive"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/handler"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/logger"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue/sqs"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/backend"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/service"
)

var envPaths = []string{".env", "../.env", "../../.env"}

// @title Combat Log Analytics Service API
// @version 1.0
// @description API for ingesting match combat logs and querying per-hero statistics
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	envFile := ""
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			envFile = path
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("env_file", envFile))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	repo, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open match repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close match repository", zap.Error(err))
		}
	}()

	var opts []service.Option

	if cfg.SQS.Enabled() {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		opts = append(opts, service.WithPublisher(sqsClient))
	} else {
		log.Info("SQS queue not configured, async ingestion disabled")
	}

	if cfg.Archive.Enabled() {
		archiver, err := archive.NewS3Archiver(ctx, cfg.Archive, log)
		if err != nil {
			log.Fatal("Failed to create S3 archiver", zap.Error(err))
		}
		opts = append(opts, service.WithArchiver(archiver))
	}

	matchService := service.NewMatchService(combatlog.NewParser(log), repo, log, opts...)

	h := handler.NewHandler(matchService, cfg.Service.MaxLogBytes, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}
}
