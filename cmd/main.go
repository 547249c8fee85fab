package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodboard/internal/app/feedback/config"
	"moodboard/internal/app/feedback/handler"
	"moodboard/internal/app/feedback/infrastructure/storage"
	"moodboard/internal/app/feedback/processor"
	"moodboard/internal/app/feedback/repository"
	"moodboard/internal/app/feedback/service"
	"moodboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("moodboard", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "moodboard", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	feedbackRepo := repository.NewFeedbackRepository(cfg.Store.DataFile, cfg.Store.CacheTTL)
	logger.Info().
		Str("data_file", cfg.Store.DataFile).
		Dur("cache_ttl", cfg.Store.CacheTTL).
		Msg("Initialized feedback store")

	fileStorage := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	logger.Info().
		Str("upload_dir", cfg.Upload.Dir).
		Int64("max_size", cfg.Upload.MaxSize).
		Msg("Initialized file storage")

	feedbackService := service.NewFeedbackService(feedbackRepo, fileStorage)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	router := handler.SetupRoutes(feedbackHandler, cfg.Upload.Dir, cfg.Upload.BaseURL)

	if cfg.Cleanup.Schedule != "" {
		cleanup := processor.NewCleanupScheduler(feedbackRepo, cfg.Upload.Dir, cfg.Cleanup.MinAge)
		if err := cleanup.Start(context.Background(), cfg.Cleanup.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start cleanup scheduler")
		}
		defer cleanup.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Moodboard Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Moodboard Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Moodboard Service stopped gracefully")
}
