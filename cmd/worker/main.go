package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/config"
	"github.com/wolhaven/atelier/internal/infrastructure/kafka"
	"github.com/wolhaven/atelier/internal/infrastructure/storage"
	"github.com/wolhaven/atelier/internal/optimizer"
	"github.com/wolhaven/atelier/internal/usecase"
	"github.com/wolhaven/atelier/internal/worker"
)

func main() {
	zlog.Init()
	zlog.Logger.Info().Msg("Starting Atelier Thumbnail Worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load("")
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup Storage
	storageService, err := storage.New(&cfg.Storage)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	// The worker only reads originals from storage and writes thumbnails
	// back, so it needs no database connection.
	thumbOpts := optimizer.Options{
		MaxWidth:  cfg.Optimizer.ThumbWidth,
		MaxHeight: cfg.Optimizer.ThumbHeight,
		Quality:   cfg.Optimizer.ThumbQuality,
		Format:    optimizer.Format(cfg.Optimizer.Format),
	}
	thumbnailUsecase := usecase.NewThumbnailUsecase(storageService, thumbOpts, cfg.Storage.ThumbDir)
	thumbnailWorker := worker.NewThumbnailWorker(thumbnailUsecase)

	// Kafka Consumer
	kafkaConsumer, err := kafka.NewConsumer(&cfg.Kafka, thumbnailWorker.HandleThumbnailTask)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka consumer")
	}
	defer kafkaConsumer.Close()

	go func() {
		if err := kafkaConsumer.Start(ctx); err != nil {
			zlog.Logger.Error().Err(err).Msg("Kafka consumer error")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("Shutdown signal received")

	// Give the in-flight task a moment to finish before exiting.
	time.Sleep(2 * time.Second)

	zlog.Logger.Info().Msg("Worker shutdown complete")
}
