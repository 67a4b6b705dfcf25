package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/auth"
	"github.com/wolhaven/atelier/internal/config"
	httpHandler "github.com/wolhaven/atelier/internal/handler/http"
	"github.com/wolhaven/atelier/internal/handler/middleware"
	"github.com/wolhaven/atelier/internal/helpers"
	infradatabase "github.com/wolhaven/atelier/internal/infrastructure/database"
	"github.com/wolhaven/atelier/internal/infrastructure/kafka"
	"github.com/wolhaven/atelier/internal/infrastructure/storage"
	"github.com/wolhaven/atelier/internal/optimizer"
	"github.com/wolhaven/atelier/internal/repository/postgres"
	"github.com/wolhaven/atelier/internal/retry"
	"github.com/wolhaven/atelier/internal/usecase"
)

func main() {
	zlog.Init()
	zlog.Logger.Info().Msg("Starting Atelier API Server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load("")
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}

	connectRetries := cfg.Database.ConnectRetries
	connectDelay := cfg.Database.ConnectRetryDelaySec
	if connectRetries == 0 {
		connectRetries = 15
	}
	if connectDelay == 0 {
		connectDelay = 3
	}

	masterDSN := cfg.Database.DSN
	slaves := []string{}
	if strings.TrimSpace(cfg.Database.Slaves) != "" {
		slaves = helpers.SplitAndTrim(cfg.Database.Slaves, ",")
	}
	dbOpts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSec) * time.Second,
	}

	database, err := infradatabase.ConnectWithRetries(masterDSN, slaves, dbOpts, connectRetries, connectDelay)
	if err != nil || database == nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database after all retries")
	}

	// Run migrations
	zlog.Logger.Info().Msg("Running database migrations...")
	if err := infradatabase.RunMigrations(database, cfg.Migrations.Path); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Migrations failed")
	}

	// Setup Storage
	storageService, err := storage.New(&cfg.Storage)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	// Kafka Producer
	kafkaProducer := kafka.NewProducer(&cfg.Kafka)
	defer kafkaProducer.Close()

	// Repositories + Usecases
	itemRepo := postgres.NewItemRepository(database, retry.DefaultStrategy)
	categoryRepo := postgres.NewCategoryRepository(database, retry.DefaultStrategy)
	headRepo := postgres.NewHeadCategoryRepository(database, retry.DefaultStrategy)

	catalogUsecase := usecase.NewCatalogUsecase(itemRepo, cfg.Catalog.MaxFavorites, cfg.Catalog.MaxFeaturedPerChannel)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo, headRepo)

	uploadOpts := optimizer.Options{
		MaxWidth:  cfg.Optimizer.MaxWidth,
		MaxHeight: cfg.Optimizer.MaxHeight,
		Quality:   cfg.Optimizer.Quality,
		Format:    optimizer.Format(cfg.Optimizer.Format),
	}
	uploadUsecase := usecase.NewUploadUsecase(
		storageService,
		kafkaProducer,
		uploadOpts,
		cfg.Optimizer.MaxUploadSizeMB,
		cfg.Storage.UploadDir,
	)

	// Admin sessions
	sessions := auth.NewSessionStore(cfg.Auth.AdminPassword, time.Duration(cfg.Auth.SessionTTLSec)*time.Second)
	admin := middleware.AdminRequired(sessions, cfg.Auth.CookieName)

	// Gin engine + middleware
	engine := ginext.New("api")
	engine.Use(
		middleware.ErrorHandlerMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.CORS.FrontendOrigin),
	)

	engine.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	authHandler := httpHandler.NewAuthHandler(sessions, cfg.Auth.CookieName, cfg.Auth.SessionTTLSec, cfg.Auth.CookieSecure)
	authHandler.RegisterRoutes(engine)

	itemHandler := httpHandler.NewItemHandler(catalogUsecase)
	itemHandler.RegisterRoutes(engine, admin)

	categoryHandler := httpHandler.NewCategoryHandler(categoryUsecase)
	categoryHandler.RegisterRoutes(engine, admin)

	headHandler := httpHandler.NewHeadCategoryHandler(categoryUsecase)
	headHandler.RegisterRoutes(engine, admin)

	uploadHandler := httpHandler.NewUploadHandler(uploadUsecase)
	uploadHandler.RegisterRoutes(engine, admin)

	// Local storage serves its own files
	if cfg.Storage.Type == "local" {
		engine.Static("/files", cfg.Storage.LocalPath)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		zlog.Logger.Info().Str("addr", cfg.Server.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Logger.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	} else {
		zlog.Logger.Info().Msg("HTTP server stopped gracefully")
	}

	if database != nil && database.Master != nil {
		if err := database.Master.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("closing db master failed")
		} else {
			zlog.Logger.Info().Msg("db master closed")
		}
		for i, s := range database.Slaves {
			if err := s.Close(); err != nil {
				zlog.Logger.Error().Err(err).Int("slave_index", i).Msg("closing db slave failed")
			}
		}
	}

	zlog.Logger.Info().Msg("API shutdown complete")
}
