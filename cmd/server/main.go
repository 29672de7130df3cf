package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rosa-mystica-tuntang/web/internal/api"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/storage"
	"github.com/rosa-mystica-tuntang/web/pkg/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the most recent migration and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet
		bootLog := logger.New(config.LogConfig{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info().Msg("Starting Gua Maria Rosa Mystica website...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *rollback {
		if err := db.MigrateDown(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		log.Info().Msg("Rolled back one migration")
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Make sure the uploads directory exists before accepting files
	store, err := storage.NewLocalStore(cfg.Storage.PublicDir, cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare uploads directory")
	}
	log.Info().Str("dir", store.Root()).Msg("Uploads directory ready")

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services, err := service.NewServices(repos, store, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	services.Health = db

	// Initialize router
	router, err := api.NewRouter(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
