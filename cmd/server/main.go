package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hr-records-api/internal/api"
	"github.com/hr-records-api/internal/bootstrap"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/service"
	"github.com/hr-records-api/pkg/logger"
)

func main() {
	// Load configuration
	log := logger.FromEnv(os.Stdout)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log = logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.Info().Msg("Starting HR Records API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations, including the catalog seed
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Cache, mail, tokens and text generation
	deps, cleanup, err := bootstrap.Dependencies(context.Background(), cfg, bootstrap.Options{WithGenerator: true}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer cleanup()

	// Initialize services
	services := service.NewServices(repos, deps, cfg, log)

	// Start background mail workers
	mailCtx, stopMail := context.WithCancel(context.Background())
	defer stopMail()
	go services.Mail.Start(mailCtx)
	log.Info().Msg("Mail workers started")

	// Initialize router
	router, err := api.NewRouter(services, cfg, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Wait for in-flight welcome emails
	services.Mail.Stop()

	log.Info().Msg("Server exited gracefully")
}
