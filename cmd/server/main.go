package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"englishpath/internal/audio"
	"englishpath/internal/config"
	"englishpath/internal/content"
	"englishpath/internal/database"
	"englishpath/internal/handlers"
	"englishpath/internal/logger"
	"englishpath/internal/repository"
	"englishpath/internal/security"
	"englishpath/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	catalog := content.Default()

	// Build the progress store, mirrored to SQL when a database is configured
	var storeOpts []repository.StoreOption
	var db *database.DB
	var progressRepo *repository.ProgressRepository
	if cfg.Persistent() {
		db, err = database.InitializeWithConfig(cfg)
		if err != nil {
			log.Fatal("failed to initialize database", "error", err)
		}
		defer db.Close()

		log.Info("database connection established", "type", cfg.DatabaseType)

		applied, err := db.RunMigrations(cfg.MigrationsPath)
		if err != nil {
			log.Fatal("failed to run migrations", "error", err)
		}
		log.Info("migrations completed", "applied", applied)

		progressRepo = repository.NewProgressRepository(db)
		storeOpts = append(storeOpts, repository.WithPersister(progressRepo))
	} else {
		log.Warn("running without a database; progress is lost on restart")
	}

	store := repository.NewProgressStore(catalog, storeOpts...)
	if progressRepo != nil {
		users, records, err := progressRepo.LoadAll()
		if err != nil {
			log.Fatal("failed to load progress", "error", err)
		}
		if err := store.Restore(users, records); err != nil {
			log.Fatal("failed to restore progress", "error", err)
		}
		log.Info("progress restored", "users", store.Len())
	}

	// Initialize services
	progressService := service.NewProgressService(store, log)
	moduleService := service.NewModuleService(catalog, store)
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug, log)
	if err != nil {
		log.Fatal("failed to initialize email service", "error", err)
	}
	reportService := service.NewReportService(progressService, moduleService, emailService, cfg.AppBaseURL)
	ttsService := audio.NewTTSService(cfg.AudioPath)

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = security.GenerateSecret()
		if err != nil {
			log.Fatal("failed to generate session secret", "error", err)
		}
		log.Warn("SESSION_SECRET not set; using a random key, sessions end on restart")
	}
	sessions := security.NewSessionManager(secret, cfg.SessionDuration)

	trusted, err := security.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", "error", err)
	}
	limiter := security.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	limiter.TrustProxies(trusted)

	// Background jobs
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Hour().Do(func() {
		if removed := limiter.Cleanup(); removed > 0 {
			log.Debug("rate limiter sweep", "removed", removed)
		}
	}); err != nil {
		log.Fatal("failed to schedule rate limiter sweep", "error", err)
	}
	scheduler.StartAsync()

	// Set up routes
	mux := http.NewServeMux()
	handlers.Routes{
		Middleware: handlers.NewMiddleware(sessions, log),
		Limiter:    limiter,
		Users:      handlers.NewUserHandler(progressService, sessions, log),
		Progress:   handlers.NewProgressHandler(progressService, moduleService, log),
		Content:    handlers.NewContentHandler(catalog, ttsService, log),
		Reports:    handlers.NewReportHandler(reportService, log),
	}.Register(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.Logging(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	scheduler.Stop()
	if err := store.Close(); err != nil {
		log.Error("failed to close progress store", "error", err)
	}
}
