package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/cache"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
)

const (
	contextTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Conference Central API
// @version 1.0
// @description Conference and session management with seat-aware registration and wishlists.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := config.NewLogger()
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	redisCache, err := cache.New(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	registrationStore := postgres.NewRegistrationRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	profileService := services.NewProfileService(profileRepo, contextTimeout)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, emailService, logger, contextTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, contextTimeout)
	registrationService := services.NewRegistrationService(profileRepo, registrationStore, contextTimeout)
	wishlistService := services.NewWishlistService(profileRepo, sessionRepo, conferenceRepo, contextTimeout)
	announcementService := services.NewAnnouncementService(conferenceRepo, redisCache, contextTimeout)

	// Controllers
	profileController := controllers.NewProfileController(logger, profileService)
	conferenceController := controllers.NewConferenceController(logger, conferenceService)
	sessionController := controllers.NewSessionController(logger, sessionService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	wishlistController := controllers.NewWishlistController(logger, wishlistService)
	announcementController := controllers.NewAnnouncementController(logger, announcementService)

	mux := delivery.NewRouter(
		profileController,
		conferenceController,
		sessionController,
		registrationController,
		wishlistController,
		announcementController,
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodic announcement refresh so the cached message tracks seat counts
	// without waiting for the task endpoint to be hit.
	go func() {
		ticker := time.NewTicker(cfg.AnnouncementRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(rootCtx, contextTimeout)
				if _, err := announcementService.Refresh(refreshCtx); err != nil {
					logger.Warn("announcement refresh failed", "error", err)
				}
				cancel()
			}
		}
	}()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
