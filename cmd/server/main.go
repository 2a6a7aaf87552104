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

	"invy/config"
	_ "invy/docs"
	"invy/internal/adapters/auth"
	"invy/internal/adapters/email"
	"invy/internal/adapters/logging"
	delivery "invy/internal/delivery/http"
	"invy/internal/delivery/http/controllers"
	"invy/internal/delivery/http/middleware"
	"invy/internal/repository/postgres"
	"invy/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title INVY RSVP API
// @version 1.0
// @description Anonymous event pages with secret-link management, guest RSVP intake, and plan-tier feature gating.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	logRepo := postgres.NewLogRepository(db)

	// Error-level records also land in error_logs for the superadmin surface.
	logger = slog.New(logging.NewErrorLogHandler(logger.Handler(), logRepo))

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.AccessKeyID,
			SecretAccessKey: cfg.Email.SecretAccessKey,
		},
	}, logger)
	renderer := email.NewTemplateRenderer()
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer, renderer, logRepo, logger)
	eventService := services.NewEventService(eventRepo, emailService, logger, cfg.AppURL, serviceTimeout)
	rsvpService := services.NewRSVPService(rsvpRepo, eventRepo, emailService, logger, cfg.AppURL, serviceTimeout)
	userService := services.NewUserService(userRepo, logger, cfg.SuperAdminEmail, serviceTimeout)
	adminService := services.NewAdminService(userRepo, eventRepo, rsvpRepo, logRepo, serviceTimeout)

	router := delivery.NewRouter(delivery.Controllers{
		Event:  controllers.NewEventController(logger, eventService, rsvpService, userService),
		Rsvp:   controllers.NewRsvpController(logger, rsvpService),
		Manage: controllers.NewManageController(logger, eventService, rsvpService, userService),
		User:   controllers.NewUserController(logger, userService, eventService),
		Admin:  controllers.NewAdminController(logger, adminService, userService, eventService),
	}, verifier)

	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins, router))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
