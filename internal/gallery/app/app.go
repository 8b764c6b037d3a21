package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
	httpapi "github.com/blushhq/blush/internal/gallery/http"
	"github.com/blushhq/blush/internal/gallery/mailer"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/internal/gallery/store"
	"github.com/blushhq/blush/internal/gallery/store/drivers/sqlite"
	"github.com/blushhq/blush/pkg/identx"
	"github.com/blushhq/blush/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gallery service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	challenges  *authstate.ChallengeStore
	revocations *authstate.RevocationSet
	sender      mailer.Sender

	// Services
	otpService          *service.OTPService
	sessionService      *service.SessionService
	albumService        *service.AlbumService
	mediaService        *service.MediaService
	storageService      *service.StorageService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// A missing signing secret is fatal here rather than a per-request error.
func New(cfg Config) (*Application, error) {
	if cfg.AuthSecret == "" {
		return nil, errors.New("AUTH_SECRET must be set")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gallery-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("gallery service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gallery service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gallery service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initMailer picks the code delivery transport. Production requires a real
// relay; dev falls back to logging codes when SMTP is unconfigured.
func (app *Application) initMailer() error {
	if app.cfg.SMTPAddr != "" {
		app.sender = &mailer.SMTPSender{
			Addr:     app.cfg.SMTPAddr,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
			SiteName: app.cfg.SiteName,
		}
		return nil
	}

	if app.cfg.Env == "prod" {
		return errors.New("SMTP_ADDR must be set in prod")
	}

	app.logger.Warn("SMTP_ADDR not set, sign-in codes will be logged instead of emailed")
	app.sender = &mailer.LogSender{Logger: app.logger}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.challenges = authstate.NewChallengeStore()
	app.revocations = authstate.NewRevocationSet()

	allowed := make([]string, 0, len(app.cfg.AllowedEmails))
	for _, email := range app.cfg.AllowedEmails {
		allowed = append(allowed, identx.Normalize(email))
	}

	app.otpService = &service.OTPService{
		Challenges:     app.challenges,
		Secret:         []byte(app.cfg.AuthSecret),
		TTL:            app.cfg.OTPTTL,
		ResendCooldown: app.cfg.OTPResendCooldown,
		MaxAttempts:    app.cfg.OTPMaxAttempts,
		AllowedEmails:  allowed,
	}

	app.sessionService = &service.SessionService{
		Revocations: app.revocations,
		Secret:      []byte(app.cfg.AuthSecret),
		SessionTTL:  app.cfg.SessionTTL,
	}

	app.albumService = &service.AlbumService{Store: app.db}
	app.mediaService = &service.MediaService{Store: app.db}

	app.storageService = &service.StorageService{
		BaseDir: app.cfg.UploadDir,
		Secret:  []byte(app.cfg.AuthSecret),
		URLTTL:  app.cfg.SignedURLTTL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.challenges,
		app.revocations,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.OTPResendCooldown,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.OTPService = app.otpService
	router.SessionService = app.sessionService
	router.AlbumService = app.albumService
	router.MediaService = app.mediaService
	router.StorageService = app.storageService
	router.Mailer = app.sender
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
