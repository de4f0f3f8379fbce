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

	httpapi "github.com/aussiebroadwan/docit/internal/auth/http"
	"github.com/aussiebroadwan/docit/internal/auth/service"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/docit/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/docit/pkg/cryptox"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/aussiebroadwan/docit/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "dev"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	cipher   *cryptox.SecretCipher
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	authService         *service.AuthService
	mfaService          *service.MFAService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initCrypto(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
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
	app.logger.Info("shutting down auth service...")

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

	app.logger.Info("auth service stopped")
	return nil
}

// initCrypto builds the MFA secret cipher and the token signer/verifier.
func (app *Application) initCrypto() error {
	key, err := cryptox.ParseSecretKey(app.cfg.MFAEncryptionKey)
	if err != nil {
		return fmt.Errorf("invalid MFA encryption key: %w", err)
	}
	if app.cipher, err = cryptox.NewSecretCipher(key); err != nil {
		return fmt.Errorf("failed to initialize MFA cipher: %w", err)
	}

	secret := []byte(app.cfg.JWTSecret)
	if app.signer, err = jwtx.NewSignerHS256(secret); err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	if app.verifier, err = jwtx.NewVerifierHS256(secret, app.cfg.Issuer, 0); err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseDSN)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	engine := &service.TOTPEngine{Issuer: app.cfg.Issuer}

	app.authService = &service.AuthService{
		Store:  app.db,
		Cipher: app.cipher,
		TOTP:   engine,
		Tokens: &service.TokenService{
			Signer: app.signer,
			Issuer: app.cfg.Issuer,
			TTL:    app.cfg.TokenTTL,
		},
		BcryptCost: app.cfg.BcryptCost,
	}

	app.mfaService = &service.MFAService{
		Store:             app.db,
		Cipher:            app.cipher,
		TOTP:              engine,
		EnrollmentTTL:     app.cfg.EnrollmentTTL,
		RecoveryCodeCount: app.cfg.RecoveryCodeCount,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSOrigins,
	)

	router.AuthService = app.authService
	router.MFAService = app.mfaService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
