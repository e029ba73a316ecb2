package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"propdash/internal/config"
	apphttp "propdash/internal/http"
	applog "propdash/internal/log"
	"propdash/internal/upstream"
	"propdash/internal/upstream/fixture"
	"propdash/internal/upstream/webhook"
	"propdash/internal/view"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	var (
		tenantSrc upstream.TenantSource
		issueSrc  upstream.IssueSource
	)
	switch cfg.DataBackend {
	case config.BackendFixture:
		store, err := fixture.NewFromFiles(cfg.FixtureDir)
		if err != nil {
			logger.Error("Failed to load fixtures",
				applog.FieldError, err, "dir", cfg.FixtureDir)
			os.Exit(1)
		}
		tenantSrc, issueSrc = store, store
		logger.Info("Initialized fixture backend",
			applog.FieldBackend, cfg.DataBackend, "dir", cfg.FixtureDir)
	default:
		client := webhook.NewClient(cfg.TenantsWebhookURL, cfg.IssuesWebhookURL, cfg.FetchTimeout)
		tenantSrc, issueSrc = client, client
		logger.Info("Initialized webhook backend", applog.FieldBackend, cfg.DataBackend)
	}

	tenants := view.New("tenants", tenantSrc.Tenants)
	issues := view.New("issues", issueSrc.Issues)

	srv := apphttp.NewServer(":"+cfg.Port, tenants, issues, apphttp.FormLinks{
		Rent:  cfg.RentFormURL,
		Issue: cfg.IssueFormURL,
	})
	srv.Server.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Server.Handler)

	// WriteTimeout leaves room for a full upstream fetch inside a handler.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting propdash server",
		"port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
