package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnkitSingh-ai/templaterepo/internal/api"
	"github.com/AnkitSingh-ai/templaterepo/internal/audit"
	"github.com/AnkitSingh-ai/templaterepo/internal/authz"
	"github.com/AnkitSingh-ai/templaterepo/internal/config"
	"github.com/AnkitSingh-ai/templaterepo/internal/logger"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
	"github.com/AnkitSingh-ai/templaterepo/internal/service"
	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

// Version is set via ldflags at build time
var Version = "dev"

// @title Issue Template API
// @version 1.0
// @description Backend for the issue template add-on: template management, assignment, and prefill.
// @host localhost:8470
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger.Init(cfg.Log.Format, cfg.Log.Level)
	slog.Info("Starting issue template server", "version", Version, "mode", cfg.Server.Mode)

	kv, err := createStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("Store initialized", "type", cfg.Store.Type)

	templates := repository.NewTemplateRepository(kv, cfg.Store.KeyPrefix)
	settings := repository.NewSettingsRepository(kv, cfg.Store.KeyPrefix)
	trail := audit.NewTrail(kv, cfg.Store.KeyPrefix)

	var perms *authz.PermissionClient
	if cfg.Permission.BaseURL != "" {
		perms = authz.NewPermissionClient(cfg.Permission.BaseURL, time.Duration(cfg.Permission.TimeoutSeconds)*time.Second)
		slog.Info("Permission client initialized", "base_url", cfg.Permission.BaseURL)
	}

	az, err := authz.New(settings, perms)
	if err != nil {
		slog.Error("Failed to initialize authorizer", "error", err)
		os.Exit(1)
	}

	// Seed admin policies from the stored config
	globalCfg, err := settings.GlobalConfig(context.Background())
	if err != nil {
		slog.Error("Failed to read global config", "error", err)
		os.Exit(1)
	}
	if err := az.SyncAdmins(globalCfg.Admins); err != nil {
		slog.Error("Failed to sync admin policies", "error", err)
		os.Exit(1)
	}

	svc := service.New(templates, az, trail)
	router := api.NewRouter(cfg, svc, settings, az, trail)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// createStore creates the associative store based on configuration
func createStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Type {
	case "memory":
		return store.NewMemoryStore(), nil
	case "valkey":
		if cfg.Store.ValkeyAddr == "" {
			return nil, fmt.Errorf("valkey address is required when store type is valkey")
		}
		return store.NewValkeyStore(cfg.Store.ValkeyAddr)
	default:
		return nil, fmt.Errorf("unsupported store type: %s (supported: memory, valkey)", cfg.Store.Type)
	}
}
