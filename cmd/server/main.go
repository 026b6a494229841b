package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bouncelist/internal/config"
	"bouncelist/internal/domain/blacklist"
	"bouncelist/internal/infra/cache"
	"bouncelist/internal/infra/snsconfirm"
	"bouncelist/internal/infra/store"
	"bouncelist/internal/router"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"driver", cfg.Database.Driver,
	)

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer startupCancel()

	// Storage backend — chosen once here, invisible to the service.
	var blStore blacklist.Store
	var closeStore func()

	switch cfg.Database.Driver {
	case "mysql":
		s, err := store.NewMySQLStore(startupCtx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
		if err != nil {
			slog.Error("failed to initialize mysql store", "error", err)
			os.Exit(1)
		}
		blStore = s
		closeStore = func() { _ = s.Close() }
	case "postgres":
		s, err := store.NewPostgresStore(startupCtx, cfg.Database.DSN, cfg.Database.MaxOpenConns)
		if err != nil {
			slog.Error("failed to initialize postgres store", "error", err)
			os.Exit(1)
		}
		blStore = s
		closeStore = s.Close
	}
	defer closeStore()
	slog.Info("blacklist store initialized", "driver", cfg.Database.Driver)

	// Optional Redis lookup cache
	if cfg.Cache.Enabled {
		cached := cache.New(
			blStore,
			cfg.Cache.Address,
			cfg.Cache.Password,
			cfg.Cache.DB,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
		)
		defer cached.Close()
		blStore = cached
		slog.Info("lookup cache initialized", "redis", cfg.Cache.Address)
	}

	// Subscription confirmer
	confirmer := snsconfirm.New(time.Duration(cfg.SNS.ConfirmTimeoutSec) * time.Second)

	// Service
	blacklistService := blacklist.NewService(
		blStore,
		confirmer,
		time.Duration(cfg.Database.OpTimeoutSec)*time.Second,
	)

	// Handler
	blacklistHandler := blacklist.NewHandler(blacklistService)

	// Router
	r := router.New(cfg, blacklistHandler)

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
