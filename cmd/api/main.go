package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"machikado_backend/internal/adapters/storage"
	"machikado_backend/internal/addresses"
	"machikado_backend/internal/discovery"
	apphttp "machikado_backend/internal/http"
	"machikado_backend/internal/http/router"
	"machikado_backend/internal/menus"
	"machikado_backend/internal/places/client"
	"machikado_backend/platform/cache"
	"machikado_backend/platform/config"
	"machikado_backend/platform/db"
	"machikado_backend/platform/logger"
	"machikado_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Response cache for the place-search upstream. A nil cache means Redis
	// is not configured and every request goes straight upstream.
	respCache, err := cache.New(cfg)
	if err != nil {
		log.Error("failed to initialize response cache", "error", err)
		panic("failed to initialize response cache: " + err.Error())
	}
	if respCache != nil {
		defer func() { _ = respCache.Close() }()
		log.Info("response cache initialized", "ttl", cfg.GetPlacesCacheTTL())
	} else {
		log.Warn("REDIS_URL not configured; place-search responses are not cached")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for menu images (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure menus bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketMenus())
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketMenus())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "menusBucket", cfg.GetMinioBucketMenus())

	// Outbound place-search client shared by discovery and addresses.
	placesClient := client.New(cfg, respCache, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	addressesModule := addresses.NewModule(pool, placesClient, cfg, val, log)
	discoveryModule := discovery.NewModule(placesClient, addressesModule.Service(), val, log)
	menusModule := menus.NewModule(pool, storageSvc, cfg.GetMinioBucketMenus(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			addressesModule,
			discoveryModule,
			menusModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
