package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/swiftcart/storefront-state/api/routes"
	"github.com/swiftcart/storefront-state/internal/auth"
	"github.com/swiftcart/storefront-state/internal/catalog"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/session"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/config"
	"github.com/swiftcart/storefront-state/pkg/logger"
	"github.com/swiftcart/storefront-state/pkg/metrics"
	"github.com/swiftcart/storefront-state/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

type closer interface {
	Close() error
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	var (
		adapter  storage.Adapter
		pinger   interface{ Ping(context.Context) error }
		backends []closer
	)
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		adapter = storage.NewMemory()
	case config.StorageBackendRedis:
		redisAdapter, err := storage.NewRedis(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis storage", err)
			os.Exit(1)
		}
		adapter, pinger = redisAdapter, redisAdapter
		backends = append(backends, redisAdapter)
	default:
		dbAdapter, err := storage.NewDB(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database storage", err)
			os.Exit(1)
		}
		adapter, pinger = dbAdapter, dbAdapter
		backends = append(backends, dbAdapter)
	}

	registry := prometheus.NewRegistry()
	mutationMetrics := metrics.NewMutationMetrics(registry)

	gate, err := session.NewGate(ctx, adapter, logg)
	if err != nil {
		logg.Error(ctx, "failed to restore session", err)
		os.Exit(1)
	}

	catalogClient := catalog.NewClient(cfg.Catalog)

	store, err := state.NewStore(ctx, state.StoreParams{
		Adapter:      adapter,
		Gate:         gate,
		Logger:       logg,
		Metrics:      mutationMetrics,
		ReviewSource: catalogClient,
	})
	if err != nil {
		logg.Error(ctx, "failed to restore state", err)
		os.Exit(1)
	}

	engine, err := queries.New(store)
	if err != nil {
		logg.Error(ctx, "failed to build query engine", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Sessions: store,
		JWTCfg:   cfg.JWT,
		AuthCfg:  cfg.Auth,
		PassCfg:  cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Engine:   engine,
			Auth:     authService,
			Sessions: gate,
			Catalog:  catalogClient,
			StorageP: pinger,
			Registry: registry,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		store.WaitForReconciliation()
		for _, b := range backends {
			err = multierr.Append(err, b.Close())
		}
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
