// Package main is the entry point for the makhzan API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"makhzan/internal/config"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/state"
	"makhzan/internal/infrastructure/ai"
	v1 "makhzan/internal/infrastructure/http/v1"
	"makhzan/internal/infrastructure/storage/file"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting makhzan server")

	// --- Snapshot backend ---
	var (
		snapStore  state.SnapshotStore
		readyCheck func(ctx context.Context) error
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.Storage.PostgresDSN); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		store, err := postgres.NewSnapshotStore(pool)
		if err != nil {
			log.Fatalw("failed to create snapshot store", "error", err)
		}
		snapStore = store
		readyCheck = pool.Ping
		log.Infow("snapshot backend ready", "driver", cfg.Storage.Driver)

	default:
		store, err := file.NewSnapshotStore(cfg.Storage.Path)
		if err != nil {
			log.Fatalw("failed to create snapshot store", "error", err)
		}
		snapStore = store
		log.Infow("snapshot backend ready", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	}

	// --- State ---
	snap, err := snapStore.Load(ctx)
	if err != nil {
		if !errors.Is(err, state.ErrNoSnapshot) {
			log.Fatalw("failed to load snapshot", "error", err)
		}
		snap = state.DefaultSnapshot()
		log.Info("no snapshot found, starting with default data")
	}

	store := state.NewStore(snap)
	store.OnMutate(func(ctx context.Context, snap *state.Snapshot) {
		if err := snapStore.Save(ctx, snap); err != nil {
			log.WithContext(ctx).Errorw("failed to persist snapshot", "error", err)
		}
	})

	// --- Services ---
	materialService := material.NewService(store.Materials())
	partnerService := partner.NewService(store.Partners())
	documentService := documents.NewService(store.Documents())
	geminiService := ai.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)

	// --- HTTP server ---
	router := v1.NewRouter(v1.RouterConfig{
		Store:          store,
		Materials:      materialService,
		Partners:       partnerService,
		Documents:      documentService,
		Gemini:         geminiService,
		Logger:         log,
		ReadyCheck:     readyCheck,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
