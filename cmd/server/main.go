// Package main is the entry point for the stockflow report server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"stockflow/internal/domain/catalogs/nomenclature"
	"stockflow/internal/domain/catalogs/warehouse"
	"stockflow/internal/domain/reports"
	v1 "stockflow/internal/infrastructure/http/v1"
	"stockflow/internal/infrastructure/storage/postgres"
	"stockflow/internal/infrastructure/storage/postgres/catalog_repo"
	"stockflow/internal/infrastructure/storage/postgres/register_repo"
	"stockflow/internal/infrastructure/storage/postgres/report_repo"
	"stockflow/pkg/config"
	"stockflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting stockflow server", "env", cfg.App.Env, "version", cfg.App.Version)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	poolCfg.MaxConns = cfg.DB.MaxConns
	poolCfg.ApplicationName = cfg.App.Name

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	txm := postgres.NewTxManager(pool).WithStatementTimeout(cfg.DB.StatementTimeout)

	// --- Repositories ---
	pageOpts := postgres.PageOptions{PageSize: cfg.Catalog.PageSize, MaxRecords: cfg.Catalog.MaxRecords}
	movementRepo := register_repo.NewMovementRepo(txm)
	adjustmentRepo := report_repo.NewAdjustmentRepo(txm)
	productRepo := catalog_repo.NewNomenclatureRepo(txm, pageOpts)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txm, pageOpts)

	// --- Services ---
	agg := reports.NewAggregator(movementRepo,
		reports.WithStrictMovements(cfg.Reports.StrictMovements),
		reports.WithMaxParallel(cfg.Reports.MaxParallel),
	)
	reportService := reports.NewService(
		agg,
		reports.NewBalanceCalculator(agg, adjustmentRepo),
		catalog_repo.NewNamesRepo(productRepo, warehouseRepo),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Reports:    reportService,
		Products:   nomenclature.NewService(productRepo),
		Warehouses: warehouse.NewService(warehouseRepo),
		DB:         txm,
		Logger:     log,
		Version:    cfg.App.Version,
		Debug:      cfg.App.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr, "strict_movements", cfg.Reports.StrictMovements)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Pool stats ---
	statsTicker := time.NewTicker(5 * time.Minute)
	defer statsTicker.Stop()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for running := true; running; {
		select {
		case <-statsTicker.C:
			pool.LogStats(ctx)
		case <-quit:
			running = false
		}
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
