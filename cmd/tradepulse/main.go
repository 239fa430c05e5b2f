package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradepulse/tradepulse/internal/app"
	"github.com/tradepulse/tradepulse/internal/dashboard"
	dashhttp "github.com/tradepulse/tradepulse/internal/dashboard/http"
	"github.com/tradepulse/tradepulse/internal/inventory"
	inventoryhttp "github.com/tradepulse/tradepulse/internal/inventory/http"
	"github.com/tradepulse/tradepulse/internal/observability"
	"github.com/tradepulse/tradepulse/internal/platform/cache"
	"github.com/tradepulse/tradepulse/internal/platform/db"
	"github.com/tradepulse/tradepulse/internal/platform/restq"
	"github.com/tradepulse/tradepulse/internal/prefs"
	prefshttp "github.com/tradepulse/tradepulse/internal/prefs/http"
	"github.com/tradepulse/tradepulse/internal/records"
	recordshttp "github.com/tradepulse/tradepulse/internal/records/http"
	"github.com/tradepulse/tradepulse/internal/store"
	pgstore "github.com/tradepulse/tradepulse/internal/store/pg"
	reststore "github.com/tradepulse/tradepulse/internal/store/rest"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	st, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error("connect backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, preferences disabled", slog.Any("error", err))
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	metrics := observability.NewMetrics()

	dashboardService := dashboard.NewService(st, logger)
	dashboardService.WithRefreshObserver(metrics.ObserveRefresh)
	recordsService := records.NewService(st, logger, cfg.InvestmentPartners)
	inventoryService := inventory.NewService(st, logger)

	var prefsHandler *prefshttp.Handler
	if redisClient != nil {
		prefsHandler = prefshttp.NewHandler(logger, prefs.NewStore(redisClient))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashhttp.NewHandler(logger, dashboardService),
		RecordsHandler:   recordshttp.NewHandler(logger, recordsService),
		PrefsHandler:     prefsHandler,
		InventoryHandler: inventoryhttp.NewHandler(logger, inventoryService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func newStore(ctx context.Context, cfg *app.Config) (store.Store, func(), error) {
	switch cfg.BackendMode {
	case app.BackendPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(pool), pool.Close, nil
	default:
		client, err := restq.NewClient(cfg.BackendURL, cfg.BackendAPIKey, nil)
		if err != nil {
			return nil, nil, err
		}
		return reststore.New(client), func() {}, nil
	}
}
