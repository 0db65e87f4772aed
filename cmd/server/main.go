package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/elvisburrniku/OrderTable-sub004/internal/app"
	"github.com/elvisburrniku/OrderTable-sub004/internal/config"
	"github.com/elvisburrniku/OrderTable-sub004/internal/db"
	"github.com/elvisburrniku/OrderTable-sub004/internal/notify"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/cache"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/logger"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.MigrateOnUp {
		if err := db.Migrate(ctx, pool); err != nil {
			zl.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	// Snapshot cache is optional; without it every check reads the database.
	deps := app.Config{
		App:     cfg,
		DBPool:  pool,
		Logger:  zl,
		Metrics: metrics.New(),
	}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			zl.Warn("redis unavailable, running without snapshot cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			deps.Redis = rdb
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		notifier := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotifyTopic, zl)
		defer func() {
			if err := notifier.Close(); err != nil {
				zl.Warn("failed to flush notifications", zap.Error(err))
			}
		}()
		deps.Notifier = notifier
	}

	container := app.NewContainer(deps)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
