// Package main запускает фоновый воркер перевыпуска повторяющихся бюджетов.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/config"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	rollerservice "github.com/magabrotheeeer/budget-tracker/internal/services/roller"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

func waitForDB(ctx context.Context, db *storage.Storage) error {
	for range 10 {
		err := db.CheckDatabaseReady(ctx)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting budget-roller", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := waitForDB(ctx, db); err != nil {
		logger.Error("database is not ready", sl.Err(err))
		os.Exit(1)
	}

	rollerService := rollerservice.New(db, logger)
	logger.Info("roller started", slog.Duration("interval", cfg.Roller.Interval))
	rollerService.RunEvery(ctx, cfg.Roller.Interval)

	logger.Info("budget-roller stopped gracefully")
}
