// Package tracker собирает HTTP-приложение трекера бюджетов: хранилище,
// миграции, кэш, сервисы и маршруты.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/budget-tracker/internal/cache"
	"github.com/magabrotheeeer/budget-tracker/internal/config"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/budget-tracker/internal/services/auth"
	budgetservice "github.com/magabrotheeeer/budget-tracker/internal/services/budget"
	expenseservice "github.com/magabrotheeeer/budget-tracker/internal/services/expense"
	rollerservice "github.com/magabrotheeeer/budget-tracker/internal/services/roller"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New создает приложение: подключает базу, прогоняет миграции,
// поднимает кэш и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	budgetService := budgetservice.New(db, cacheRedis, logger)
	expenseService := expenseservice.New(db, cacheRedis, logger)
	rollerService := rollerservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, jwtMaker, authService, budgetService, expenseService, rollerService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
