// Package tracker предоставляет маршруты для основного приложения.
package tracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/auth/register"
	budgetcategorysummary "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/categorysummary"
	budgetcreate "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/create"
	budgetlist "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/list"
	budgetpause "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/pause"
	budgetread "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/read"
	budgetremove "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/remove"
	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/rollrecurring"
	budgetsummary "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/summary"
	budgetupdate "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/budget/update"
	expensecategorysummary "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/categorysummary"
	expensecreate "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/list"
	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/monthlytotal"
	expenseread "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/read"
	expenseremove "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/remove"
	expenseupdate "github.com/magabrotheeeer/budget-tracker/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/budget-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/budget-tracker/internal/services/auth"
	budgetservice "github.com/magabrotheeeer/budget-tracker/internal/services/budget"
	expenseservice "github.com/magabrotheeeer/budget-tracker/internal/services/expense"
	rollerservice "github.com/magabrotheeeer/budget-tracker/internal/services/roller"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage, jwtMaker jwt.Maker,
	authService *authservice.AuthService, budgetService *budgetservice.Service,
	expenseService *expenseservice.Service, rollerService *rollerservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)

			r.Post("/budgets", budgetcreate.New(logger, budgetService).ServeHTTP)
			r.Get("/budgets", budgetlist.New(logger, budgetService).ServeHTTP)
			r.Get("/budgets/summary", budgetsummary.New(logger, budgetService).ServeHTTP)
			r.Get("/budgets/summary/categories", budgetcategorysummary.New(logger, budgetService).ServeHTTP)
			r.Post("/budgets/roll", rollrecurring.New(logger, rollerService).ServeHTTP)
			r.Get("/budgets/{id}", budgetread.New(logger, budgetService).ServeHTTP)
			r.Put("/budgets/{id}", budgetupdate.New(logger, budgetService).ServeHTTP)
			r.Delete("/budgets/{id}", budgetremove.New(logger, budgetService).ServeHTTP)
			r.Post("/budgets/{id}/pause", budgetpause.New(logger, budgetService).ServeHTTP)

			r.Post("/expenses", expensecreate.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses", expenselist.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/summary/monthly", monthlytotal.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/summary/categories", expensecategorysummary.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/{id}", expenseread.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, expenseService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
