// Package summary реализует HTTP-обработчик сводки по активным бюджетам пользователя.
//
// Handler возвращает представления бюджетов с суммой потраченного, остатком
// и процентом исполнения.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// Handler обрабатывает запросы на сводку по бюджетам.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки по бюджетам.
type Service interface {
	Summary(ctx context.Context, userID int64) ([]*models.BudgetView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по активным бюджетам
// @Description Возвращает все активные бюджеты пользователя с вычисленными полями, новые первыми.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводка по бюджетам"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	views, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"budgets": views,
		"count":   len(views),
	}))
}
