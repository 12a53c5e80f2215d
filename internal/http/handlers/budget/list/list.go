// Package list реализует HTTP-обработчик для получения списка бюджетов пользователя.
package list

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

// Handler обрабатывает запросы на получение списка бюджетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка бюджетов.
type Service interface {
	List(ctx context.Context, userID int64, status string) ([]*models.Budget, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список бюджетов
// @Description Возвращает бюджеты текущего пользователя, новые первыми. Фильтр по статусу через query-параметр.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу: active, paused, completed или all" default(all)
// @Success 200 {object} map[string]any "Список бюджетов"
// @Failure 400 {object} response.ErrorResponse "Некорректный статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "all"
	}
	switch status {
	case "all", models.StatusActive, models.StatusPaused, models.StatusCompleted:
	default:
		log.Error("unknown status filter", slog.String("status", status))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown status filter"))
		return
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	budgets, err := h.service.List(r.Context(), userID, status)
	if err != nil {
		log.Error("failed to list budgets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list budgets"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"budgets": budgets,
		"count":   len(budgets),
	}))
}
