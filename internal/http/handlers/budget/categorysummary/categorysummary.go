// Package categorysummary реализует HTTP-обработчик сводки бюджетов по категориям.
package categorysummary

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

// Handler обрабатывает запросы на сводку бюджетов по категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки по категориям.
type Service interface {
	CategoryRollup(ctx context.Context, userID int64) ([]*models.CategoryRollup, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка бюджетов по категориям
// @Description Агрегирует активные бюджеты по категориям: количество, суммарный лимит и потраченное. Упорядочено по лимиту по убыванию.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводка по категориям"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/summary/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.categorysummary"

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

	rollups, err := h.service.CategoryRollup(r.Context(), userID)
	if err != nil {
		log.Error("failed to build category summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build category summary"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": rollups,
		"count":      len(rollups),
	}))
}
