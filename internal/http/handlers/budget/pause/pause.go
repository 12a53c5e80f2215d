// Package pause реализует HTTP-обработчик приостановки и возобновления бюджета.
//
// Повторный вызов возвращает бюджет в активное состояние.
package pause

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	"github.com/magabrotheeeer/budget-tracker/internal/storage"
)

// Handler обрабатывает запросы на переключение паузы бюджета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики приостановки бюджета.
type Service interface {
	TogglePause(ctx context.Context, userID, id int64) (*models.Budget, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Приостановить или возобновить бюджет
// @Description Переключает статус бюджета между active и paused. Завершённый бюджет трогать нельзя.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID бюджета"
// @Success 200 {object} map[string]any "Бюджет с новым статусом"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или завершённый бюджет"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бюджет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/{id}/pause [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.pause"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	budget, err := h.service.TogglePause(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("budget not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("budget not found"))
			return
		}
		log.Error("failed to toggle pause", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not pause budget"))
		return
	}

	log.Info("success to toggle pause", slog.Int64("id", id), slog.String("status", budget.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"budget": budget,
	}))
}
