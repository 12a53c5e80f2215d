// Package remove реализует HTTP-обработчик для удаления бюджета пользователя.
//
// Привязанные расходы при удалении не пропадают: с них снимается ссылка на бюджет.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление бюджета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления бюджета.
type Service interface {
	Remove(ctx context.Context, userID, id int64) (int64, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить бюджет
// @Description Удаляет бюджет текущего пользователя. Привязанные расходы остаются без бюджета.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID бюджета"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бюджет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.remove"

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

	count, err := h.service.Remove(r.Context(), userID, id)
	if err != nil {
		log.Error("failed to remove budget", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove budget"))
		return
	}
	if count == 0 {
		log.Error("budget not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("budget not found"))
		return
	}

	log.Info("success to remove budget", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": count,
	}))
}
