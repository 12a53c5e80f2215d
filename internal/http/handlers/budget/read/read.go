// Package read реализует HTTP-обработчик для получения конкретного бюджета по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику и возвращает
// бюджет вместе с привязанными расходами и вычисленными полями.
package read

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

// Handler обрабатывает запросы на получение бюджета по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения бюджета.
type Service interface {
	Details(ctx context.Context, id, userID int64) (*models.BudgetDetails, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить бюджет по ID
// @Description Возвращает бюджет с привязанными расходами, суммой потраченного, остатком и процентом исполнения.
// @Tags Budgets
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID бюджета"
// @Success 200 {object} map[string]any "Бюджет с вычисленными полями"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бюджет не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.read"

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

	details, err := h.service.Details(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("budget not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("budget not found"))
			return
		}
		log.Error("failed to read budget", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read budget"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"budget": details,
	}))
}
