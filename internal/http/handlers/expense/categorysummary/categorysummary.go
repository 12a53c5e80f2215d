// Package categorysummary реализует HTTP-обработчик сводки расходов по категориям
// за указанный период.
package categorysummary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/budget-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-tracker/internal/http/response"
	"github.com/magabrotheeeer/budget-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/budget-tracker/internal/models"
	budgetservice "github.com/magabrotheeeer/budget-tracker/internal/services/budget"
)

// Handler обрабатывает запросы на сводку расходов по категориям.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки расходов по категориям.
type Service interface {
	CategoryTotals(ctx context.Context, userID int64, from, to time.Time) ([]*models.CategoryTotal, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка расходов по категориям
// @Description Возвращает суммы расходов пользователя по категориям за период, упорядоченные по убыванию.
// @Tags Expenses
// @Produce  json
// @Security BearerAuth
// @Param start_date query string true "Начало периода в формате 2006-01-02"
// @Param end_date query string true "Конец периода в формате 2006-01-02"
// @Success 200 {object} map[string]any "Суммы по категориям"
// @Failure 400 {object} response.ErrorResponse "Не указан или некорректен период"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/summary/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.categorysummary"

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

	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")
	if startRaw == "" || endRaw == "" {
		log.Error("missing start_date or end_date query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date and end_date query parameters are required"))
		return
	}

	from, err := time.Parse(budgetservice.DateLayout, startRaw)
	if err != nil {
		log.Error("invalid start_date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date must be a date in format 2006-01-02"))
		return
	}
	to, err := time.Parse(budgetservice.DateLayout, endRaw)
	if err != nil {
		log.Error("invalid end_date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("end_date must be a date in format 2006-01-02"))
		return
	}
	if to.Before(from) {
		log.Error("end_date is before start_date")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("end_date must not be before start_date"))
		return
	}

	totals, err := h.service.CategoryTotals(r.Context(), userID, from, to)
	if err != nil {
		log.Error("failed to build category summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build category summary"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": totals,
		"count":      len(totals),
	}))
}
